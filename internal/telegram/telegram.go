// Package telegram delivers alerts to a Telegram chat and answers simple
// commands (/status and friends) over the bot long-poll API.
package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// pollWindowSec is the GetUpdates long-poll window. requestTimeout bounds
// every bot API request and must exceed the window so long polls are not
// cut short; it also caps how long a Send can stall the caller.
const (
	pollWindowSec  = 20
	requestTimeout = 30 * time.Second
)

// Service is an alert notifier plus a command bot bound to one chat.
type Service struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	status func() string
}

// New connects the bot. status is called to answer /status. Callers that
// have no token configured should not construct a Service at all; the
// rest of the daemon treats a nil notifier as disabled.
func New(token string, chatID int64, status func() string) (*Service, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint,
		&http.Client{Timeout: requestTimeout})
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}
	return &Service{bot: bot, chatID: chatID, status: status}, nil
}

// Send delivers one message to the configured chat.
func (s *Service) Send(text string) error {
	_, err := s.bot.Send(tgbotapi.NewMessage(s.chatID, text))
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// Run long-polls for commands until ctx is cancelled. Messages from other
// chats are ignored.
func (s *Service) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollWindowSec

	updates := s.bot.GetUpdatesChan(u)
	go func() {
		<-ctx.Done()
		s.bot.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil {
			continue
		}
		if update.Message.Chat.ID != s.chatID {
			continue
		}
		reply := s.handleCommand(update.Message.Text)
		if reply == "" {
			continue
		}
		if _, err := s.bot.Send(tgbotapi.NewMessage(s.chatID, reply)); err != nil {
			log.Printf("telegram: reply failed: %v", err)
		}
	}
}

func (s *Service) handleCommand(text string) string {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "/start", "/help":
		return "Hi! Try /status to see current readings."
	case "/status":
		return s.status()
	case "/motor_on", "/motor_off":
		return "Use keypad/logic; remote motor control is disabled in this bot."
	default:
		return ""
	}
}
