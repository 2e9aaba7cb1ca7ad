// Package thingspeak pushes reading snapshots to a ThingSpeak channel.
// The client enforces the channel's minimum update spacing itself, so
// callers may push as often as they like; calls inside the window report
// not-sent rather than erroring.
package thingspeak

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sweeney/garden-controller/internal/store"
)

// UpdateURL is the ThingSpeak channel update endpoint.
const UpdateURL = "https://api.thingspeak.com/update"

// DefaultMinInterval is the free-tier minimum spacing between accepted
// updates.
const DefaultMinInterval = 15 * time.Second

// Client is a rate-limited ThingSpeak writer.
type Client struct {
	writeKey    string
	minInterval time.Duration
	baseURL     string
	httpc       *http.Client

	mu       sync.Mutex
	lastPush time.Time
}

// NewClient creates a Client for the given write key.
func NewClient(writeKey string, minInterval time.Duration) *Client {
	return &Client{
		writeKey:    writeKey,
		minInterval: minInterval,
		baseURL:     UpdateURL,
		httpc:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Push sends a snapshot to the channel and reports whether it was
// accepted. Pushes inside the minimum interval are dropped silently;
// network failures are reported as not-sent and retried by the caller's
// next scheduled push.
func (c *Client) Push(r store.Reading) bool {
	return c.push(time.Now(), r)
}

func (c *Client) push(now time.Time, r store.Reading) bool {
	// Check and claim the window in one critical section so concurrent
	// pushes cannot both pass the check and hit the network.
	c.mu.Lock()
	if !c.lastPush.IsZero() && now.Sub(c.lastPush) < c.minInterval {
		c.mu.Unlock()
		return false // rate limited
	}
	prev := c.lastPush
	c.lastPush = now
	c.mu.Unlock()

	resp, err := c.httpc.Get(c.baseURL + "?" + Values(c.writeKey, r).Encode())
	if err != nil {
		// The request never reached the channel, so release the claimed
		// window and let the next scheduled push retry.
		c.mu.Lock()
		if c.lastPush.Equal(now) {
			c.lastPush = prev
		}
		c.mu.Unlock()
		log.Printf("thingspeak: update failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	// A completed request consumes the window whatever the response says.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64))
	return resp.StatusCode == http.StatusOK && isEntryID(strings.TrimSpace(string(body)))
}

// Values maps a snapshot onto the channel's eight numbered fields.
// The mapping is fixed; unset fields are omitted, not zero-filled.
//
//	field1 temp_c        field5 pir_active (1/0)
//	field2 humidity      field6 distance_cm
//	field3 water_height  field7 motor_on (1/0)
//	field4 soil_dry(1/0) field8 reserved
func Values(writeKey string, r store.Reading) url.Values {
	v := url.Values{}
	v.Set("api_key", writeKey)
	setFloat(v, "field1", r.TempC)
	setFloat(v, "field2", r.Humidity)
	setFloat(v, "field3", r.WaterHeight)
	setBool(v, "field4", r.SoilDry)
	setBool(v, "field5", r.PIRActive)
	setFloat(v, "field6", r.DistanceCM)
	v.Set("field7", boolDigit(r.MotorOn))
	return v
}

func setFloat(v url.Values, field string, p *float64) {
	if p != nil {
		v.Set(field, fmt.Sprintf("%g", *p))
	}
}

func setBool(v url.Values, field string, p *bool) {
	if p != nil {
		v.Set(field, boolDigit(*p))
	}
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// isEntryID reports whether the response body is a positive entry id.
// ThingSpeak answers "0" when an update is rejected.
func isEntryID(body string) bool {
	if body == "" || body == "0" {
		return false
	}
	for _, r := range body {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
