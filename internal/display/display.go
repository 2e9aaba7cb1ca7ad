// Package display abstracts the two-line character display. The real
// I2C LCD driver lives outside this repository; the daemon only needs
// something it can hand two lines of text.
package display

import "log"

// Width is the character width of the attached 16x2 LCD. Renderers
// truncate lines beyond it.
const Width = 16

// Renderer shows two lines of text.
type Renderer interface {
	Render(line1, line2 string)
}

// LogRenderer writes the lines to the process log, for running headless.
type LogRenderer struct{}

// Render logs both lines.
func (LogRenderer) Render(line1, line2 string) {
	log.Printf("display: %q %q", truncate(line1), truncate(line2))
}

// FakeRenderer records rendered lines for test assertions.
type FakeRenderer struct {
	// Lines contains every rendered [line1, line2] pair.
	Lines [][2]string
}

// Render records the lines.
func (f *FakeRenderer) Render(line1, line2 string) {
	f.Lines = append(f.Lines, [2]string{truncate(line1), truncate(line2)})
}

// Last returns the most recently rendered pair, or empty strings.
func (f *FakeRenderer) Last() (string, string) {
	if len(f.Lines) == 0 {
		return "", ""
	}
	last := f.Lines[len(f.Lines)-1]
	return last[0], last[1]
}

func truncate(s string) string {
	if len(s) > Width {
		return s[:Width]
	}
	return s
}
