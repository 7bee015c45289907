package tui

import (
	"io"
	"os"
	"strconv"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Styler colors CLI output when it goes to a terminal and leaves it plain
// otherwise (pipes, files, tests).
type Styler struct {
	profile termenv.Profile
}

// NewStyler picks a color profile for w.
func NewStyler(w io.Writer) *Styler {
	profile := termenv.Ascii
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		profile = termenv.ColorProfile()
	}
	return &Styler{profile: profile}
}

// Plain returns a Styler that never colors.
func Plain() *Styler {
	return &Styler{profile: termenv.Ascii}
}

// Color renders s in the given hex color.
func (s *Styler) Color(text, hex string) string {
	if s.profile == termenv.Ascii {
		return text
	}
	return s.profile.String(text).Foreground(s.profile.Color(hex)).String()
}

// Hash renders a hex hash.
func (s *Styler) Hash(h string) string { return s.Color(h, "#a78bfa") }

// ID renders a renamed integer.
func (s *Styler) ID(id int) string { return s.Color(strconv.Itoa(id), "#f472b6") }

// Muted renders secondary text such as kinds and headers.
func (s *Styler) Muted(text string) string { return s.Color(text, "#6b7280") }
