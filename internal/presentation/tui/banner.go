package tui

import (
	"fmt"
	"io"
)

// PrintBanner writes the ASCII art banner shown when the server starts.
func PrintBanner(w io.Writer, s *Styler) {
	lines := []struct{ text, color string }{
		{`   __ _ _   _| |_ ___  _ __ ___   __ _| |_ __ _ `, "#818cf8"},
		{`  / _' | | | | __/ _ \| '_ ' _ \ / _' | __/ _' |`, "#a78bfa"},
		{` | (_| | |_| | || (_) | | | | | | (_| | || (_| |`, "#c084fc"},
		{`  \__,_|\__,_|\__\___/|_| |_| |_|\__,_|\__\__,_|`, "#e879f9"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, s.Color(l.text, l.color))
	}
	fmt.Fprintln(w)
}
