package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner with the running version.
func PrintBanner(out io.Writer, version string) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Green/Teal)
	s1 := termenv.String("                                        ").Foreground(p.Color("#34d399"))
	s2 := termenv.String("   ___ __ _ _ __   ___  _ __  _   _     ").Foreground(p.Color("#2dd4bf"))
	s3 := termenv.String("  / __/ _` | '_ \\ / _ \\| '_ \\| | | |    ").Foreground(p.Color("#22d3ee"))
	s4 := termenv.String(" | (_| (_| | | | | (_) | |_) | |_| |    ").Foreground(p.Color("#38bdf8"))
	s5 := termenv.String("  \\___\\__,_|_| |_|\\___/| .__/ \\__, |    ").Foreground(p.Color("#60a5fa"))
	s6 := termenv.String("                       |_|    |___/     ").Foreground(p.Color("#818cf8"))

	fmt.Fprintln(out)
	fmt.Fprintln(out, s1)
	fmt.Fprintln(out, s2)
	fmt.Fprintln(out, s3)
	fmt.Fprintln(out, s4)
	fmt.Fprintln(out, s5)
	fmt.Fprintln(out, s6)
	fmt.Fprintf(out, "  capability systems playground %s\n\n", version)
}
