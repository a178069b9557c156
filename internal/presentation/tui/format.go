package tui

import "fmt"

// FormatDuration renders a second count as a compact human-readable
// duration, e.g. "1h 02m 03s", "2m 03s", "4.5s".
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%.1fs", seconds)
	}
}
