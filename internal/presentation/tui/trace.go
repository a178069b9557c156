package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jesterworks/canopy/pkg/domain"
)

// Tracer renders a live tick trace: one line per tick plus a highlighted
// line for every activation-state transition.
type Tracer struct {
	out     io.Writer
	profile termenv.Profile
}

// NewTracer creates a tracer writing to out. Colors degrade automatically
// on non-TTY outputs.
func NewTracer(out io.Writer) *Tracer {
	return &Tracer{out: out, profile: termenv.ColorProfile()}
}

func (t *Tracer) colored(s, hex string) string {
	return termenv.String(s).Foreground(t.profile.Color(hex)).String()
}

// TickLine writes the summary line for one completed tick.
func (t *Tracer) TickLine(e *domain.TickEvent) {
	active := "-"
	if len(e.Active) > 0 {
		active = strings.Join(e.Active, ", ")
	}
	head := t.colored(fmt.Sprintf("[tick %4d | t=%6.2fs]", e.Tick, e.Time), "#64748b")
	fmt.Fprintf(t.out, "%s active: %s\n", head, active)
}

// Activated writes a transition line for a capability entering the active
// set.
func (t *Tracer) Activated(e *domain.CapabilityEvent) {
	fmt.Fprintf(t.out, "  %s %s\n", t.colored("+", "#22c55e"), e.Name)
}

// Deactivated writes a transition line for a capability leaving the active
// set.
func (t *Tracer) Deactivated(e *domain.CapabilityEvent) {
	fmt.Fprintf(t.out, "  %s %s\n", t.colored("-", "#ef4444"), e.Name)
}

// Blocked writes a line for an activation refused by the block list.
func (t *Tracer) Blocked(e *domain.CapabilityEvent) {
	fmt.Fprintf(t.out, "  %s %s (blocked)\n", t.colored("x", "#eab308"), e.Name)
}

// Hooks returns lifecycle hooks that feed the tracer.
func (t *Tracer) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTickEnd:     func(_ context.Context, e *domain.TickEvent) { t.TickLine(e) },
		OnActivated:   func(_ context.Context, e *domain.CapabilityEvent) { t.Activated(e) },
		OnDeactivated: func(_ context.Context, e *domain.CapabilityEvent) { t.Deactivated(e) },
		OnBlocked:     func(_ context.Context, e *domain.CapabilityEvent) { t.Blocked(e) },
	}
}
