package tui_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jesterworks/canopy/internal/presentation/tui"
	"github.com/jesterworks/canopy/pkg/domain"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{-5, "0.0s"},
		{0, "0.0s"},
		{4.5, "4.5s"},
		{59.9, "59.9s"},
		{60, "1m 00s"},
		{123, "2m 03s"},
		{3723, "1h 02m 03s"},
		{7322, "2h 02m 02s"},
	}
	for _, tc := range cases {
		if got := tui.FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestTracer(t *testing.T) {
	var buf bytes.Buffer
	tracer := tui.NewTracer(&buf)
	hooks := tracer.Hooks()
	ctx := context.Background()

	hooks.OnActivated(ctx, &domain.CapabilityEvent{Name: "sprint", Tick: 1})
	hooks.OnBlocked(ctx, &domain.CapabilityEvent{Name: "dash", Tick: 1})
	hooks.OnTickEnd(ctx, &domain.TickEvent{Tick: 1, Time: 0.05, Active: []string{"sprint"}})
	hooks.OnDeactivated(ctx, &domain.CapabilityEvent{Name: "sprint", Tick: 2})
	hooks.OnTickEnd(ctx, &domain.TickEvent{Tick: 2, Time: 0.1})

	out := buf.String()
	for _, want := range []string{
		"sprint",
		"dash (blocked)",
		"active: sprint",
		"active: -",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "v1.2.3")
	if !strings.Contains(buf.String(), "v1.2.3") {
		t.Error("banner should include the version")
	}
}
