// Package middleware provides composable wrappers around history
// recorders: encryption at rest and churn reduction.
package middleware

import "github.com/jesterworks/canopy/pkg/ports"

// Middleware allows wrapping a Recorder to add behavior.
type Middleware func(ports.Recorder) ports.Recorder

// Chain applies middlewares to a recorder, first middleware outermost.
func Chain(rec ports.Recorder, mws ...Middleware) ports.Recorder {
	for i := len(mws) - 1; i >= 0; i-- {
		rec = mws[i](rec)
	}
	return rec
}
