package domain

import "errors"

// ErrUnknownCapability is returned when a name does not resolve to a
// configured capability.
var ErrUnknownCapability = errors.New("unknown capability")

// ErrDuplicateCapability is returned when a registry supplies the same
// capability name twice.
var ErrDuplicateCapability = errors.New("duplicate capability name")

// ErrUnknownPolicy is returned when a sheet declares an unrecognized
// combinator policy.
var ErrUnknownPolicy = errors.New("unknown sheet policy")

// ErrNoHistory is returned by recorders that hold no snapshots yet.
var ErrNoHistory = errors.New("no history recorded")
