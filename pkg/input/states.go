// Package input provides action-state bookkeeping for capability
// predicates: digital press/release tracking with per-tick edge detection,
// analog axis values, and press consumption so one capability can claim an
// input before lower-priority ones see it.
package input

// States tracks the current state of named input actions. The host feeds
// events in (Press/Release/SetAxis) and calls EndTick once per game tick,
// after the capability system has run, to retire the edge flags.
//
// All access must stay on the gameplay thread; the type is deliberately
// unsynchronized, matching the single-threaded tick model.
type States struct {
	actions map[string]*actionState
}

type actionState struct {
	pressed      bool
	justPressed  bool
	justReleased bool
	consumed     bool
	axis         float64
}

// NewStates creates an empty action-state service.
func NewStates() *States {
	return &States{actions: make(map[string]*actionState)}
}

func (s *States) get(action string) *actionState {
	st, ok := s.actions[action]
	if !ok {
		st = &actionState{}
		s.actions[action] = st
	}
	return st
}

// Press marks the action held, raising the just-pressed edge if it was up.
func (s *States) Press(action string) {
	st := s.get(action)
	if !st.pressed {
		st.justPressed = true
	}
	st.pressed = true
}

// Release marks the action up, raising the just-released edge if it was held.
func (s *States) Release(action string) {
	st := s.get(action)
	if st.pressed {
		st.justReleased = true
	}
	st.pressed = false
	st.consumed = false
}

// SetAxis stores an analog value for the action.
func (s *States) SetAxis(action string, value float64) {
	s.get(action).axis = value
}

// IsPressed reports whether the action is held and not consumed this press.
func (s *States) IsPressed(action string) bool {
	st, ok := s.actions[action]
	return ok && st.pressed && !st.consumed
}

// JustPressed reports whether the action went down this tick and is not
// consumed.
func (s *States) JustPressed(action string) bool {
	st, ok := s.actions[action]
	return ok && st.justPressed && !st.consumed
}

// JustReleased reports whether the action went up this tick.
func (s *States) JustReleased(action string) bool {
	st, ok := s.actions[action]
	return ok && st.justReleased
}

// Axis returns the analog value for the action, 0 when unbound.
func (s *States) Axis(action string) float64 {
	st, ok := s.actions[action]
	if !ok {
		return 0
	}
	return st.axis
}

// Consume claims the current press of the action so later readers see it
// as released. Returns false if the action was not pressed or already
// consumed. The claim clears on the next physical release.
func (s *States) Consume(action string) bool {
	st, ok := s.actions[action]
	if !ok || !st.pressed || st.consumed {
		return false
	}
	st.consumed = true
	return true
}

// EndTick retires the edge flags. Call once per tick after evaluation.
func (s *States) EndTick() {
	for _, st := range s.actions {
		st.justPressed = false
		st.justReleased = false
	}
}
