package complete

// Session carries the two call-scoped activation flags across the
// engine call boundary. The adapter arms a fresh Session immediately
// before delegating to the minibuffer engine; the engine entry point
// consumes the armed flag on entry, and its gesture handlers observe
// Active for the duration of that one call.
//
// Every adaptation owns its own Session, so a nested completion request
// started from inside another one can never observe or clear the outer
// request's flags.
type Session struct {
	armNext bool
	active  bool
}

// Arm marks the next engine invocation as adapter-initiated.
func (s *Session) Arm() {
	s.armNext = true
}

// Consume transfers the armed flag into the active state and clears it.
// Engine entry points call this exactly once.
func (s *Session) Consume() bool {
	s.active = s.armNext
	s.armNext = false
	return s.active
}

// Active reports whether the current engine invocation was started by
// the adapter. Only meaningful after Consume.
func (s *Session) Active() bool {
	return s.active
}
