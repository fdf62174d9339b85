package operator

// Mode is the operator's current motion mode. Exactly one mode is active at a time.
type Mode int

const (
	ModeNone Mode = iota
	ModeMove
	ModePan
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeMove:
		return "move"
	case ModePan:
		return "pan"
	default:
		return "unknown"
	}
}

// ModeMachine owns the current Mode and runs registered hooks on transitions.
// Move and Pan are mutually exclusive: one can only be entered from None.
//
// ModeMachine is not safe for concurrent use; the owner serialises access.
type ModeMachine struct {
	mode  Mode
	enter map[Mode][]func()
	exit  map[Mode][]func()
}

// NewModeMachine creates a machine in ModeNone with no hooks.
//
// Returns:
//   - *ModeMachine: the machine
func NewModeMachine() *ModeMachine {
	return &ModeMachine{
		mode:  ModeNone,
		enter: make(map[Mode][]func()),
		exit:  make(map[Mode][]func()),
	}
}

// Mode returns the current mode.
func (m *ModeMachine) Mode() Mode {
	return m.mode
}

// CanEnter reports whether next may become the current mode.
// None can always be entered; Move and Pan only from None or from themselves.
//
// Parameters:
//   - next: the mode to enter
//
// Returns:
//   - bool: true if Transition(next) is allowed
func (m *ModeMachine) CanEnter(next Mode) bool {
	return next == ModeNone || m.mode == ModeNone || m.mode == next
}

// Transition switches to next, running the current mode's exit hooks and then next's enter hooks.
// Transitioning to the current mode or to a mode that cannot be entered does nothing.
//
// Parameters:
//   - next: the mode to switch to
//
// Returns:
//   - bool: true if the mode changed
func (m *ModeMachine) Transition(next Mode) bool {
	if next == m.mode || !m.CanEnter(next) {
		return false
	}
	for _, fn := range m.exit[m.mode] {
		fn()
	}
	m.mode = next
	for _, fn := range m.enter[next] {
		fn()
	}
	return true
}

// OnEnter registers fn to run each time mode is entered. Hooks run in registration order.
//
// Parameters:
//   - mode: the mode being entered
//   - fn: the hook
func (m *ModeMachine) OnEnter(mode Mode, fn func()) {
	m.enter[mode] = append(m.enter[mode], fn)
}

// OnExit registers fn to run each time mode is left. Hooks run in registration order.
//
// Parameters:
//   - mode: the mode being left
//   - fn: the hook
func (m *ModeMachine) OnExit(mode Mode, fn func()) {
	m.exit[mode] = append(m.exit[mode], fn)
}
