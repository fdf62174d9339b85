package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// EventSource is the subset of the window's callback API the router listens to.
type EventSource interface {
	SetKeyDownCallback(callback func(keyCode uint32))
	SetKeyUpCallback(callback func(keyCode uint32))
	SetMouseButtonDownCallback(callback func(button uint32, x, y int32))
	SetMouseButtonUpCallback(callback func(button uint32, x, y int32))
	SetMouseMoveCallback(callback func(x, y int32))
}

// Router turns raw key, mouse-button and cursor events into action payloads according to a set of Bindings.
// Bindings can be swapped at runtime; held-control state survives the swap.
// When delivering a payload enables another action, that action is sent the current state
// of its held buttons and composite directions.
type Router interface {
	// Attach registers the router's handlers as the source's key, mouse-button and cursor callbacks.
	//
	// Parameters:
	//   - src: the event source, typically the engine window
	Attach(src EventSource)

	// SetBindings replaces the active bindings after validating them.
	// On error the previous bindings stay active.
	//
	// Parameters:
	//   - bs: the new bindings
	//
	// Returns:
	//   - error: validation error
	SetBindings(bs Bindings) error

	// Bindings returns the active bindings.
	//
	// Returns:
	//   - Bindings: the bindings last accepted by NewRouter or SetBindings
	Bindings() Bindings

	// KeyDown handles a key press. Repeats of an already-held key are ignored.
	//
	// Parameters:
	//   - keyCode: the key code
	KeyDown(keyCode uint32)

	// KeyUp handles a key release.
	//
	// Parameters:
	//   - keyCode: the key code
	KeyUp(keyCode uint32)

	// MouseButtonDown handles a mouse button press.
	//
	// Parameters:
	//   - button: the mouse button code
	//   - x, y: cursor position in window pixels
	MouseButtonDown(button uint32, x, y int32)

	// MouseButtonUp handles a mouse button release.
	//
	// Parameters:
	//   - button: the mouse button code
	//   - x, y: cursor position in window pixels
	MouseButtonUp(button uint32, x, y int32)

	// MouseMove handles a cursor move. The first move only records the position.
	//
	// Parameters:
	//   - x, y: cursor position in window pixels (Y grows downward)
	MouseMove(x, y int32)
}

type routerImpl struct {
	mu *sync.Mutex

	actions  ActionMap
	source   Bindings
	bindings []compiledBinding
	// last button state emitted per action, for multi-control buttons
	buttonState map[string]bool

	held map[control]bool

	hasCursor    bool
	lastX, lastY int32

	logger *zap.Logger
}

var _ Router = &routerImpl{}

// pending is an action payload collected under the router's lock and delivered after it is released.
type pending struct {
	action string
	value  Value
}

// NewRouter creates a router delivering to actions.
//
// Parameters:
//   - actions: the action map payloads are delivered to
//   - bs: the initial bindings
//   - options: functional options to configure the router
//
// Returns:
//   - Router: the router
//   - error: validation error in bs
func NewRouter(actions ActionMap, bs Bindings, options ...RouterOption) (Router, error) {
	r := &routerImpl{
		mu:          &sync.Mutex{},
		actions:     actions,
		buttonState: make(map[string]bool),
		held:        make(map[control]bool),
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		opt(r)
	}
	if err := r.SetBindings(bs); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *routerImpl) Attach(src EventSource) {
	src.SetKeyDownCallback(r.KeyDown)
	src.SetKeyUpCallback(r.KeyUp)
	src.SetMouseButtonDownCallback(r.MouseButtonDown)
	src.SetMouseButtonUpCallback(r.MouseButtonUp)
	src.SetMouseMoveCallback(r.MouseMove)
}

func (r *routerImpl) SetBindings(bs Bindings) error {
	compiled, err := bs.compile()
	if err != nil {
		return err
	}

	for _, cb := range compiled {
		if _, err := r.actions.FindAction(cb.action); err != nil {
			r.logger.Warn("binding targets an action that is not registered", zap.String("action", cb.action))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.source = bs
	r.bindings = compiled
	r.buttonState = make(map[string]bool)
	return nil
}

func (r *routerImpl) Bindings() Bindings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.source
}

func (r *routerImpl) KeyDown(keyCode uint32) {
	r.setHeld(control{device: deviceKey, code: keyCode}, true)
}

func (r *routerImpl) KeyUp(keyCode uint32) {
	r.setHeld(control{device: deviceKey, code: keyCode}, false)
}

func (r *routerImpl) MouseButtonDown(button uint32, x, y int32) {
	r.setHeld(control{device: deviceMouse, code: button}, true)
}

func (r *routerImpl) MouseButtonUp(button uint32, x, y int32) {
	r.setHeld(control{device: deviceMouse, code: button}, false)
}

func (r *routerImpl) MouseMove(x, y int32) {
	r.mu.Lock()
	if !r.hasCursor {
		r.hasCursor = true
		r.lastX, r.lastY = x, y
		r.mu.Unlock()
		return
	}
	// screen Y grows downward; actions expect up to be positive
	delta := mgl32.Vec2{float32(x - r.lastX), float32(r.lastY - y)}
	r.lastX, r.lastY = x, y

	var out []pending
	if delta != (mgl32.Vec2{}) {
		for _, cb := range r.bindings {
			if cb.typ != BindingPointer {
				continue
			}
			out = append(out, pending{cb.action, Vector2Value(mgl32.Vec2{delta[0] * cb.scale[0], delta[1] * cb.scale[1]})})
		}
	}
	r.mu.Unlock()

	r.deliver(out)
}

// setHeld records a control edge and collects the payloads of every binding that reads the control.
func (r *routerImpl) setHeld(c control, down bool) {
	r.mu.Lock()
	if r.held[c] == down {
		r.mu.Unlock()
		return
	}
	if down {
		r.held[c] = true
	} else {
		delete(r.held, c)
	}

	var out []pending
	for _, cb := range r.bindings {
		switch cb.typ {
		case BindingButton:
			if !containsControl(cb.buttons, c) {
				continue
			}
			pressed := r.buttonsHeld(cb)
			if prev, ok := r.buttonState[cb.action]; ok && prev == pressed {
				continue
			}
			r.buttonState[cb.action] = pressed
			out = append(out, pending{cb.action, ButtonValue(pressed)})
		case BindingComposite:
			if !cb.reads(c) {
				continue
			}
			out = append(out, pending{cb.action, Vector2Value(r.compositeVector(cb))})
		}
	}
	r.mu.Unlock()

	r.deliver(out)
}

// compositeVector sums the held directions of a composite. Caller must hold the mutex.
func (r *routerImpl) compositeVector(cb compiledBinding) mgl32.Vec2 {
	var v mgl32.Vec2
	axes := [4]mgl32.Vec2{{0, 1}, {0, -1}, {-1, 0}, {1, 0}}
	for i, d := range cb.dirs {
		if d != nil && r.held[*d] {
			v = v.Add(axes[i])
		}
	}
	return v
}

// buttonsHeld reports whether any control of a button binding is held. Caller must hold the mutex.
func (r *routerImpl) buttonsHeld(cb compiledBinding) bool {
	for _, b := range cb.buttons {
		if r.held[b] {
			return true
		}
	}
	return false
}

// deliver triggers the payloads in order. An action that a handler enables while its
// controls are held is sent their current state straight after that handler's payload.
func (r *routerImpl) deliver(out []pending) {
	for len(out) > 0 {
		p := out[0]
		out = out[1:]

		before := r.enabledActions()
		r.actions.Trigger(p.action, p.value)
		out = append(out, r.heldState(before)...)
	}
}

// enabledActions snapshots the enabled flag of every bound, registered action.
func (r *routerImpl) enabledActions() map[string]bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := make(map[string]bool, len(r.bindings))
	for _, cb := range r.bindings {
		if a, err := r.actions.FindAction(cb.action); err == nil {
			state[cb.action] = a.Enabled()
		}
	}
	return state
}

// heldState collects the non-default state of every button and composite binding whose
// action was disabled in before and is enabled now.
func (r *routerImpl) heldState(before map[string]bool) []pending {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []pending
	for _, cb := range r.bindings {
		if enabled, ok := before[cb.action]; !ok || enabled {
			continue
		}
		a, err := r.actions.FindAction(cb.action)
		if err != nil || !a.Enabled() {
			continue
		}
		switch cb.typ {
		case BindingButton:
			if r.buttonsHeld(cb) {
				out = append(out, pending{cb.action, ButtonValue(true)})
			}
		case BindingComposite:
			if v := r.compositeVector(cb); v != (mgl32.Vec2{}) {
				out = append(out, pending{cb.action, Vector2Value(v)})
			}
		}
	}
	return out
}

func (cb compiledBinding) reads(c control) bool {
	for _, d := range cb.dirs {
		if d != nil && *d == c {
			return true
		}
	}
	return false
}

func containsControl(cs []control, c control) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}
