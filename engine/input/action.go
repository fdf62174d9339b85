package input

import "sync"

// Action is one entry of the dispatch table: a named logical input with an enabled flag and
// the handlers subscribed to its "performed" event. New actions start enabled.
type Action struct {
	mu *sync.Mutex

	name    string
	enabled bool

	nextID   uint64
	order    []uint64
	handlers map[uint64]func(Value)
}

// NewAction creates an enabled action with no handlers.
//
// Parameters:
//   - name: the logical action name
//
// Returns:
//   - *Action: the new action
func NewAction(name string) *Action {
	return &Action{
		mu:       &sync.Mutex{},
		name:     name,
		enabled:  true,
		handlers: make(map[uint64]func(Value)),
	}
}

// Name returns the logical action name.
func (a *Action) Name() string {
	return a.name
}

// Enabled reports whether performed events are currently delivered.
func (a *Action) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// Enable resumes delivery of performed events.
func (a *Action) Enable() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = true
}

// Disable suppresses delivery of performed events until Enable is called.
// State already latched by handlers is left untouched.
func (a *Action) Disable() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = false
}

// OnPerformed subscribes a handler. Handlers run in subscription order.
//
// Parameters:
//   - fn: the handler
//
// Returns:
//   - func(): unsubscribes the handler; safe to call more than once
func (a *Action) OnPerformed(fn func(Value)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.nextID
	a.nextID++
	a.handlers[id] = fn
	a.order = append(a.order, id)

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if _, ok := a.handlers[id]; !ok {
			return
		}
		delete(a.handlers, id)
		for i, o := range a.order {
			if o == id {
				a.order = append(a.order[:i], a.order[i+1:]...)
				break
			}
		}
	}
}

// HandlerCount returns the number of subscribed handlers.
func (a *Action) HandlerCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.handlers)
}

// Perform delivers v to every handler if the action is enabled.
// Handlers are called without the action's lock held, so they may enable or disable actions.
//
// Parameters:
//   - v: the payload
//
// Returns:
//   - bool: true if the event was delivered, false if the action is disabled
func (a *Action) Perform(v Value) bool {
	a.mu.Lock()
	if !a.enabled {
		a.mu.Unlock()
		return false
	}
	fns := make([]func(Value), 0, len(a.order))
	for _, id := range a.order {
		fns = append(fns, a.handlers[id])
	}
	a.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
	return true
}
