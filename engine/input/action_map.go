package input

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// ErrActionNotFound is returned when an action name is not present in the map.
var ErrActionNotFound = errors.New("action not found")

// ActionMap is the dispatch table of named actions.
type ActionMap interface {
	// FindAction looks up an action by name.
	//
	// Parameters:
	//   - name: the logical action name
	//
	// Returns:
	//   - *Action: the action
	//   - error: wraps ErrActionNotFound if the name is not registered
	FindAction(name string) (*Action, error)

	// AddAction registers an action, returning the existing one if the name is already taken.
	//
	// Parameters:
	//   - name: the logical action name
	//
	// Returns:
	//   - *Action: the registered action
	AddAction(name string) *Action

	// Actions returns every registered action sorted by name.
	//
	// Returns:
	//   - []*Action: the registered actions
	Actions() []*Action

	// Trigger delivers a payload to the named action.
	// Unknown names and disabled actions deliver nothing.
	//
	// Parameters:
	//   - name: the logical action name
	//   - v: the payload
	//
	// Returns:
	//   - bool: true if the payload reached the action's handlers
	Trigger(name string, v Value) bool
}

type actionMapImpl struct {
	mu      *sync.Mutex
	actions map[string]*Action
	logger  *zap.Logger
}

var _ ActionMap = &actionMapImpl{}

// NewActionMap creates an empty action map.
//
// Parameters:
//   - options: functional options to configure the map
//
// Returns:
//   - ActionMap: the new action map
func NewActionMap(options ...ActionMapOption) ActionMap {
	m := &actionMapImpl{
		mu:      &sync.Mutex{},
		actions: make(map[string]*Action),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *actionMapImpl) FindAction(name string) (*Action, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.actions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrActionNotFound, name)
	}
	return a, nil
}

func (m *actionMapImpl) AddAction(name string) *Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.actions[name]; ok {
		return a
	}
	a := NewAction(name)
	m.actions[name] = a
	return a
}

func (m *actionMapImpl) Actions() []*Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Action, 0, len(m.actions))
	for _, a := range m.actions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func (m *actionMapImpl) Trigger(name string, v Value) bool {
	m.mu.Lock()
	a, ok := m.actions[name]
	m.mu.Unlock()
	if !ok {
		m.logger.Debug("trigger for unknown action", zap.String("action", name))
		return false
	}
	return a.Perform(v)
}
