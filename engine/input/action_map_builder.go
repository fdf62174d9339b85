package input

import "go.uber.org/zap"

// ActionMapOption is a functional option for configuring an ActionMap.
type ActionMapOption func(*actionMapImpl)

// WithActions registers the named actions at construction.
//
// Parameters:
//   - names: logical action names
//
// Returns:
//   - ActionMapOption: functional option to register the actions
func WithActions(names ...string) ActionMapOption {
	return func(m *actionMapImpl) {
		for _, n := range names {
			if _, ok := m.actions[n]; !ok {
				m.actions[n] = NewAction(n)
			}
		}
	}
}

// WithActionMapLogger sets the logger used for dispatch diagnostics.
//
// Parameters:
//   - logger: the zap logger (nil keeps the no-op logger)
//
// Returns:
//   - ActionMapOption: functional option to set the logger
func WithActionMapLogger(logger *zap.Logger) ActionMapOption {
	return func(m *actionMapImpl) {
		if logger != nil {
			m.logger = logger
		}
	}
}
