package input

import "go.uber.org/zap"

// RouterOption is a functional option for configuring a Router.
type RouterOption func(*routerImpl)

// WithRouterLogger sets the logger used for binding diagnostics.
//
// Parameters:
//   - logger: the zap logger (nil keeps the no-op logger)
//
// Returns:
//   - RouterOption: functional option to set the logger
func WithRouterLogger(logger *zap.Logger) RouterOption {
	return func(r *routerImpl) {
		if logger != nil {
			r.logger = logger
		}
	}
}
