package operator

import "go.uber.org/zap"

// CameraOperatorOption is a functional option for configuring a CameraOperator.
type CameraOperatorOption func(*cameraOperatorImpl)

// WithMovementSpeed sets the base movement speed.
//
// Parameters:
//   - speed: units per second without boost (default 5)
//
// Returns:
//   - CameraOperatorOption: functional option to set the movement speed
func WithMovementSpeed(speed int) CameraOperatorOption {
	return func(o *cameraOperatorImpl) {
		o.movementSpeed = speed
	}
}

// WithBoost sets the speed added while Boost is held.
//
// Parameters:
//   - boost: extra units per second (default 10)
//
// Returns:
//   - CameraOperatorOption: functional option to set the boost increment
func WithBoost(boost int) CameraOperatorOption {
	return func(o *cameraOperatorImpl) {
		o.boost = boost
	}
}

// WithLogger sets the logger used for activation and mode-change diagnostics.
//
// Parameters:
//   - logger: the zap logger (nil keeps the no-op logger)
//
// Returns:
//   - CameraOperatorOption: functional option to set the logger
func WithLogger(logger *zap.Logger) CameraOperatorOption {
	return func(o *cameraOperatorImpl) {
		if logger != nil {
			o.logger = logger
		}
	}
}
