package camera

import (
	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - x: X coordinate
//   - y: Y coordinate
//   - z: Z coordinate
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial orientation.
//
// Parameters:
//   - q: the orientation
//
// Returns:
//   - CameraControllerOption: functional option to set the rotation
func WithRotation(q mgl32.Quat) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotation = q
	}
}

// WithEulerAngles sets the initial orientation from Euler angles in degrees.
//
// Parameters:
//   - pitch: rotation about X (positive looks down)
//   - yaw: rotation about Y (positive turns right)
//   - roll: rotation about Z
//
// Returns:
//   - CameraControllerOption: functional option to set the rotation
func WithEulerAngles(pitch, yaw, roll float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotation = common.EulerToQuat(mgl32.Vec3{pitch, yaw, roll})
	}
}
