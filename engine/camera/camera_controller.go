package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController owns the camera's transform: a world-space position and an orientation.
// The Camera reads from the controller to build its view matrix; input-driven rigs write to it.
// The camera looks along its local +Z axis, with local +X to the right and local +Y up.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// SetPosition sets the camera's world-space position directly.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p mgl32.Vec3)

	// Rotation returns the camera's orientation.
	//
	// Returns:
	//   - mgl32.Quat: the world-space orientation
	Rotation() mgl32.Quat

	// SetRotation replaces the camera's orientation.
	//
	// Parameters:
	//   - q: the new orientation (normalized on store)
	SetRotation(q mgl32.Quat)

	// EulerAngles returns the orientation as Euler angles in degrees, each in [0, 360).
	//
	// Returns:
	//   - mgl32.Vec3: (pitch, yaw, roll) in degrees
	EulerAngles() mgl32.Vec3

	// Translate moves the camera by an offset expressed in its local axes.
	//
	// Parameters:
	//   - local: offset along (right, up, forward)
	Translate(local mgl32.Vec3)

	// Forward returns the camera's local +Z axis in world space.
	//
	// Returns:
	//   - mgl32.Vec3: unit forward vector
	Forward() mgl32.Vec3

	// Right returns the camera's local +X axis in world space.
	//
	// Returns:
	//   - mgl32.Vec3: unit right vector
	Right() mgl32.Vec3

	// Up returns the camera's local +Y axis in world space.
	//
	// Returns:
	//   - mgl32.Vec3: unit up vector
	Up() mgl32.Vec3
}
