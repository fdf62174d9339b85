package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraControllerImpl is the single implementation of CameraController.
// Position and rotation are guarded by a mutex since the tick, render and
// window threads all touch the transform.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	rotation mgl32.Quat
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a camera transform at the origin with identity orientation.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:       &sync.Mutex{},
		rotation: mgl32.QuatIdent(),
	}

	for _, option := range options {
		option(cc)
	}

	cc.rotation = cc.rotation.Normalize()
	return cc
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) SetPosition(p mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = p
}

func (cc *cameraControllerImpl) Rotation() mgl32.Quat {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rotation
}

func (cc *cameraControllerImpl) SetRotation(q mgl32.Quat) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.rotation = q.Normalize()
}

func (cc *cameraControllerImpl) EulerAngles() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return common.QuatToEuler(cc.rotation)
}

// Translate applies the offset in the orientation the camera has at call time.
func (cc *cameraControllerImpl) Translate(local mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = cc.position.Add(cc.rotation.Rotate(local))
}

func (cc *cameraControllerImpl) Forward() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rotation.Rotate(common.Forward)
}

func (cc *cameraControllerImpl) Right() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rotation.Rotate(common.Right)
}

func (cc *cameraControllerImpl) Up() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rotation.Rotate(common.Up)
}
