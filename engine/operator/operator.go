// Package operator implements a free-camera rig: input actions drive a Move mode
// (fly with direction keys, mouse-look, boost) and a Pan mode (slide the camera
// with the pointer), integrated into the camera transform once per simulation tick.
package operator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/Carmen-Shannon/oxy-freecam/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Logical action names the operator resolves at activation.
const (
	ActionStartMovement    = "StartMovement"
	ActionMoveHorizontally = "MoveHorizontally"
	ActionMoveVertically   = "MoveVertically"
	ActionBoost            = "Boost"
	ActionRotate           = "Rotate"
	ActionStartPan         = "StartPan"
	ActionPan              = "Pan"
)

// RequiredActions lists every action name Activate looks up.
var RequiredActions = []string{
	ActionStartMovement,
	ActionMoveHorizontally,
	ActionMoveVertically,
	ActionBoost,
	ActionRotate,
	ActionStartPan,
	ActionPan,
}

// ErrAlreadyActive is returned by Activate on an operator that is already bound to actions.
var ErrAlreadyActive = errors.New("camera operator already active")

const (
	defaultMovementSpeed = 5
	defaultBoost         = 10

	// minReadoutDelta is the smallest frame time the speed readout divides by.
	minReadoutDelta = 1e-6
)

// ActionSource resolves logical actions by name.
type ActionSource interface {
	FindAction(name string) (*input.Action, error)
}

// Transform is the camera transform the operator drives.
type Transform interface {
	Position() mgl32.Vec3
	Rotation() mgl32.Quat
	Translate(local mgl32.Vec3)
	SetRotation(q mgl32.Quat)
}

// CameraOperator drives a Transform from input actions.
type CameraOperator interface {
	// Activate resolves the required actions from src and subscribes to them.
	// Either every action is resolved and bound, or nothing is touched.
	//
	// Parameters:
	//   - src: the action lookup, typically an input.ActionMap
	//
	// Returns:
	//   - error: wraps input.ErrActionNotFound for a missing action, or ErrAlreadyActive
	Activate(src ActionSource) error

	// Deactivate unsubscribes every handler, disables the sub-actions and returns to ModeNone.
	// It does nothing on an inactive operator.
	Deactivate()

	// Active reports whether the operator is bound to actions.
	Active() bool

	// Mode returns the current motion mode.
	Mode() Mode

	// Tick advances the camera by one simulation step.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous tick
	Tick(deltaTime float32)

	// LateTick refreshes the speed readout once per rendered frame.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	LateTick(deltaTime float32)

	// Speed returns the current speed in units per second, including any active boost.
	Speed() int

	// Rotation returns the accumulated orientation the camera snaps to each tick.
	Rotation() Rotation

	MovementSpeed() int
	SetMovementSpeed(speed int)
	Boost() int
	SetBoost(boost int)

	// Speedometer returns the last speed readout, e.g. "12.5m/1s".
	Speedometer() string
	SetSpeedometer(text string)
}

type cameraOperatorImpl struct {
	mu *sync.Mutex

	transform Transform
	modes     *ModeMachine
	logger    *zap.Logger

	movementSpeed int
	boost         int
	speedometer   string

	active  bool
	cancels []func()
	// MoveHorizontally, MoveVertically, Boost, Rotate
	motion []*input.Action
	pan    *input.Action

	speed               int
	horizontalDirection mgl32.Vec3
	verticalDirection   mgl32.Vec3
	rotation            Rotation
	lastFramePosition   mgl32.Vec3
}

var _ CameraOperator = &cameraOperatorImpl{}

// NewCameraOperator creates an inactive operator driving transform.
//
// Parameters:
//   - transform: the camera transform to drive
//   - options: functional options to configure the operator
//
// Returns:
//   - CameraOperator: the operator
func NewCameraOperator(transform Transform, options ...CameraOperatorOption) CameraOperator {
	o := &cameraOperatorImpl{
		mu:            &sync.Mutex{},
		transform:     transform,
		modes:         NewModeMachine(),
		logger:        zap.NewNop(),
		movementSpeed: defaultMovementSpeed,
		boost:         defaultBoost,
		rotation:      IdentityRotation,
	}
	for _, opt := range options {
		opt(o)
	}
	o.speed = o.movementSpeed

	o.modes.OnEnter(ModeMove, o.enableMotion)
	o.modes.OnExit(ModeMove, o.resetMotion)
	o.modes.OnEnter(ModePan, o.enablePan)
	o.modes.OnExit(ModePan, o.disablePan)
	return o
}

func (o *cameraOperatorImpl) Activate(src ActionSource) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.active {
		return ErrAlreadyActive
	}

	resolved := make(map[string]*input.Action, len(RequiredActions))
	for _, name := range RequiredActions {
		a, err := src.FindAction(name)
		if err != nil {
			return fmt.Errorf("camera operator: %w", err)
		}
		resolved[name] = a
	}

	handlers := map[string]func(input.Value){
		ActionStartMovement:    o.onStartMovement,
		ActionMoveHorizontally: o.onMoveHorizontally,
		ActionMoveVertically:   o.onMoveVertically,
		ActionBoost:            o.onBoost,
		ActionRotate:           o.onRotate,
		ActionStartPan:         o.onStartPan,
		ActionPan:              o.onPan,
	}
	for _, name := range RequiredActions {
		o.cancels = append(o.cancels, resolved[name].OnPerformed(handlers[name]))
	}

	o.motion = []*input.Action{
		resolved[ActionMoveHorizontally],
		resolved[ActionMoveVertically],
		resolved[ActionBoost],
		resolved[ActionRotate],
	}
	o.pan = resolved[ActionPan]
	o.disableSubActions()

	o.rotation = RotationFromQuat(o.transform.Rotation())
	o.speed = o.movementSpeed
	o.lastFramePosition = o.transform.Position()
	o.speedometer = formatReadout(0) + "m/" + formatReadout(1) + "s"
	o.active = true

	o.logger.Debug("camera operator activated",
		zap.Int("movementSpeed", o.movementSpeed),
		zap.Int("boost", o.boost),
	)
	return nil
}

func (o *cameraOperatorImpl) Deactivate() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.active {
		return
	}
	for _, cancel := range o.cancels {
		cancel()
	}
	o.cancels = nil

	o.transition(ModeNone)
	o.disableSubActions()
	o.horizontalDirection = mgl32.Vec3{}
	o.verticalDirection = mgl32.Vec3{}
	o.active = false

	o.logger.Debug("camera operator deactivated")
}

func (o *cameraOperatorImpl) Active() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

func (o *cameraOperatorImpl) Mode() Mode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.modes.Mode()
}

func (o *cameraOperatorImpl) Tick(deltaTime float32) {
	o.mu.Lock()
	defer o.mu.Unlock()

	var dir mgl32.Vec3
	mode := o.modes.Mode()
	switch mode {
	case ModeMove:
		dir = common.SafeNormalize(o.horizontalDirection.Add(o.verticalDirection))
	case ModePan:
		dir = o.verticalDirection
	default:
		return
	}

	// translate along the orientation from before this tick's snap
	o.transform.Translate(dir.Mul(float32(o.speed) * deltaTime))
	o.transform.SetRotation(o.rotation.Quat())

	if mode == ModePan {
		o.verticalDirection = mgl32.Vec3{}
	}
}

func (o *cameraOperatorImpl) LateTick(deltaTime float32) {
	o.mu.Lock()
	defer o.mu.Unlock()

	position := o.transform.Position()
	distance := position.Sub(o.lastFramePosition).Len()
	o.lastFramePosition = position

	dt := float64(deltaTime)
	if dt <= minReadoutDelta || math.IsInf(dt, 0) || math.IsNaN(dt) {
		return
	}
	o.speedometer = formatReadout(distance/deltaTime) + "m/" + formatReadout(deltaTime/deltaTime) + "s"
}

func (o *cameraOperatorImpl) Speed() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.speed
}

func (o *cameraOperatorImpl) Rotation() Rotation {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rotation
}

func (o *cameraOperatorImpl) MovementSpeed() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.movementSpeed
}

func (o *cameraOperatorImpl) SetMovementSpeed(speed int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.movementSpeed = speed
}

func (o *cameraOperatorImpl) Boost() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.boost
}

func (o *cameraOperatorImpl) SetBoost(boost int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.boost = boost
}

func (o *cameraOperatorImpl) Speedometer() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.speedometer
}

func (o *cameraOperatorImpl) SetSpeedometer(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.speedometer = text
}

// Handlers. Each runs with the operator's lock held; the action map calls them
// outside its own lock, so toggling other actions here is safe.

func (o *cameraOperatorImpl) onStartMovement(v input.Value) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.modes.CanEnter(ModeMove) {
		return
	}
	if v.Button() {
		o.transition(ModeMove)
		return
	}
	if o.modes.Mode() == ModeNone {
		// a release without a matching press still clears the motion state
		o.resetMotion()
		return
	}
	o.transition(ModeNone)
}

func (o *cameraOperatorImpl) onMoveHorizontally(v input.Value) {
	o.mu.Lock()
	defer o.mu.Unlock()

	xy := v.Vector2()
	o.horizontalDirection = common.AngleAxis(90, common.Right).Rotate(mgl32.Vec3{xy.X(), xy.Y(), 0})
}

func (o *cameraOperatorImpl) onMoveVertically(v input.Value) {
	o.mu.Lock()
	defer o.mu.Unlock()

	xy := v.Vector2()
	o.verticalDirection = mgl32.Vec3{xy.X(), xy.Y(), 0}
}

func (o *cameraOperatorImpl) onBoost(v input.Value) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.speed = o.movementSpeed + common.BoolToInt(v.Button())*o.boost
}

func (o *cameraOperatorImpl) onRotate(v input.Value) {
	o.mu.Lock()
	defer o.mu.Unlock()

	delta := v.Vector2()
	o.rotation = o.rotation.Yaw(delta.X()).Pitch(-delta.Y()).Clamped()
}

func (o *cameraOperatorImpl) onStartPan(v input.Value) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.modes.CanEnter(ModePan) {
		return
	}
	if v.Button() {
		o.transition(ModePan)
		return
	}
	if o.modes.Mode() == ModeNone {
		o.disablePan()
		return
	}
	o.transition(ModeNone)
}

func (o *cameraOperatorImpl) onPan(v input.Value) {
	o.mu.Lock()
	defer o.mu.Unlock()

	xy := v.Vector2()
	o.verticalDirection = mgl32.Vec3{xy.X(), xy.Y(), 0}
}

// transition switches modes and logs the change. Caller must hold the mutex.
func (o *cameraOperatorImpl) transition(next Mode) {
	from := o.modes.Mode()
	if o.modes.Transition(next) {
		o.logger.Debug("camera mode changed", zap.Stringer("from", from), zap.Stringer("to", next))
	}
}

// Mode hooks. Called by the ModeMachine with the mutex held.

func (o *cameraOperatorImpl) enableMotion() {
	for _, a := range o.motion {
		a.Enable()
	}
}

// resetMotion disables the motion actions and clears both directions.
func (o *cameraOperatorImpl) resetMotion() {
	for _, a := range o.motion {
		a.Disable()
	}
	o.horizontalDirection = mgl32.Vec3{}
	o.verticalDirection = mgl32.Vec3{}
}

func (o *cameraOperatorImpl) enablePan() {
	if o.pan != nil {
		o.pan.Enable()
	}
}

// disablePan leaves the vertical direction as it is; a pending pan offset survives release.
func (o *cameraOperatorImpl) disablePan() {
	if o.pan != nil {
		o.pan.Disable()
	}
}

func (o *cameraOperatorImpl) disableSubActions() {
	for _, a := range o.motion {
		a.Disable()
	}
	o.disablePan()
}

func formatReadout(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
