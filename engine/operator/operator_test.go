package operator

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/Carmen-Shannon/oxy-freecam/engine/camera"
	"github.com/Carmen-Shannon/oxy-freecam/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type rig struct {
	op      *cameraOperatorImpl
	actions input.ActionMap
	camera  camera.CameraController
}

func newRig(t *testing.T, options ...CameraOperatorOption) rig {
	t.Helper()
	ctrl := camera.NewCameraController()
	m := input.NewActionMap(input.WithActions(RequiredActions...))
	op := NewCameraOperator(ctrl, options...).(*cameraOperatorImpl)
	if err := op.Activate(m); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	return rig{op: op, actions: m, camera: ctrl}
}

func (r rig) press(name string)   { r.actions.Trigger(name, input.ButtonValue(true)) }
func (r rig) release(name string) { r.actions.Trigger(name, input.ButtonValue(false)) }
func (r rig) vector(name string, x, y float32) {
	r.actions.Trigger(name, input.Vector2Value(mgl32.Vec2{x, y}))
}

func nearVec3(got, want mgl32.Vec3, tol float32) bool {
	return got.Sub(want).Len() <= tol
}

func (r rig) enabled(t *testing.T, name string) bool {
	t.Helper()
	a, err := r.actions.FindAction(name)
	if err != nil {
		t.Fatal(err)
	}
	return a.Enabled()
}

func TestActivateBindsActions(t *testing.T) {
	r := newRig(t)

	want := map[string]bool{
		ActionStartMovement:    true,
		ActionStartPan:         true,
		ActionMoveHorizontally: false,
		ActionMoveVertically:   false,
		ActionBoost:            false,
		ActionRotate:           false,
		ActionPan:              false,
	}
	for name, enabled := range want {
		if r.enabled(t, name) != enabled {
			t.Errorf("%s enabled = %v, want %v", name, !enabled, enabled)
		}
		a, _ := r.actions.FindAction(name)
		if a.HandlerCount() != 1 {
			t.Errorf("%s has %d handlers", name, a.HandlerCount())
		}
	}
	if r.op.Mode() != ModeNone || r.op.Speed() != defaultMovementSpeed {
		t.Fatalf("unexpected initial state: mode %v speed %d", r.op.Mode(), r.op.Speed())
	}
	if err := r.op.Activate(r.actions); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("second Activate = %v", err)
	}
}

func TestActivateMissingActionLeavesNoState(t *testing.T) {
	m := input.NewActionMap(input.WithActions(RequiredActions[:len(RequiredActions)-1]...))
	op := NewCameraOperator(camera.NewCameraController())

	err := op.Activate(m)
	if !errors.Is(err, input.ErrActionNotFound) {
		t.Fatalf("expected ErrActionNotFound, got %v", err)
	}
	if op.Active() {
		t.Fatalf("operator must stay inactive")
	}
	for _, a := range m.Actions() {
		if !a.Enabled() || a.HandlerCount() != 0 {
			t.Fatalf("%s was modified: enabled=%v handlers=%d", a.Name(), a.Enabled(), a.HandlerCount())
		}
	}
}

func TestStartMovementCycles(t *testing.T) {
	r := newRig(t)

	for i := 0; i < 3; i++ {
		r.press(ActionStartMovement)
		if r.op.Mode() != ModeMove {
			t.Fatalf("cycle %d: mode = %v after press", i, r.op.Mode())
		}
		for _, name := range []string{ActionMoveHorizontally, ActionMoveVertically, ActionBoost, ActionRotate} {
			if !r.enabled(t, name) {
				t.Fatalf("cycle %d: %s not enabled", i, name)
			}
		}
		r.vector(ActionMoveHorizontally, 1, 1)
		r.vector(ActionMoveVertically, 0, 1)

		r.release(ActionStartMovement)
		if r.op.Mode() != ModeNone {
			t.Fatalf("cycle %d: mode = %v after release", i, r.op.Mode())
		}
		if r.op.horizontalDirection != (mgl32.Vec3{}) || r.op.verticalDirection != (mgl32.Vec3{}) {
			t.Fatalf("cycle %d: directions not cleared", i)
		}
		if r.enabled(t, ActionRotate) {
			t.Fatalf("cycle %d: Rotate still enabled", i)
		}
	}
}

func TestModesAreMutuallyExclusive(t *testing.T) {
	t.Run("pan_blocked_in_move", func(t *testing.T) {
		r := newRig(t)
		r.press(ActionStartMovement)
		r.press(ActionStartPan)
		if r.op.Mode() != ModeMove || r.enabled(t, ActionPan) {
			t.Fatalf("StartPan changed state while moving")
		}
		r.release(ActionStartPan)
		if r.op.Mode() != ModeMove {
			t.Fatalf("StartPan release left Move")
		}
	})
	t.Run("move_blocked_in_pan", func(t *testing.T) {
		r := newRig(t)
		r.press(ActionStartPan)
		r.press(ActionStartMovement)
		if r.op.Mode() != ModePan || r.enabled(t, ActionMoveHorizontally) {
			t.Fatalf("StartMovement changed state while panning")
		}
	})
}

func TestBoostDoesNotAccumulate(t *testing.T) {
	r := newRig(t, WithMovementSpeed(3), WithBoost(7))
	r.press(ActionStartMovement)

	steps := []struct {
		pressed bool
		want    int
	}{
		{true, 10},
		{true, 10},
		{true, 10},
		{false, 3},
		{false, 3},
		{true, 10},
	}
	for i, s := range steps {
		r.actions.Trigger(ActionBoost, input.ButtonValue(s.pressed))
		if r.op.Speed() != s.want {
			t.Fatalf("step %d: speed = %d, want %d", i, r.op.Speed(), s.want)
		}
	}
}

func TestMoveHorizontallyMapsToGroundPlane(t *testing.T) {
	r := newRig(t)
	r.press(ActionStartMovement)
	r.vector(ActionMoveHorizontally, 0.5, 1)

	if !nearVec3(r.op.horizontalDirection, mgl32.Vec3{0.5, 0, 1}, 1e-5) {
		t.Fatalf("horizontal = %v", r.op.horizontalDirection)
	}
	r.vector(ActionMoveVertically, 0, -1)
	if r.op.verticalDirection != (mgl32.Vec3{0, -1, 0}) {
		t.Fatalf("vertical = %v", r.op.verticalDirection)
	}
}

func TestTickTranslatesBeforeSnapping(t *testing.T) {
	r := newRig(t)
	r.press(ActionStartMovement)
	r.vector(ActionRotate, 90, 0)
	r.vector(ActionMoveHorizontally, 0, 1)

	r.op.Tick(1)
	if p := r.camera.Position(); !nearVec3(p, mgl32.Vec3{0, 0, 5}, 1e-4) {
		t.Fatalf("first tick should use the old orientation, position = %v", p)
	}

	r.op.Tick(1)
	if p := r.camera.Position(); !nearVec3(p, mgl32.Vec3{5, 0, 5}, 1e-4) {
		t.Fatalf("second tick should use the snapped orientation, position = %v", p)
	}
}

func TestMoveKeyHeldBeforeStartMovement(t *testing.T) {
	r := newRig(t)
	router, err := input.NewRouter(r.actions, input.Bindings{
		ActionStartMovement:    {Type: input.BindingButton, Controls: []string{"mouse:right"}},
		ActionMoveHorizontally: {Type: input.BindingComposite, Up: "key:W", Down: "key:S", Left: "key:A", Right: "key:D"},
		ActionBoost:            {Type: input.BindingButton, Controls: []string{"key:LeftShift"}},
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	router.KeyDown(common.KeyW)
	router.KeyDown(common.KeyLeftShift)
	router.MouseButtonDown(common.MouseButtonRight, 0, 0)
	if r.op.Mode() != ModeMove {
		t.Fatalf("mode = %v", r.op.Mode())
	}
	if r.op.Speed() != 15 {
		t.Fatalf("held boost should apply on entering move, speed = %d", r.op.Speed())
	}

	r.op.Tick(1)
	if p := r.camera.Position(); !nearVec3(p, mgl32.Vec3{0, 0, 15}, 1e-4) {
		t.Fatalf("held key should move the camera, position = %v", p)
	}
}

func TestTickNormalizesMoveDirection(t *testing.T) {
	r := newRig(t)
	r.press(ActionStartMovement)
	r.press(ActionBoost)
	r.vector(ActionMoveHorizontally, 0, 1)
	r.vector(ActionMoveVertically, 0, 1)

	r.op.Tick(0.5)
	// (0,1,1) normalized at speed 15 for half a second
	if got := r.camera.Position().Len(); got < 7.49 || got > 7.51 {
		t.Fatalf("travelled %v, want 7.5", got)
	}
}

func TestTickDoesNothingInNone(t *testing.T) {
	r := newRig(t)
	r.op.verticalDirection = mgl32.Vec3{1, 0, 0}
	r.op.Tick(1)
	if r.camera.Position() != (mgl32.Vec3{}) {
		t.Fatalf("camera moved in ModeNone")
	}
}

func TestPanIsOneShot(t *testing.T) {
	r := newRig(t)
	r.press(ActionStartPan)
	r.vector(ActionPan, 1, 0)

	r.op.Tick(1)
	if p := r.camera.Position(); !nearVec3(p, mgl32.Vec3{5, 0, 0}, 1e-5) {
		t.Fatalf("position = %v", p)
	}
	if r.op.verticalDirection != (mgl32.Vec3{}) {
		t.Fatalf("vertical direction not cleared after a pan tick")
	}

	r.op.Tick(1)
	if p := r.camera.Position(); !nearVec3(p, mgl32.Vec3{5, 0, 0}, 1e-5) {
		t.Fatalf("second tick moved without a new pan event: %v", p)
	}
}

// Releasing StartPan keeps a pending pan offset, unlike releasing StartMovement.
func TestPanReleaseKeepsVerticalDirection(t *testing.T) {
	r := newRig(t)
	r.press(ActionStartPan)
	r.vector(ActionPan, 1, 2)
	r.release(ActionStartPan)

	if r.op.Mode() != ModeNone || r.enabled(t, ActionPan) {
		t.Fatalf("pan release did not return to None")
	}
	if r.op.verticalDirection != (mgl32.Vec3{1, 2, 0}) {
		t.Fatalf("vertical direction = %v", r.op.verticalDirection)
	}
}

func TestRotateClampsPitch(t *testing.T) {
	r := newRig(t)
	r.press(ActionStartMovement)
	for i := 0; i < 20; i++ {
		r.vector(ActionRotate, 0, -10)
	}
	if x := r.op.Rotation().Euler().X(); x > 90.01 {
		t.Fatalf("pitch = %v, expected at most 90", x)
	}
	r.op.Tick(0)
	if fwd := r.camera.Forward(); fwd.Y() > -0.999 {
		t.Fatalf("camera should look straight down, forward = %v", fwd)
	}
}

func TestLateTickReadout(t *testing.T) {
	r := newRig(t)

	r.op.LateTick(1.0 / 60)
	r.op.LateTick(1.0 / 60)
	if got := r.op.Speedometer(); got != "0m/1s" {
		t.Fatalf("idle readout = %q", got)
	}

	r.camera.Translate(mgl32.Vec3{0, 0, 2.5})
	r.op.LateTick(0.5)
	if got := r.op.Speedometer(); got != "5m/1s" {
		t.Fatalf("readout = %q", got)
	}

	r.camera.Translate(mgl32.Vec3{0, 0, 1})
	r.op.LateTick(0)
	if got := r.op.Speedometer(); got != "5m/1s" {
		t.Fatalf("zero delta must keep the readout, got %q", got)
	}
	r.op.LateTick(1)
	if got := r.op.Speedometer(); got != "0m/1s" {
		t.Fatalf("last position should have advanced during the skipped frame, got %q", got)
	}
}

func TestSpeedometerStartsAtZero(t *testing.T) {
	r := newRig(t)
	if got := r.op.Speedometer(); got != "0m/1s" {
		t.Fatalf("readout after Activate = %q", got)
	}
	r.op.LateTick(0)
	if got := r.op.Speedometer(); got != "0m/1s" {
		t.Fatalf("skipped first frame should keep the initial readout, got %q", got)
	}
}

func TestDeactivate(t *testing.T) {
	r := newRig(t)
	r.press(ActionStartMovement)
	r.vector(ActionMoveHorizontally, 1, 0)

	r.op.Deactivate()
	r.op.Deactivate()

	if r.op.Active() || r.op.Mode() != ModeNone {
		t.Fatalf("operator still active")
	}
	for _, a := range r.actions.Actions() {
		if a.HandlerCount() != 0 {
			t.Fatalf("%s still subscribed", a.Name())
		}
	}
	if r.enabled(t, ActionMoveHorizontally) || r.enabled(t, ActionPan) {
		t.Fatalf("sub-actions still enabled")
	}
	r.press(ActionStartMovement)
	if r.op.Mode() != ModeNone {
		t.Fatalf("deactivated operator reacted to input")
	}
	if err := r.op.Activate(r.actions); err != nil {
		t.Fatalf("re-Activate: %v", err)
	}
}

func TestLogsModeTransitions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := newRig(t, WithLogger(zap.New(core)))

	r.press(ActionStartMovement)
	r.release(ActionStartMovement)

	entries := logs.FilterMessage("camera mode changed").All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 transition logs, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["from"] != "none" || ctx["to"] != "move" {
		t.Fatalf("unexpected fields %v", ctx)
	}
	if logs.FilterMessage("camera operator activated").Len() != 1 {
		t.Fatalf("activation not logged")
	}
}
