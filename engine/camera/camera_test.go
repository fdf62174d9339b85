package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestControllerTranslateUsesLocalAxes(t *testing.T) {
	cases := []struct {
		name  string
		yaw   float32
		local mgl32.Vec3
		want  mgl32.Vec3
	}{
		{"identity_forward", 0, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 1}},
		{"yaw90_forward_is_world_right", 90, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		{"yaw90_right_is_world_back", 90, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{"up_unaffected_by_yaw", 45, mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, 2, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cc := NewCameraController(WithEulerAngles(0, c.yaw, 0))
			cc.Translate(c.local)
			if got := cc.Position(); !nearVec3(got, c.want, 1e-5) {
				t.Fatalf("position = %v, want %v", got, c.want)
			}
		})
	}
}

func TestControllerAxesAndEuler(t *testing.T) {
	cc := NewCameraController(WithPosition(1, 2, 3), WithEulerAngles(30, 0, 0))
	if cc.Position() != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("unexpected position %v", cc.Position())
	}
	e := cc.EulerAngles()
	if math.Abs(float64(e.X()-30)) > 1e-3 {
		t.Fatalf("pitch = %v, want 30", e.X())
	}
	if cc.Forward().Y() >= 0 {
		t.Fatalf("positive pitch should look down, forward = %v", cc.Forward())
	}
	if !nearVec3(cc.Right(), mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Fatalf("pitch should not move the right axis, got %v", cc.Right())
	}
	if cc.Up().Z() <= 0 {
		t.Fatalf("pitching down should tilt up toward +Z, got %v", cc.Up())
	}
}

func TestViewMatrix(t *testing.T) {
	cc := NewCameraController(WithPosition(4, 5, 6), WithEulerAngles(20, 70, 0))
	cam := NewCamera(WithController(cc), WithAspect(16.0/9.0))

	view := cam.ViewMatrix()

	eye := cc.Position()
	got := view.Mul4x1(eye.Vec4(1)).Vec3()
	if !nearVec3(got, mgl32.Vec3{}, 1e-4) {
		t.Fatalf("camera position should map to origin, got %v", got)
	}

	ahead := eye.Add(cc.Forward())
	got = view.Mul4x1(ahead.Vec4(1)).Vec3()
	if !nearVec3(got, mgl32.Vec3{0, 0, -1}, 1e-4) {
		t.Fatalf("forward should map to -Z, got %v", got)
	}

	right := eye.Add(cc.Right())
	got = view.Mul4x1(right.Vec4(1)).Vec3()
	if !nearVec3(got, mgl32.Vec3{1, 0, 0}, 1e-4) {
		t.Fatalf("right should map to +X, got %v", got)
	}
}

func TestUpdateFollowsController(t *testing.T) {
	cc := NewCameraController()
	cam := NewCamera(WithController(cc))
	before := cam.ViewMatrix()

	cc.SetPosition(mgl32.Vec3{0, 0, 10})
	if cam.ViewMatrix() != before {
		t.Fatalf("view matrix should only change on Update")
	}
	cam.Update()
	if cam.ViewMatrix() == before {
		t.Fatalf("view matrix should change after Update")
	}

	want := cam.ProjectionMatrix().Mul4(cam.ViewMatrix())
	if got := cam.ViewProjectionMatrix(); !nearMat4(got, want, 1e-5) {
		t.Fatalf("view-projection mismatch")
	}
}

func TestCameraWithoutController(t *testing.T) {
	cam := NewCamera()
	cam.Update()
	if cam.ViewMatrix() != mgl32.Ident4() {
		t.Fatalf("view should stay identity without controller")
	}
	cam.SetAspect(2)
	if cam.Aspect() != 2 {
		t.Fatalf("aspect not stored")
	}
}

func nearVec3(got, want mgl32.Vec3, tol float32) bool {
	return got.Sub(want).Len() <= tol
}

func nearMat4(got, want mgl32.Mat4, tol float64) bool {
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > tol {
			return false
		}
	}
	return true
}
