package input

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFindAction(t *testing.T) {
	m := NewActionMap(WithActions("Boost", "Rotate"))

	if a, err := m.FindAction("Boost"); err != nil || a.Name() != "Boost" {
		t.Fatalf("FindAction(Boost) = %v, %v", a, err)
	}
	_, err := m.FindAction("Jump")
	if !errors.Is(err, ErrActionNotFound) {
		t.Fatalf("expected ErrActionNotFound, got %v", err)
	}
	if m.AddAction("Boost") != m.Actions()[0] {
		t.Fatalf("AddAction should return the existing action")
	}
	if len(m.Actions()) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(m.Actions()))
	}
}

func TestPerformRespectsEnabledFlag(t *testing.T) {
	cases := []struct {
		name    string
		enabled bool
		want    int
	}{
		{"enabled_delivers", true, 1},
		{"disabled_suppresses", false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := NewActionMap(WithActions("Pan"))
			a, _ := m.FindAction("Pan")
			got := 0
			a.OnPerformed(func(Value) { got++ })
			if !c.enabled {
				a.Disable()
			}
			if delivered := m.Trigger("Pan", Vector2Value(mgl32.Vec2{1, 0})); delivered != c.enabled {
				t.Fatalf("Trigger returned %v", delivered)
			}
			if got != c.want {
				t.Fatalf("handler ran %d times, want %d", got, c.want)
			}
		})
	}
}

func TestUnsubscribe(t *testing.T) {
	a := NewAction("Rotate")
	var calls []string
	cancelA := a.OnPerformed(func(Value) { calls = append(calls, "a") })
	a.OnPerformed(func(Value) { calls = append(calls, "b") })

	a.Perform(ButtonValue(true))
	cancelA()
	cancelA()
	a.Perform(ButtonValue(true))

	want := []string{"a", "b", "b"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
	if a.HandlerCount() != 1 {
		t.Fatalf("expected 1 handler left, got %d", a.HandlerCount())
	}
}

func TestHandlerMayToggleActions(t *testing.T) {
	a := NewAction("StartMovement")
	b := NewAction("Boost")
	b.Disable()
	a.OnPerformed(func(v Value) {
		if v.Button() {
			b.Enable()
			a.Disable()
		}
	})
	a.Perform(ButtonValue(true))
	if !b.Enabled() || a.Enabled() {
		t.Fatalf("handler toggles were not applied")
	}
}

func TestTriggerUnknownAction(t *testing.T) {
	m := NewActionMap()
	if m.Trigger("Missing", ButtonValue(true)) {
		t.Fatalf("unknown action should not be delivered")
	}
}

func TestValueConversions(t *testing.T) {
	cases := []struct {
		name   string
		v      Value
		button bool
		vec    mgl32.Vec2
	}{
		{"button_pressed", ButtonValue(true), true, mgl32.Vec2{1, 0}},
		{"button_released", ButtonValue(false), false, mgl32.Vec2{}},
		{"vector_small", Vector2Value(mgl32.Vec2{0.1, 0.1}), false, mgl32.Vec2{0.1, 0.1}},
		{"vector_full", Vector2Value(mgl32.Vec2{0, 1}), true, mgl32.Vec2{0, 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.v.Button() != c.button {
				t.Fatalf("Button() = %v", c.v.Button())
			}
			if c.v.Vector2() != c.vec {
				t.Fatalf("Vector2() = %v", c.v.Vector2())
			}
		})
	}
}
