package operator

import "testing"

func TestModeMachineCanEnter(t *testing.T) {
	cases := []struct {
		from Mode
		to   Mode
		want bool
	}{
		{ModeNone, ModeNone, true},
		{ModeNone, ModeMove, true},
		{ModeNone, ModePan, true},
		{ModeMove, ModeMove, true},
		{ModeMove, ModePan, false},
		{ModeMove, ModeNone, true},
		{ModePan, ModePan, true},
		{ModePan, ModeMove, false},
		{ModePan, ModeNone, true},
	}
	for _, c := range cases {
		t.Run(c.from.String()+"_to_"+c.to.String(), func(t *testing.T) {
			m := NewModeMachine()
			m.Transition(c.from)
			if got := m.CanEnter(c.to); got != c.want {
				t.Fatalf("CanEnter(%v) from %v = %v, want %v", c.to, c.from, got, c.want)
			}
		})
	}
}

func TestModeMachineHookOrder(t *testing.T) {
	m := NewModeMachine()
	var calls []string
	m.OnEnter(ModeMove, func() { calls = append(calls, "enter move") })
	m.OnExit(ModeMove, func() { calls = append(calls, "exit move") })
	m.OnEnter(ModeNone, func() { calls = append(calls, "enter none") })
	m.OnExit(ModeNone, func() { calls = append(calls, "exit none") })

	if !m.Transition(ModeMove) {
		t.Fatalf("None -> Move should change mode")
	}
	if m.Transition(ModeMove) {
		t.Fatalf("self-transition should be a no-op")
	}
	if m.Transition(ModePan) {
		t.Fatalf("Move -> Pan should be refused")
	}
	m.Transition(ModeNone)

	want := []string{"exit none", "enter move", "exit move", "enter none"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
	if m.Mode() != ModeNone {
		t.Fatalf("mode = %v", m.Mode())
	}
}
