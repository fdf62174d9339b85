// Package input maps raw window events onto named logical actions. Actions form a dispatch
// table: each entry carries an enabled flag that is checked before its handlers run.
package input

import "github.com/go-gl/mathgl/mgl32"

// ValueKind identifies the payload carried by a Value.
type ValueKind int

const (
	// ValueButton is a pressed/released payload.
	ValueButton ValueKind = iota
	// ValueVector2 is a 2D axis payload (stick position, pointer delta, composite direction).
	ValueVector2
)

// buttonPressPoint is the magnitude at which a vector payload reads as pressed.
const buttonPressPoint = 0.5

// Value is the payload delivered to an action's handlers.
type Value struct {
	kind    ValueKind
	pressed bool
	vector  mgl32.Vec2
}

// ButtonValue creates a button payload.
//
// Parameters:
//   - pressed: true if the control is currently held
//
// Returns:
//   - Value: the payload
func ButtonValue(pressed bool) Value {
	return Value{kind: ValueButton, pressed: pressed}
}

// Vector2Value creates a 2D axis payload.
//
// Parameters:
//   - v: the axis values
//
// Returns:
//   - Value: the payload
func Vector2Value(v mgl32.Vec2) Value {
	return Value{kind: ValueVector2, vector: v}
}

// Kind returns the payload kind.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Button reads the payload as a button. Vector payloads count as pressed once their magnitude reaches 0.5.
//
// Returns:
//   - bool: true if pressed
func (v Value) Button() bool {
	if v.kind == ValueVector2 {
		return v.vector.Len() >= buttonPressPoint
	}
	return v.pressed
}

// Vector2 reads the payload as a 2D vector. Button payloads read as (1, 0) when pressed and (0, 0) otherwise.
//
// Returns:
//   - mgl32.Vec2: the axis values
func (v Value) Vector2() mgl32.Vec2 {
	if v.kind == ValueButton {
		if v.pressed {
			return mgl32.Vec2{1, 0}
		}
		return mgl32.Vec2{}
	}
	return v.vector
}
