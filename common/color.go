package common

import "github.com/go-gl/mathgl/mgl32"

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Lerp blends c toward o by t, clamped to [0, 1].
func (c Color) Lerp(o Color, t float64) Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// HorizonTint picks a background color from a look direction: horizon when level,
// blending toward sky when looking up and toward ground when looking down.
//
// Parameters:
//   - forward: the camera's look direction
//   - sky: color when looking straight up
//   - horizon: color when looking level
//   - ground: color when looking straight down
//
// Returns:
//   - Color: the blended color
func HorizonTint(forward mgl32.Vec3, sky, horizon, ground Color) Color {
	y := float64(SafeNormalize(forward).Y())
	if y >= 0 {
		return horizon.Lerp(sky, y)
	}
	return horizon.Lerp(ground, -y)
}
