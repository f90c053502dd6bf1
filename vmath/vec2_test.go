package vmath_test

import (
	"math"
	"testing"

	"github.com/plus3/platform/vmath"
	"github.com/stretchr/testify/assert"
)

func TestVec2Arithmetic(t *testing.T) {
	a := vmath.V(1, 2)
	b := vmath.V(3, -4)

	assert.Equal(t, vmath.V(4, -2), a.Add(b))
	assert.Equal(t, vmath.V(-2, 6), a.Sub(b))
	assert.Equal(t, vmath.V(2, 4), a.Scale(2))
	assert.Equal(t, vmath.V(0.5, 1), a.Div(2))
	assert.Equal(t, vmath.V(-1, -2), a.Neg())
	assert.Equal(t, vmath.V(3, -8), a.Mul(b))
	assert.Equal(t, float32(-5), a.Dot(b))
	assert.Equal(t, float32(25), b.LenSqr())
	assert.Equal(t, float32(5), b.Len())
}

func TestVec2Directions(t *testing.T) {
	assert.Equal(t, vmath.Vec2{}, vmath.Zero())
	assert.Equal(t, vmath.V(1, 1), vmath.One())
	assert.Equal(t, vmath.V(-1, 0), vmath.Left())
	assert.Equal(t, vmath.V(1, 0), vmath.Right())
	assert.Equal(t, vmath.V(0, -1), vmath.Up())
	assert.Equal(t, vmath.V(0, 1), vmath.Down())
}

func TestVec2Normalized(t *testing.T) {
	tests := []struct {
		name string
		in   vmath.Vec2
		want vmath.Vec2
	}{
		{"zero", vmath.Zero(), vmath.Zero()},
		{"below epsilon", vmath.V(0.0001, 0), vmath.Zero()},
		{"axis", vmath.V(5, 0), vmath.V(1, 0)},
		{"diagonal", vmath.V(3, 4), vmath.V(0.6, 0.8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalized()
			assert.False(t, math.IsNaN(float64(got.X)) || math.IsNaN(float64(got.Y)))
			assert.InDelta(t, tt.want.X, got.X, 1e-6)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-6)
		})
	}
}

func TestLerpAndClamp(t *testing.T) {
	assert.Equal(t, float32(5), vmath.Lerp(0, 10, 0.5))
	assert.Equal(t, vmath.V(1, 2), vmath.V(0, 0).Lerp(vmath.V(2, 4), 0.5))
	assert.Equal(t, float32(1), vmath.Clamp(3, -1, 1))
	assert.Equal(t, float32(-1), vmath.Clamp(-3, -1, 1))
	assert.Equal(t, float32(0.5), vmath.Clamp(0.5, -1, 1))
}
