package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec_ClampLen(t *testing.T) {
	testCases := []struct {
		name     string
		v        Vec
		max      float64
		expected Vec
	}{
		{"within bound", Vec{X: 3, Y: 4}, 10, Vec{X: 3, Y: 4}},
		{"exactly at bound", Vec{X: 3, Y: 4}, 5, Vec{X: 3, Y: 4}},
		{"above bound", Vec{X: 6, Y: 8}, 5, Vec{X: 3, Y: 4}},
		{"zero vector", Vec{}, 5, Vec{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.v.ClampLen(tc.max)
			assert.InDelta(t, tc.expected.X, got.X, 1e-9)
			assert.InDelta(t, tc.expected.Y, got.Y, 1e-9)
		})
	}
}

func TestVec_Norm(t *testing.T) {
	assert.Equal(t, Vec{}, Vec{}.Norm())
	n := Vec{X: 0, Y: -7}.Norm()
	assert.InDelta(t, 0, n.X, 1e-9)
	assert.InDelta(t, -1, n.Y, 1e-9)
	assert.InDelta(t, 1.0, Vec{X: 12, Y: -5}.Norm().Len(), 1e-9)
}

func TestVec_IsFinite(t *testing.T) {
	assert.True(t, Vec{X: 1, Y: 2}.IsFinite())
	assert.False(t, Vec{X: math.NaN(), Y: 0}.IsFinite())
	assert.False(t, Vec{X: 0, Y: math.Inf(1)}.IsFinite())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(0.5, 1, 2))
	assert.Equal(t, 2.0, Clamp(3, 1, 2))
	assert.Equal(t, 1.5, Clamp(1.5, 1, 2))
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Vec{X: 1, Y: 1}, Vec{X: 4, Y: 5}), 1e-9)
}
