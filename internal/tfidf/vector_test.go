package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector_Dot(t *testing.T) {
	a := Vector{{Term: 0, Weight: 1}, {Term: 2, Weight: 2}, {Term: 5, Weight: 3}}
	b := Vector{{Term: 1, Weight: 4}, {Term: 2, Weight: 5}, {Term: 5, Weight: 6}, {Term: 7, Weight: 1}}

	assert.InDelta(t, 2*5+3*6, a.Dot(b), 1e-12)
	assert.InDelta(t, a.Dot(b), b.Dot(a), 1e-12)
	assert.Equal(t, 0.0, a.Dot(nil))
	assert.Equal(t, 0.0, Vector(nil).Dot(a))
}

func TestVector_Weight(t *testing.T) {
	v := Vector{{Term: 1, Weight: 0.5}, {Term: 3, Weight: 0.25}, {Term: 8, Weight: 0.125}}

	assert.Equal(t, 0.5, v.Weight(1))
	assert.Equal(t, 0.25, v.Weight(3))
	assert.Equal(t, 0.125, v.Weight(8))
	assert.Equal(t, 0.0, v.Weight(0))
	assert.Equal(t, 0.0, v.Weight(4))
	assert.Equal(t, 0.0, v.Weight(9))
}

func TestVector_Normalize(t *testing.T) {
	v := Vector{{Term: 0, Weight: 3}, {Term: 1, Weight: 4}}
	assert.Equal(t, 5.0, v.Norm())

	v.normalize()
	assert.InDelta(t, 1.0, v.Norm(), 1e-12)
	assert.InDelta(t, 0.6, v.Weight(0), 1e-12)
	assert.InDelta(t, 0.8, v.Weight(1), 1e-12)
}

func TestVector_ZeroNormalizeIsSafe(t *testing.T) {
	var v Vector
	v.normalize()

	assert.True(t, v.IsZero())
	assert.Equal(t, 0.0, v.Norm())
	assert.False(t, math.IsNaN(v.Norm()))
}
