package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSphericalZeroForSamePoint(t *testing.T) {
	p := [2]float64{2.21, 48.0}
	assert.InDelta(t, 0.0, Spherical(p, p), 1e-9)
}

func TestSphericalSymmetric(t *testing.T) {
	a := [2]float64{2.21, 48.0}
	b := [2]float64{2.3522, 48.8566}
	assert.InDelta(t, Spherical(a, b), Spherical(b, a), 1e-9)
}

func TestSphericalMonotoneWithOffset(t *testing.T) {
	origin := [2]float64{2.21, 48.0}
	near := [2]float64{2.22, 48.0}
	far := [2]float64{3.21, 48.0}
	assert.Less(t, Spherical(origin, near), Spherical(origin, far))
}
