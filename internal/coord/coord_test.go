package coord

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	for _, x := range []float64{-180, -91.123456, 0, 2.21, 48.0, 55.999999, 179.999999} {
		got := ToDegrees(ToInt(x))
		assert.Less(t, math.Abs(got-x), 1e-6, "x=%v got=%v", x, got)
	}
}

func TestToIntTruncatesTowardNegativeInfinity(t *testing.T) {
	assert.Equal(t, int32(-1), ToInt(-0.00000001))
	assert.Equal(t, int32(0), ToInt(0.00000001))
}

func TestKnownValues(t *testing.T) {
	assert.Equal(t, int32(22100000), ToInt(2.21))
	assert.Equal(t, int32(480000000), ToInt(48.0))
}
