package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Quantisation round-trip: decode(encode(x)) must land within one LSB of x,
// for every motor type and every field.
func TestQuantisationRoundTrip(t *testing.T) {
	for mt, l := range limitTable {
		l := l
		t.Run(mt.String(), func(t *testing.T) {
			positionLSB := 2 * l.PMax / float32((1<<positionBits)-1)
			velocityLSB := 2 * l.VMax / float32((1<<velocityBits)-1)
			torqueLSB := 2 * l.TMax / float32((1<<torqueBits)-1)

			for _, frac := range []float32{-1, -0.5, 0, 0.37, 0.999, 1} {
				pos := frac * l.PMax
				vel := frac * l.VMax
				tq := frac * l.TMax

				assert.InDelta(t, pos, DecodePosition(EncodePosition(pos, l), l), float64(positionLSB))
				assert.InDelta(t, vel, DecodeVelocity(EncodeVelocity(vel, l), l), float64(velocityLSB))
				assert.InDelta(t, tq, DecodeTorque(EncodeTorque(tq, l), l), float64(torqueLSB))
			}
		})
	}
}

func TestQuantisationClampsOutOfRange(t *testing.T) {
	l := LimitParam{PMax: 12.5, VMax: 30, TMax: 10}

	assert.Equal(t, uint16((1<<positionBits)-1), EncodePosition(l.PMax*10, l))
	assert.Equal(t, uint16(0), EncodePosition(-l.PMax*10, l))
}

func TestKpKdRangeIsAsymmetric(t *testing.T) {
	// kp in [0,500], kd in [0,5]: zero maps to raw zero, not mid-scale.
	assert.Equal(t, uint16(0), EncodeKp(0))
	assert.Equal(t, uint16(0), EncodeKd(0))
	assert.Equal(t, uint16((1<<kpBits)-1), EncodeKp(500))
	assert.Equal(t, uint16((1<<kdBits)-1), EncodeKd(5))
}
