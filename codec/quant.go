package codec

import "math"

// fixedPointRange maps a float in [min, max] onto an n-bit unsigned
// integer: u = round((x - min) * (2^n - 1) / (max - min)), clamped to
// [0, 2^n - 1]. When min == -max this is exactly the symmetric
// quantisation formula from the wire spec; the generalised min/max form
// also covers the asymmetric MIT gain ranges (kp in [0,500], kd in [0,5]).
func fixedPointEncode(x, min, max float32, bits uint) uint16 {
	span := float64(max) - float64(min)
	scale := float64(uint32(1)<<bits - 1)
	u := math.Round((float64(x) - float64(min)) * scale / span)
	if u < 0 {
		u = 0
	}
	if u > scale {
		u = scale
	}
	return uint16(u)
}

func fixedPointDecode(u uint16, min, max float32, bits uint) float32 {
	span := float64(max) - float64(min)
	scale := float64(uint32(1)<<bits - 1)
	return min + float32(float64(u)*span/scale)
}

// Position/velocity/torque bit widths and MIT gain ranges, per the wire
// spec's quantisation table.
const (
	positionBits = 16
	velocityBits = 12
	torqueBits   = 12
	kpBits       = 12
	kdBits       = 12
)

var (
	kpRange = [2]float32{0, 500}
	kdRange = [2]float32{0, 5}
)

// EncodePosition quantises a position into its 16-bit wire representation
// using the motor's ±PMax range.
func EncodePosition(x float32, l LimitParam) uint16 {
	return fixedPointEncode(x, -l.PMax, l.PMax, positionBits)
}

// DecodePosition inverts EncodePosition.
func DecodePosition(u uint16, l LimitParam) float32 {
	return fixedPointDecode(u, -l.PMax, l.PMax, positionBits)
}

// EncodeVelocity quantises a velocity into its 12-bit wire representation
// using the motor's ±VMax range.
func EncodeVelocity(x float32, l LimitParam) uint16 {
	return fixedPointEncode(x, -l.VMax, l.VMax, velocityBits)
}

// DecodeVelocity inverts EncodeVelocity.
func DecodeVelocity(u uint16, l LimitParam) float32 {
	return fixedPointDecode(u, -l.VMax, l.VMax, velocityBits)
}

// EncodeTorque quantises a torque or current into its 12-bit wire
// representation using the motor's ±TMax range.
func EncodeTorque(x float32, l LimitParam) uint16 {
	return fixedPointEncode(x, -l.TMax, l.TMax, torqueBits)
}

// DecodeTorque inverts EncodeTorque.
func DecodeTorque(u uint16, l LimitParam) float32 {
	return fixedPointDecode(u, -l.TMax, l.TMax, torqueBits)
}

// EncodeKp quantises an MIT position gain, clamped to [0, 500].
func EncodeKp(kp float32) uint16 {
	return fixedPointEncode(kp, kpRange[0], kpRange[1], kpBits)
}

// EncodeKd quantises an MIT damping gain, clamped to [0, 5].
func EncodeKd(kd float32) uint16 {
	return fixedPointEncode(kd, kdRange[0], kdRange[1], kdBits)
}
