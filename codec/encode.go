package codec

import "math"

// Fixed tail bytes identifying Enable / Disable / SetZero. The preceding
// seven bytes are always 0xFF.
const (
	tailEnable  byte = 0xFC
	tailDisable byte = 0xFD
	tailSetZero byte = 0xFE
)

func ffFrame(tail byte) [8]byte {
	var d [8]byte
	for i := 0; i < 7; i++ {
		d[i] = 0xFF
	}
	d[7] = tail
	return d
}

// EncodeEnable builds the Enable command for a motor's send ID.
func EncodeEnable(sendID uint32) CANPacket {
	return CANPacket{SendCANID: sendID, Data: ffFrame(tailEnable)}
}

// EncodeDisable builds the Disable command for a motor's send ID.
func EncodeDisable(sendID uint32) CANPacket {
	return CANPacket{SendCANID: sendID, Data: ffFrame(tailDisable)}
}

// EncodeSetZero builds the SetZero command for a motor's send ID.
func EncodeSetZero(sendID uint32) CANPacket {
	return CANPacket{SendCANID: sendID, Data: ffFrame(tailSetZero)}
}

// EncodeRefresh builds a broadcast state-poll for the motor owning sendID.
func EncodeRefresh(sendID uint32) CANPacket {
	var d [8]byte
	d[0] = byte(sendID & 0xFF)
	d[1] = byte((sendID >> 8) & 0xFF)
	d[2] = 0xCC
	return CANPacket{SendCANID: BroadcastID, Data: d}
}

// register command bytes used by the write/read-register sequences that
// back SetControlMode and QueryParam. The wire spec documents only the
// resulting parameter-response frame layout, not the request frame; this
// mirrors that layout (motor id, rid, then the value at byte 4) with a
// command byte at byte 2 distinguishing read from write.
const (
	regCmdRead  byte = 0x33
	regCmdWrite byte = 0x55
)

// EncodeSetControlMode builds a broadcast write-register command that sets
// a motor's CTRL_MODE register.
func EncodeSetControlMode(sendID uint32, mode ControlMode) CANPacket {
	var d [8]byte
	d[0] = byte(sendID & 0xFF)
	d[1] = byte(CtrlMode)
	d[2] = regCmdWrite
	d[4] = byte(mode)
	return CANPacket{SendCANID: BroadcastID, Data: d}
}

// EncodeQueryParam builds a broadcast read-register command for a
// MotorVariable. The motor's reply on its recv_id is decoded by
// DecodeParam.
func EncodeQueryParam(sendID uint32, rid MotorVariable) CANPacket {
	var d [8]byte
	d[0] = byte(sendID & 0xFF)
	d[1] = byte(rid)
	d[2] = regCmdRead
	return CANPacket{SendCANID: BroadcastID, Data: d}
}

// EncodeMIT builds an MIT-mode control frame: kp, kd, q (16b), dq (12b)
// and tau (12b) big-endian bit-packed per the Damiao DM-series MIT wire
// format.
func EncodeMIT(sendID uint32, l LimitParam, p MITParam) CANPacket {
	q := EncodePosition(p.Q, l)
	dq := EncodeVelocity(p.Dq, l)
	kp := EncodeKp(p.Kp)
	kd := EncodeKd(p.Kd)
	tau := EncodeTorque(p.Tau, l)

	var d [8]byte
	d[0] = byte(q >> 8)
	d[1] = byte(q & 0xFF)
	d[2] = byte(dq >> 4)
	d[3] = byte((dq&0xF)<<4) | byte((kp>>8)&0xF)
	d[4] = byte(kp & 0xFF)
	d[5] = byte(kd >> 4)
	d[6] = byte((kd&0xF)<<4) | byte((tau>>8)&0xF)
	d[7] = byte(tau & 0xFF)

	return CANPacket{SendCANID: sendID + IDOffset(MIT), Data: d}
}

// EncodePosVel builds a POS_VEL-mode control frame: q then dq, each as
// IEEE-754 little-endian float32.
func EncodePosVel(sendID uint32, p PosVelParam) CANPacket {
	var d [8]byte
	putFloat32LE(d[0:4], p.Q)
	putFloat32LE(d[4:8], p.Dq)
	return CANPacket{SendCANID: sendID + IDOffset(POSVEL), Data: d}
}

// EncodeVel builds a VEL-mode control frame: dq as IEEE-754 little-endian
// float32, remaining four bytes reserved.
func EncodeVel(sendID uint32, dq float32) CANPacket {
	var d [8]byte
	putFloat32LE(d[0:4], dq)
	return CANPacket{SendCANID: sendID + IDOffset(VEL), Data: d}
}

// EncodePosForce builds a POS_FORCE-mode control frame: q (16b), dq (12b)
// and i (12b) big-endian bit-packed, mirroring the q/dq/tau packing of
// EncodeMIT. i's quantisation range is the motor's current TMax, which
// GripperComponent.SetLimit may have overridden for a compliance cap.
func EncodePosForce(sendID uint32, l LimitParam, p PosForceParam) CANPacket {
	q := EncodePosition(p.Q, l)
	dq := EncodeVelocity(p.Dq, l)
	i := EncodeTorque(p.I, l)

	var d [8]byte
	d[0] = byte(q >> 8)
	d[1] = byte(q & 0xFF)
	d[2] = byte(dq >> 4)
	d[3] = byte((dq&0xF)<<4) | byte((i>>8)&0xF)
	d[4] = byte(i & 0xFF)

	return CANPacket{SendCANID: sendID + IDOffset(POSFORCE), Data: d}
}

func putFloat32LE(b []byte, f float32) {
	u := math.Float32bits(f)
	b[0] = byte(u)
	b[1] = byte(u >> 8)
	b[2] = byte(u >> 16)
	b[3] = byte(u >> 24)
}

func float32LE(b []byte) float32 {
	u := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(u)
}
