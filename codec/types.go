// Package codec implements the bit-exact wire format for the DM-series
// servo actuators: command frame encoding, state/parameter frame decoding,
// and the per-motor-type fixed-point quantisation tables. Every function
// here is pure — no I/O, no mutation of caller state.
package codec

// MotorType is the closed enumeration of supported DM-series actuator
// variants. Each carries a LimitParam used for symmetric fixed-point
// quantisation of position, velocity and torque/current.
type MotorType int

const (
	DM3507 MotorType = iota
	DM4310
	DM4310_48V
	DM4340
	DM4340_48V
	DM6006
	DM8006
	DM8009
	DM10010L
	DM10010
	DMH3510
	DMH6215
	DMG6220
)

func (t MotorType) String() string {
	if s, ok := motorTypeNames[t]; ok {
		return s
	}
	return "MotorType(unknown)"
}

var motorTypeNames = map[MotorType]string{
	DM3507:     "DM3507",
	DM4310:     "DM4310",
	DM4310_48V: "DM4310_48V",
	DM4340:     "DM4340",
	DM4340_48V: "DM4340_48V",
	DM6006:     "DM6006",
	DM8006:     "DM8006",
	DM8009:     "DM8009",
	DM10010L:   "DM10010L",
	DM10010:    "DM10010",
	DMH3510:    "DMH3510",
	DMH6215:    "DMH6215",
	DMG6220:    "DMG6220",
}

// LimitParam gives the absolute symmetric range used for quantisation of
// position, velocity and torque/current for one motor variant.
type LimitParam struct {
	PMax float32
	VMax float32
	TMax float32
}

// limitTable is the compile-time, per-MotorType quantisation range table.
// Values follow the commonly published Damiao DM-series firmware limits.
var limitTable = map[MotorType]LimitParam{
	DM3507:     {PMax: 12.5, VMax: 50, TMax: 5},
	DM4310:     {PMax: 12.5, VMax: 30, TMax: 10},
	DM4310_48V: {PMax: 12.5, VMax: 30, TMax: 10},
	DM4340:     {PMax: 12.5, VMax: 8, TMax: 28},
	DM4340_48V: {PMax: 12.5, VMax: 10, TMax: 28},
	DM6006:     {PMax: 12.5, VMax: 45, TMax: 20},
	DM8006:     {PMax: 12.5, VMax: 45, TMax: 40},
	DM8009:     {PMax: 12.5, VMax: 45, TMax: 54},
	DM10010L:   {PMax: 12.5, VMax: 25, TMax: 200},
	DM10010:    {PMax: 12.5, VMax: 20, TMax: 200},
	DMH3510:    {PMax: 12.5, VMax: 280, TMax: 1},
	DMH6215:    {PMax: 12.5, VMax: 45, TMax: 10},
	DMG6220:    {PMax: 12.5, VMax: 45, TMax: 10},
}

// Limits returns the default LimitParam for a motor type, and whether the
// type is known. Callers may override the result at runtime (e.g. a
// gripper's compliance cap) — the table only supplies the design-time
// default.
func Limits(t MotorType) (LimitParam, bool) {
	l, ok := limitTable[t]
	return l, ok
}

// ControlMode selects which command encoder and CAN ID offset apply to a
// motor.
type ControlMode uint8

const (
	MIT ControlMode = iota + 1
	POSVEL
	VEL
	POSFORCE
)

// idOffset is the CAN ID offset applied to a motor's send ID for each
// control mode's dedicated command frame.
var idOffset = map[ControlMode]uint32{
	MIT:      0x000,
	POSVEL:   0x100,
	VEL:      0x200,
	POSFORCE: 0x300,
}

// IDOffset returns the CAN ID offset for a control mode.
func IDOffset(m ControlMode) uint32 {
	return idOffset[m]
}

// CallbackMode selects how recv_all interprets an inbound frame addressed
// to a given motor's receive ID.
type CallbackMode uint8

const (
	CallbackState CallbackMode = iota
	CallbackParam
	CallbackIgnore
)

// MotorVariable is a register index in a motor's internal parameter table.
type MotorVariable uint16

const (
	UVValue  MotorVariable = 0
	KTValue  MotorVariable = 1
	ACC      MotorVariable = 4
	DEC      MotorVariable = 5
	MaxSPD   MotorVariable = 6
	MSTID    MotorVariable = 7
	ESCID    MotorVariable = 8
	Timeout  MotorVariable = 9
	CtrlMode MotorVariable = 10
	PMAX     MotorVariable = 21
	VMAX     MotorVariable = 22
	TMAX     MotorVariable = 23
	RunState MotorVariable = 56
	ErrState MotorVariable = 80
	CurAngle MotorVariable = 81
)

// floatVariables is the set of registers whose 4 payload bytes are an
// IEEE-754 little-endian float rather than a little-endian u32.
var floatVariables = map[MotorVariable]bool{
	PMAX: true,
	VMAX: true,
	TMAX: true,
}

// BroadcastID is the CAN ID used for refresh polls, control-mode writes
// and parameter queries; it is never a legal recv_id for a motor.
const BroadcastID uint32 = 0x7FF

// MotorStateResult is the decoded telemetry of a state frame.
type MotorStateResult struct {
	Position float32
	Velocity float32
	Torque   float32
	TMos     uint8
	TRotor   uint8
	Valid    bool
}

// ParamResult is the decoded payload of a parameter-response frame.
type ParamResult struct {
	RID   MotorVariable
	Value float32
	Valid bool
}

// MITParam is the MIT-mode command payload: position gain, damping gain,
// desired position, velocity and feed-forward torque.
type MITParam struct {
	Kp  float32
	Kd  float32
	Q   float32
	Dq  float32
	Tau float32
}

// PosVelParam is the POS_VEL-mode command payload.
type PosVelParam struct {
	Q  float32
	Dq float32
}

// PosForceParam is the POS_FORCE-mode command payload.
type PosForceParam struct {
	Q  float32
	Dq float32
	I  float32
}

// CANPacket is the codec's output: the CAN ID to send on, and the 8-byte
// payload. Always 8 bytes on the wire, per spec.
type CANPacket struct {
	SendCANID uint32
	Data      [8]byte
}
