package codec

// DecodeState decodes an 8-byte state telemetry frame. wantIDNibble is the
// low nibble of the owning motor's configured identity (used to confirm
// the frame actually belongs to that motor). valid is true iff the
// embedded error nibble is 0 (DISABLED) or 1 (ENABLED) — the normal
// run states — and the frame's id nibble matches wantIDNibble. A
// structurally-failed decode never panics: it returns a zero-value result
// with Valid=false.
func DecodeState(data [8]byte, l LimitParam, wantIDNibble uint8) MotorStateResult {
	idNibble := (data[0] >> 4) & 0xF
	errNibble := data[0] & 0xF

	valid := (errNibble == 0 || errNibble == 1) && idNibble == (wantIDNibble&0xF)
	if !valid {
		return MotorStateResult{Valid: false}
	}

	q := uint16(data[1])<<8 | uint16(data[2])
	dq := uint16(data[3])<<4 | uint16(data[4]>>4)
	tau := uint16(data[4]&0xF)<<8 | uint16(data[5])

	return MotorStateResult{
		Position: DecodePosition(q, l),
		Velocity: DecodeVelocity(dq, l),
		Torque:   DecodeTorque(tau, l),
		TMos:     data[6],
		TRotor:   data[7],
		Valid:    true,
	}
}

// StateEnabled reports whether a raw state frame's embedded error nibble
// indicates the ENABLED run state (1), as opposed to DISABLED (0). Callers
// use this to update Motor.Enabled on a state transition without
// re-deriving the nibble layout.
func StateEnabled(data [8]byte) (enabled bool, ok bool) {
	errNibble := data[0] & 0xF
	switch errNibble {
	case 0:
		return false, true
	case 1:
		return true, true
	default:
		return false, false
	}
}

// knownVariables is the set of registers DecodeParam will accept; an rid
// outside this set decodes to Valid=false.
var knownVariables = map[MotorVariable]bool{
	UVValue: true, KTValue: true, ACC: true, DEC: true, MaxSPD: true,
	MSTID: true, ESCID: true, Timeout: true, CtrlMode: true,
	PMAX: true, VMAX: true, TMAX: true,
	RunState: true, ErrState: true, CurAngle: true,
}

// DecodeParam decodes an 8-byte parameter-response frame, following the
// layout [master_id_lo, rid, 00, 00, b0, b1, b2, b3]. PMAX/VMAX/TMAX are
// interpreted as a little-endian IEEE-754 float; all other known
// registers as a little-endian u32 converted to float32.
func DecodeParam(data [8]byte) ParamResult {
	rid := MotorVariable(data[1])
	if !knownVariables[rid] {
		return ParamResult{Valid: false}
	}

	var value float32
	if floatVariables[rid] {
		value = float32LE(data[4:8])
	} else {
		u := uint32(data[4]) | uint32(data[5])<<8 | uint32(data[6])<<16 | uint32(data[7])<<24
		value = float32(u)
	}

	return ParamResult{RID: rid, Value: value, Valid: true}
}
