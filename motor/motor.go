// Package motor defines the Motor entity: identity, mutable state cache
// and configuration. A Motor is created by the facade at init_* time and
// mutated only by the codec (state, via a device collection's dispatch
// loop) or by its owning collection (callback mode, enabled, limits).
package motor

import "github.com/enactic/openarm-can/codec"

// Motor is one DM-series actuator addressed over CAN.
type Motor struct {
	Type        codec.MotorType
	SendID      uint32
	RecvID      uint32
	ControlMode codec.ControlMode

	limits       codec.LimitParam
	state        codec.MotorStateResult
	lastParam    codec.ParamResult
	enabled      bool
	callbackMode codec.CallbackMode
}

// New builds a Motor in its default (disabled, STATE callback) state,
// using the design-time LimitParam for its type. unknown is true if t is
// not a recognised MotorType — callers (device/openarm init_*) turn that
// into a config-error rather than silently defaulting limits.
func New(t codec.MotorType, sendID, recvID uint32, mode codec.ControlMode) (m *Motor, unknown bool) {
	limits, ok := codec.Limits(t)
	mt := &Motor{
		Type:         t,
		SendID:       sendID,
		RecvID:       recvID,
		ControlMode:  mode,
		limits:       limits,
		callbackMode: codec.CallbackState,
	}
	return mt, !ok
}

// Limits returns the LimitParam currently used for quantisation — the
// design-time default unless SetLimits overrode it.
func (m *Motor) Limits() codec.LimitParam { return m.limits }

// SetLimits overrides the quantisation range used for subsequent encode
// and decode calls. Used by GripperComponent.SetLimit for a compliance
// cap; it reshapes quantisation only (see DESIGN.md / SPEC_FULL.md §5.2).
func (m *Motor) SetLimits(l codec.LimitParam) { m.limits = l }

// State returns the most recently decoded telemetry.
func (m *Motor) State() codec.MotorStateResult { return m.state }

// SetState overwrites the cached state with s when s is Valid. A non-Valid
// result is ignored, so an invalid decode leaves the previous state intact.
func (m *Motor) SetState(s codec.MotorStateResult) {
	if !s.Valid {
		return
	}
	m.state = s
}

// Position, Velocity, Torque, TMos, TRotor are read-only accessors over
// the last valid decoded state.
func (m *Motor) Position() float32 { return m.state.Position }
func (m *Motor) Velocity() float32 { return m.state.Velocity }
func (m *Motor) Torque() float32   { return m.state.Torque }
func (m *Motor) TMos() uint8       { return m.state.TMos }
func (m *Motor) TRotor() uint8     { return m.state.TRotor }

// Valid reports whether the cached state came from a structurally valid
// decode.
func (m *Motor) Valid() bool { return m.state.Valid }

// LastParam returns the most recently decoded parameter-query response.
func (m *Motor) LastParam() codec.ParamResult { return m.lastParam }

// SetLastParam overwrites the cached parameter result, following the same
// valid-only overwrite rule as SetState.
func (m *Motor) SetLastParam(p codec.ParamResult) {
	if !p.Valid {
		return
	}
	m.lastParam = p
}

// Enabled reports the motor's last known enable/disable run state, as
// reported by its most recent state frame.
func (m *Motor) Enabled() bool { return m.enabled }

// SetEnabled updates the cached enable/disable run state.
func (m *Motor) SetEnabled(v bool) { m.enabled = v }

// CallbackMode returns how recv_all should interpret the next frame
// addressed to this motor's receive ID.
func (m *Motor) CallbackMode() codec.CallbackMode { return m.callbackMode }

// SetCallbackMode updates the callback mode.
func (m *Motor) SetCallbackMode(mode codec.CallbackMode) { m.callbackMode = mode }

// IDNibble is the low nibble of the motor's configured send identity,
// used by DecodeState to confirm a state frame actually came from this
// motor rather than from a receive-ID collision. (§4.1 leaves unstated
// whether the embedded id nibble echoes send_id or recv_id; send_id is
// the motor's own CAN address, so frames are authenticated against it.)
func (m *Motor) IDNibble() uint8 {
	return uint8(m.SendID & 0xF)
}
