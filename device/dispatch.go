package device

import (
	"github.com/enactic/openarm-can/cansocket"
	"github.com/enactic/openarm-can/codec"
	"github.com/enactic/openarm-can/motor"
)

// dispatch looks up frame.CanID in idx and, according to the owning
// motor's callback mode, decodes and updates its cached state or last
// parameter result, or drops the frame under CallbackIgnore. It reports
// whether the frame matched a motor in this index at all — a miss means
// the caller should try another collection (or drop it, at the top
// level) rather than treating it as an error.
func dispatch(idx map[uint32]int, motors []*motor.Motor, frame cansocket.CanFrame) bool {
	i, ok := idx[frame.CanID]
	if !ok {
		return false
	}
	m := motors[i]

	var data [8]byte
	copy(data[:], frame.Data)

	switch m.CallbackMode() {
	case codec.CallbackIgnore:
		// Dropped by design: the motor's owner asked recv_all to skip it.
	case codec.CallbackParam:
		m.SetLastParam(codec.DecodeParam(data))
	default: // codec.CallbackState
		result := codec.DecodeState(data, m.Limits(), m.IDNibble())
		m.SetState(result)
		if enabled, ok := codec.StateEnabled(data); ok {
			m.SetEnabled(enabled)
		}
	}
	return true
}
