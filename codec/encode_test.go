package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Command tails: scenario 1 from spec §8.
func TestEncodeEnableFrame(t *testing.T) {
	pkt := EncodeEnable(0x001)
	assert.Equal(t, uint32(0x001), pkt.SendCANID)
	assert.Equal(t, [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFC}, pkt.Data)
}

func TestEncodeDisableFrame(t *testing.T) {
	pkt := EncodeDisable(0x007)
	assert.Equal(t, [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFD}, pkt.Data)
}

func TestEncodeSetZeroFrame(t *testing.T) {
	pkt := EncodeSetZero(0x007)
	assert.Equal(t, [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE}, pkt.Data)
}

// Refresh broadcast: scenario 3 from spec §8.
func TestEncodeRefreshBroadcast(t *testing.T) {
	pkt := EncodeRefresh(7)
	assert.Equal(t, BroadcastID, pkt.SendCANID)
	assert.Equal(t, [8]byte{0x07, 0x00, 0xCC, 0x00, 0x00, 0x00, 0x00, 0x00}, pkt.Data)
}

// POS_VEL control: scenario 4 from spec §8.
func TestEncodePosVelControl(t *testing.T) {
	pkt := EncodePosVel(0x002, PosVelParam{Q: 1.0, Dq: 2.0})
	assert.Equal(t, uint32(0x102), pkt.SendCANID)
	assert.Equal(t, [8]byte{0x00, 0x00, 0x80, 0x3F, 0x00, 0x00, 0x00, 0x40}, pkt.Data)
}

// CAN-ID offsets per control mode, for any send_id.
func TestControlModeCANIDOffsets(t *testing.T) {
	l := LimitParam{PMax: 12.5, VMax: 30, TMax: 10}
	const sendID = 0x005

	assert.Equal(t, uint32(sendID), EncodeMIT(sendID, l, MITParam{}).SendCANID)
	assert.Equal(t, uint32(sendID+0x100), EncodePosVel(sendID, PosVelParam{}).SendCANID)
	assert.Equal(t, uint32(sendID+0x200), EncodeVel(sendID, 0).SendCANID)
	assert.Equal(t, uint32(sendID+0x300), EncodePosForce(sendID, l, PosForceParam{}).SendCANID)
	assert.Equal(t, BroadcastID, EncodeRefresh(sendID).SendCANID)
	assert.Equal(t, BroadcastID, EncodeSetControlMode(sendID, MIT).SendCANID)
	assert.Equal(t, BroadcastID, EncodeQueryParam(sendID, PMAX).SendCANID)
}

func TestEncodeSetControlModeWritesRegister(t *testing.T) {
	pkt := EncodeSetControlMode(0x001, POSVEL)
	assert.Equal(t, byte(CtrlMode), pkt.Data[1])
	assert.Equal(t, regCmdWrite, pkt.Data[2])
	assert.Equal(t, byte(POSVEL), pkt.Data[4])
}

func TestEncodeQueryParamReadsRegister(t *testing.T) {
	pkt := EncodeQueryParam(0x001, PMAX)
	assert.Equal(t, byte(PMAX), pkt.Data[1])
	assert.Equal(t, regCmdRead, pkt.Data[2])
}

// EncodeMIT takes no control mode, so it produces its 8 bytes whatever
// mode the motor is configured for — spec §3 invariant:
// "mode mismatches are a programmer error but the codec MUST still produce
// the bytes requested."
func TestEncodersAreModeAgnostic(t *testing.T) {
	l := LimitParam{PMax: 12.5, VMax: 30, TMax: 10}
	pkt := EncodeMIT(0x001, l, MITParam{Kp: 3, Kd: 0.5, Q: 1.2, Dq: -0.3, Tau: 0.1})
	assert.Len(t, pkt.Data, 8)
}
