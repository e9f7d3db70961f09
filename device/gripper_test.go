package device

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/enactic/openarm-can/codec"
	"github.com/enactic/openarm-can/motor"
)

func TestNewGripperComponentRejectsNilMotor(t *testing.T) {
	_, err := NewGripperComponent(nil, &fakeIO{}, testLogger())
	assert.ErrorIs(t, err, ErrConfig)
}

func TestSetLimitOverridesVelocityAndTorqueOnly(t *testing.T) {
	m, _ := motor.New(codec.DM4310, 0x01, 0x11, codec.POSFORCE)
	original := m.Limits()
	g, err := NewGripperComponent(m, &fakeIO{}, testLogger())
	assert.NoError(t, err)

	g.SetLimit(5, 2)
	got := g.Motor().Limits()
	assert.Equal(t, original.PMax, got.PMax)
	assert.Equal(t, float32(5), got.VMax)
	assert.Equal(t, float32(2), got.TMax)
}

func TestGripperControlUsesSoleMotor(t *testing.T) {
	m, _ := motor.New(codec.DM4310, 0x01, 0x11, codec.POSFORCE)
	io := &fakeIO{}
	g, err := NewGripperComponent(m, io, testLogger())
	assert.NoError(t, err)

	assert.NoError(t, g.Control(codec.PosForceParam{Q: 1, Dq: 2, I: 3}))
	assert.Len(t, io.written, 1)
	assert.Equal(t, uint32(0x01)+codec.IDOffset(codec.POSFORCE), io.written[0].CanID)
}

func TestGripperEnableDisableSetZero(t *testing.T) {
	m, _ := motor.New(codec.DM4310, 0x01, 0x11, codec.MIT)
	io := &fakeIO{}
	g, err := NewGripperComponent(m, io, testLogger())
	assert.NoError(t, err)

	assert.NoError(t, g.Enable())
	assert.NoError(t, g.Disable())
	assert.NoError(t, g.SetZero())
	assert.NoError(t, g.Refresh())
	assert.Len(t, io.written, 4)
}
