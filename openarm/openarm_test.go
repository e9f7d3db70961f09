package openarm

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/enactic/openarm-can/codec"
)

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestFacade() *OpenArm {
	return &OpenArm{
		logger:  testLogger(),
		recvIDs: map[uint32]string{codec.BroadcastID: "broadcast"},
	}
}

func TestInitArmMotorsRejectsArityMismatch(t *testing.T) {
	o := newTestFacade()
	err := o.InitArmMotors(
		[]codec.MotorType{codec.DM4310, codec.DM4310},
		[]uint32{0x01},
		[]uint32{0x11, 0x12},
		nil,
	)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Nil(t, o.Arm())
}

func TestInitArmMotorsRejectsUnknownType(t *testing.T) {
	o := newTestFacade()
	err := o.InitArmMotors(
		[]codec.MotorType{codec.MotorType(999)},
		[]uint32{0x01},
		[]uint32{0x11},
		nil,
	)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestInitArmMotorsDefaultsToMITMode(t *testing.T) {
	o := newTestFacade()
	err := o.InitArmMotors(
		[]codec.MotorType{codec.DM4310},
		[]uint32{0x01},
		[]uint32{0x11},
		nil,
	)
	assert.NoError(t, err)
	assert.Equal(t, codec.MIT, o.Arm().Motors()[0].ControlMode)
}

func TestInitArmMotorsRejectsDuplicateRecvID(t *testing.T) {
	o := newTestFacade()
	err := o.InitArmMotors(
		[]codec.MotorType{codec.DM4310, codec.DM4310},
		[]uint32{0x01, 0x02},
		[]uint32{0x11, 0x11},
		nil,
	)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestInitArmMotorsRejectsBroadcastAsRecvID(t *testing.T) {
	o := newTestFacade()
	err := o.InitArmMotors(
		[]codec.MotorType{codec.DM4310},
		[]uint32{0x01},
		[]uint32{codec.BroadcastID},
		nil,
	)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestInitGripperMotorDefaultsToPosForce(t *testing.T) {
	o := newTestFacade()
	err := o.InitGripperMotor(codec.DM4310, 0x20, 0x21)
	assert.NoError(t, err)
	assert.Equal(t, codec.POSFORCE, o.Gripper().Motor().ControlMode)
}

func TestInitGripperMotorRejectsRecvIDClaimedByArm(t *testing.T) {
	o := newTestFacade()
	assert.NoError(t, o.InitArmMotors(
		[]codec.MotorType{codec.DM4310},
		[]uint32{0x01},
		[]uint32{0x11},
		nil,
	))

	err := o.InitGripperMotor(codec.DM4310, 0x20, 0x11)
	assert.ErrorIs(t, err, ErrConfig)
}
