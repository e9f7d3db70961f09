package main

import (
	"fmt"
	"time"

	"github.com/enactic/openarm-can/codec"
	"github.com/enactic/openarm-can/openarm"
)

// motorTypeByName resolves a flag value to a codec.MotorType; cobra
// commands reject unknown names before connecting to the bus.
func motorTypeByName(name string) (codec.MotorType, error) {
	for t := codec.DM3507; t <= codec.DMG6220; t++ {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown motor type %q", name)
}

// connectSingleMotor opens the shared socket and registers fx's motor as
// the sole arm joint, in the given control mode.
func connectSingleMotor(fx *Fixture, mode codec.ControlMode) (*openarm.OpenArm, error) {
	mt, err := motorTypeByName(flagMotorType)
	if err != nil {
		return nil, err
	}

	oa, err := openarm.New(fx.CANInterface, flagFDMode, flagTimeoutUs, benchLogger())
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", fx.CANInterface, err)
	}

	recvID := fx.SendCANID + flagRecvOffset
	if err := oa.InitArmMotors(
		[]codec.MotorType{mt},
		[]uint32{fx.SendCANID},
		[]uint32{recvID},
		[]codec.ControlMode{mode},
	); err != nil {
		_ = oa.Close()
		return nil, err
	}
	return oa, nil
}

// pollState issues a refresh for every motor and drains the replies into
// the motors' cached state. step and ramp use it to read the motor back
// after commanding it.
func pollState(oa *openarm.OpenArm, timeoutUs uint32) error {
	if err := oa.RefreshAll(); err != nil {
		return err
	}
	_, err := oa.RecvAll(timeoutUs)
	return err
}

func sleepSeconds(s float32) {
	if s <= 0 {
		return
	}
	time.Sleep(time.Duration(s * float32(time.Second)))
}
