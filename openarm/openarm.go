// Package openarm implements the OpenArm facade: one shared CAN socket,
// one ArmComponent for the joint motors and one GripperComponent for the
// end-effector motor, with fan-out operations and a single receive loop
// that dispatches into whichever component owns an inbound frame.
package openarm

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/enactic/openarm-can/cansocket"
	"github.com/enactic/openarm-can/codec"
	"github.com/enactic/openarm-can/device"
	"github.com/enactic/openarm-can/motor"
)

// ErrConfig marks a construction-time configuration mistake, the same
// class of error device.ErrConfig reports for a single component: arity
// mismatch, an unrecognised motor type, or a receive ID already claimed
// by another motor anywhere on the bus.
var ErrConfig = device.ErrConfig

// OpenArm is the two-joint-arm-plus-gripper facade: one socket shared by
// one ArmComponent and one GripperComponent. Motors are added with
// InitArmMotors / InitGripperMotor before any control operation is used.
type OpenArm struct {
	socket  *cansocket.Socket
	logger  logrus.FieldLogger
	arm     *device.ArmComponent
	gripper *device.GripperComponent
	recvIDs map[uint32]string // recv_id -> which motor claimed it, for config-error messages
}

// New opens the shared CAN (or CAN-FD) socket on ifaceName. logger may be
// nil, in which case the standard logrus logger is used.
func New(ifaceName string, enableFD bool, recvTimeoutUs uint32, logger logrus.FieldLogger) (*OpenArm, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	sock, err := cansocket.New(ifaceName, enableFD, recvTimeoutUs, logger)
	if err != nil {
		return nil, err
	}
	return &OpenArm{
		socket:  sock,
		logger:  logger,
		recvIDs: map[uint32]string{codec.BroadcastID: "broadcast"},
	}, nil
}

// Close tears down the shared socket.
func (o *OpenArm) Close() error { return o.socket.Close() }

// Arm returns the arm component, or nil if InitArmMotors has not been
// called yet.
func (o *OpenArm) Arm() *device.ArmComponent { return o.arm }

// Gripper returns the gripper component, or nil if InitGripperMotor has
// not been called yet.
func (o *OpenArm) Gripper() *device.GripperComponent { return o.gripper }

func (o *OpenArm) claimRecvID(id uint32, owner string) error {
	if existing, taken := o.recvIDs[id]; taken {
		return errors.Wrapf(ErrConfig, "receive ID 0x%X for %s already claimed by %s", id, owner, existing)
	}
	o.recvIDs[id] = owner
	return nil
}

// InitArmMotors builds the arm's joint motors and its ArmComponent. types,
// sendIDs and recvIDs must have equal length; modes may be nil, in which
// case every joint defaults to MIT control. Each type must be a known
// MotorType, and each recvID must not collide with any receive ID already
// claimed by the gripper, the broadcast ID, or an earlier call to
// InitArmMotors.
func (o *OpenArm) InitArmMotors(types []codec.MotorType, sendIDs, recvIDs []uint32, modes []codec.ControlMode) error {
	n := len(types)
	if len(sendIDs) != n || len(recvIDs) != n {
		return errors.Wrapf(ErrConfig, "init_arm_motors: types/send_ids/recv_ids length mismatch (%d/%d/%d)", n, len(sendIDs), len(recvIDs))
	}
	if modes != nil && len(modes) != n {
		return errors.Wrapf(ErrConfig, "init_arm_motors: modes length mismatch (%d want %d)", len(modes), n)
	}

	motors := make([]*motor.Motor, n)
	for i := 0; i < n; i++ {
		mode := codec.MIT
		if modes != nil {
			mode = modes[i]
		}
		m, unknown := motor.New(types[i], sendIDs[i], recvIDs[i], mode)
		if unknown {
			return errors.Wrapf(ErrConfig, "init_arm_motors: unknown motor type at index %d", i)
		}
		if err := o.claimRecvID(recvIDs[i], "arm"); err != nil {
			return err
		}
		motors[i] = m
	}

	o.arm = device.NewArmComponent(motors, o.socket, o.logger)
	return nil
}

// InitGripperMotor builds the single gripper motor and its
// GripperComponent. mode defaults to POSFORCE (the control mode the
// gripper's compliance behaviour is defined over) when not given.
func (o *OpenArm) InitGripperMotor(t codec.MotorType, sendID, recvID uint32, mode ...codec.ControlMode) error {
	cm := codec.POSFORCE
	if len(mode) > 0 {
		cm = mode[0]
	}
	m, unknown := motor.New(t, sendID, recvID, cm)
	if unknown {
		return errors.Wrap(ErrConfig, "init_gripper_motor: unknown motor type")
	}
	if err := o.claimRecvID(recvID, "gripper"); err != nil {
		return err
	}

	g, err := device.NewGripperComponent(m, o.socket, o.logger)
	if err != nil {
		return err
	}
	o.gripper = g
	return nil
}

// EnableAll enables every arm motor, then the gripper motor.
func (o *OpenArm) EnableAll() error {
	if o.arm != nil {
		if err := o.arm.EnableAll(); err != nil {
			return err
		}
	}
	if o.gripper != nil {
		return o.gripper.Enable()
	}
	return nil
}

// DisableAll disables every arm motor, then the gripper motor.
func (o *OpenArm) DisableAll() error {
	if o.arm != nil {
		if err := o.arm.DisableAll(); err != nil {
			return err
		}
	}
	if o.gripper != nil {
		return o.gripper.Disable()
	}
	return nil
}

// RefreshAll broadcasts a state poll for every arm motor, then the
// gripper motor.
func (o *OpenArm) RefreshAll() error {
	if o.arm != nil {
		if err := o.arm.RefreshAll(); err != nil {
			return err
		}
	}
	if o.gripper != nil {
		return o.gripper.Refresh()
	}
	return nil
}

// SetCallbackModeAll updates the callback mode of every arm motor, then
// the gripper motor.
func (o *OpenArm) SetCallbackModeAll(mode codec.CallbackMode) {
	if o.arm != nil {
		o.arm.SetCallbackModeAll(mode)
	}
	if o.gripper != nil {
		o.gripper.SetCallbackModeAll(mode)
	}
}

// QueryParamAll issues a parameter read for every arm motor, then the
// gripper motor.
func (o *OpenArm) QueryParamAll(v codec.MotorVariable) error {
	if o.arm != nil {
		if err := o.arm.QueryParamAll(v); err != nil {
			return err
		}
	}
	if o.gripper != nil {
		return o.gripper.QueryParamAll(v)
	}
	return nil
}

// RecvAll drains the shared socket once, dispatching each inbound frame
// into whichever component owns its receive ID (arm tried first, then
// gripper — the two are guaranteed disjoint by InitArmMotors /
// InitGripperMotor). It returns the number of frames processed before a
// timeout ended the drain.
func (o *OpenArm) RecvAll(timeoutUs uint32) (int, error) {
	max := 0
	if o.arm != nil {
		max += o.arm.DrainBound()
	}
	if o.gripper != nil {
		max += o.gripper.DrainBound()
	}
	if max == 0 {
		return 0, nil
	}
	return device.Drain(o.socket, timeoutUs, max, func(f cansocket.CanFrame) bool {
		if o.arm != nil && o.arm.Dispatch(f) {
			return true
		}
		if o.gripper != nil {
			return o.gripper.Dispatch(f)
		}
		return false
	})
}
