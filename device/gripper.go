package device

import (
	"github.com/sirupsen/logrus"

	"github.com/enactic/openarm-can/codec"
	"github.com/enactic/openarm-can/motor"
)

// GripperComponent wraps exactly one motor — the OpenArm gripper has a
// single actuator driving both jaws through a linkage, unlike the arm's
// multi-joint collection.
type GripperComponent struct {
	collection
}

// NewGripperComponent builds a GripperComponent over a single motor. It
// returns ErrConfig if m is nil.
func NewGripperComponent(m *motor.Motor, sock canIO, logger logrus.FieldLogger) (*GripperComponent, error) {
	if m == nil {
		return nil, errConfig("gripper: motor is required")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &GripperComponent{collection: *newCollection([]*motor.Motor{m}, sock, logger)}, nil
}

// Motor returns the gripper's single motor.
func (g *GripperComponent) Motor() *motor.Motor { return g.motors[0] }

// SetLimit narrows the gripper's quantisation range for velocity and
// torque/current to a compliance cap, leaving PMax untouched. This only
// reshapes quantisation: it neither writes a CAN frame nor changes the
// motor's firmware-side limits (SPEC_FULL.md §5.2 / Open Question
// resolution — "set_limit" has no wire equivalent in this protocol).
func (g *GripperComponent) SetLimit(vMax, tMax float32) {
	m := g.motors[0]
	l := m.Limits()
	l.VMax = vMax
	l.TMax = tMax
	m.SetLimits(l)
}

// Enable, Disable, SetZero and Refresh are one-motor conveniences over the
// embedded collection's operations, since "all" is always exactly one
// motor here.
func (g *GripperComponent) Enable() error  { return g.EnableAll() }
func (g *GripperComponent) Disable() error { return g.DisableAll() }
func (g *GripperComponent) SetZero() error { return g.SetZeroAll() }
func (g *GripperComponent) Refresh() error { return g.RefreshOne(0) }

// Control issues a single command in the gripper motor's configured
// control mode.
func (g *GripperComponent) Control(param interface{}) error {
	m := g.motors[0]
	switch m.ControlMode {
	case codec.MIT:
		return g.MITControlOne(0, param.(codec.MITParam))
	case codec.POSVEL:
		return g.PosVelControlOne(0, param.(codec.PosVelParam))
	case codec.VEL:
		return g.VelControlOne(0, param.(float32))
	case codec.POSFORCE:
		return g.PosForceControlOne(0, param.(codec.PosForceParam))
	default:
		return errConfig("gripper: motor has no control mode configured")
	}
}
