package device

import (
	"github.com/sirupsen/logrus"

	"github.com/enactic/openarm-can/codec"
	"github.com/enactic/openarm-can/motor"
)

// ArmComponent is an ordered collection of arm-joint motors sharing one
// socket. Its exported methods are promoted from the embedded collection.
type ArmComponent struct {
	collection
}

// NewArmComponent builds an ArmComponent over an already-constructed motor
// list. The facade is responsible for building motors (via motor.New) and
// validating arity/uniqueness before calling this.
func NewArmComponent(motors []*motor.Motor, sock canIO, logger logrus.FieldLogger) *ArmComponent {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ArmComponent{collection: *newCollection(motors, sock, logger)}
}

// SendControl dispatches a single-motor command by the motor's configured
// ControlMode, so arm joints with mixed modes can be driven uniformly.
// params must hold the concrete param type for the motor at index i's
// mode: codec.MITParam, codec.PosVelParam, float32 (VEL) or
// codec.PosForceParam (POS_FORCE).
func (a *ArmComponent) SendControl(i int, param interface{}) error {
	m, err := a.motorAt(i)
	if err != nil {
		return err
	}
	switch m.ControlMode {
	case codec.MIT:
		return a.MITControlOne(i, param.(codec.MITParam))
	case codec.POSVEL:
		return a.PosVelControlOne(i, param.(codec.PosVelParam))
	case codec.VEL:
		return a.VelControlOne(i, param.(float32))
	case codec.POSFORCE:
		return a.PosForceControlOne(i, param.(codec.PosForceParam))
	default:
		return errConfig("arm: motor %d has no control mode configured", i)
	}
}
