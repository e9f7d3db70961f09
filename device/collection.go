// Package device implements the device-collection layer: ArmComponent and
// GripperComponent. A device collection owns an ordered list of motors, a
// receive-ID index for O(1) callback dispatch, a shared socket reference,
// and each motor's callback mode.
package device

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/enactic/openarm-can/cansocket"
	"github.com/enactic/openarm-can/codec"
	"github.com/enactic/openarm-can/motor"
)

// ErrArity is returned by a *_control_all operation when the caller's
// parameter slice length does not match the collection's motor count.
var ErrArity = errors.New("device: parameter count does not match motor count")

// canIO is the slice of *cansocket.Socket a device collection needs.
// Narrowing to an interface lets tests exercise dispatch/drain logic
// without an OS CAN endpoint, the same way cansocket's own tests swap in
// a fakeConn below the Socket layer.
type canIO interface {
	Write(cansocket.CanFrame) error
	Read() (cansocket.CanFrame, error)
	SetRecvTimeout(uint32) error
}

// collection is the shared implementation behind ArmComponent and
// GripperComponent. Cyclic references are avoided by design: the
// receive-ID index stores slice indices, not *motor.Motor pointers.
type collection struct {
	motors    []*motor.Motor
	recvIndex map[uint32]int
	socket    canIO
	logger    logrus.FieldLogger
	maxDrain  int

	// RefreshInterframeDelay throttles RefreshAll when nonzero, sleeping
	// between each motor's broadcast poll (open question, SPEC_FULL.md §5.3).
	RefreshInterframeDelay time.Duration
}

func newCollection(motors []*motor.Motor, sock canIO, logger logrus.FieldLogger) *collection {
	idx := make(map[uint32]int, len(motors))
	for i, m := range motors {
		idx[m.RecvID] = i
	}
	return &collection{
		motors:    motors,
		recvIndex: idx,
		socket:    sock,
		logger:    logger,
		maxDrain:  len(motors) * 2,
	}
}

// Motors returns the collection's motors in index order.
func (c *collection) Motors() []*motor.Motor { return c.motors }

// Count is the number of motors in the collection.
func (c *collection) Count() int { return len(c.motors) }

func (c *collection) motorAt(i int) (*motor.Motor, error) {
	if i < 0 || i >= len(c.motors) {
		return nil, errors.Errorf("device: motor index %d out of range [0,%d)", i, len(c.motors))
	}
	return c.motors[i], nil
}

func (c *collection) write(pkt codec.CANPacket) error {
	return c.socket.Write(cansocket.CanFrame{CanID: pkt.SendCANID, Data: pkt.Data[:]})
}

// EnableAll encodes and writes an Enable command to each motor in index
// order, each write completing before the next starts. The first failed
// write stops the sweep and is propagated as a socket-error.
func (c *collection) EnableAll() error {
	for _, m := range c.motors {
		if err := c.write(codec.EncodeEnable(m.SendID)); err != nil {
			c.logger.WithField("send_id", m.SendID).WithError(err).Warn("device: enable failed")
			return err
		}
	}
	return nil
}

// DisableAll is EnableAll's counterpart.
func (c *collection) DisableAll() error {
	for _, m := range c.motors {
		if err := c.write(codec.EncodeDisable(m.SendID)); err != nil {
			c.logger.WithField("send_id", m.SendID).WithError(err).Warn("device: disable failed")
			return err
		}
	}
	return nil
}

// SetZeroAll is EnableAll's counterpart for SetZero.
func (c *collection) SetZeroAll() error {
	for _, m := range c.motors {
		if err := c.write(codec.EncodeSetZero(m.SendID)); err != nil {
			c.logger.WithField("send_id", m.SendID).WithError(err).Warn("device: set_zero failed")
			return err
		}
	}
	return nil
}

// RefreshOne broadcasts a state poll for a single motor by index.
func (c *collection) RefreshOne(i int) error {
	m, err := c.motorAt(i)
	if err != nil {
		return err
	}
	return c.write(codec.EncodeRefresh(m.SendID))
}

// RefreshAll broadcasts a state poll for every motor in index order,
// optionally throttled by RefreshInterframeDelay.
func (c *collection) RefreshAll() error {
	for i, m := range c.motors {
		if err := c.write(codec.EncodeRefresh(m.SendID)); err != nil {
			c.logger.WithField("send_id", m.SendID).WithError(err).Warn("device: refresh failed")
			return err
		}
		if c.RefreshInterframeDelay > 0 && i < len(c.motors)-1 {
			time.Sleep(c.RefreshInterframeDelay)
		}
	}
	return nil
}

// MITControlOne issues an MIT-mode command to a single motor by index.
func (c *collection) MITControlOne(i int, p codec.MITParam) error {
	m, err := c.motorAt(i)
	if err != nil {
		return err
	}
	return c.write(codec.EncodeMIT(m.SendID, m.Limits(), p))
}

// MITControlAll issues MIT-mode commands to every motor; len(params) must
// equal Count().
func (c *collection) MITControlAll(params []codec.MITParam) error {
	if len(params) != len(c.motors) {
		return errors.Wrapf(ErrArity, "mit_control_all: got %d params, want %d", len(params), len(c.motors))
	}
	for i, m := range c.motors {
		if err := c.write(codec.EncodeMIT(m.SendID, m.Limits(), params[i])); err != nil {
			return err
		}
	}
	return nil
}

// PosVelControlOne issues a POS_VEL-mode command to a single motor.
func (c *collection) PosVelControlOne(i int, p codec.PosVelParam) error {
	m, err := c.motorAt(i)
	if err != nil {
		return err
	}
	return c.write(codec.EncodePosVel(m.SendID, p))
}

// PosVelControlAll issues POS_VEL-mode commands to every motor.
func (c *collection) PosVelControlAll(params []codec.PosVelParam) error {
	if len(params) != len(c.motors) {
		return errors.Wrapf(ErrArity, "posvel_control_all: got %d params, want %d", len(params), len(c.motors))
	}
	for i, m := range c.motors {
		if err := c.write(codec.EncodePosVel(m.SendID, params[i])); err != nil {
			return err
		}
	}
	return nil
}

// VelControlOne issues a VEL-mode command to a single motor.
func (c *collection) VelControlOne(i int, dq float32) error {
	m, err := c.motorAt(i)
	if err != nil {
		return err
	}
	return c.write(codec.EncodeVel(m.SendID, dq))
}

// VelControlAll issues VEL-mode commands to every motor.
func (c *collection) VelControlAll(dqs []float32) error {
	if len(dqs) != len(c.motors) {
		return errors.Wrapf(ErrArity, "vel_control_all: got %d params, want %d", len(dqs), len(c.motors))
	}
	for i, m := range c.motors {
		if err := c.write(codec.EncodeVel(m.SendID, dqs[i])); err != nil {
			return err
		}
	}
	return nil
}

// PosForceControlOne issues a POS_FORCE-mode command to a single motor.
func (c *collection) PosForceControlOne(i int, p codec.PosForceParam) error {
	m, err := c.motorAt(i)
	if err != nil {
		return err
	}
	return c.write(codec.EncodePosForce(m.SendID, m.Limits(), p))
}

// PosForceControlAll issues POS_FORCE-mode commands to every motor.
func (c *collection) PosForceControlAll(params []codec.PosForceParam) error {
	if len(params) != len(c.motors) {
		return errors.Wrapf(ErrArity, "posforce_control_all: got %d params, want %d", len(params), len(c.motors))
	}
	for i, m := range c.motors {
		if err := c.write(codec.EncodePosForce(m.SendID, m.Limits(), params[i])); err != nil {
			return err
		}
	}
	return nil
}

// SetCallbackModeAll atomically updates every motor's callback mode.
func (c *collection) SetCallbackModeAll(mode codec.CallbackMode) {
	for _, m := range c.motors {
		m.SetCallbackMode(mode)
	}
}

// QueryParamOne issues a read-register command for a single motor; the
// next inbound frame on its receive ID is decoded as a parameter frame by
// RecvAll, provided that motor's callback mode is PARAM.
func (c *collection) QueryParamOne(i int, v codec.MotorVariable) error {
	m, err := c.motorAt(i)
	if err != nil {
		return err
	}
	return c.write(codec.EncodeQueryParam(m.SendID, v))
}

// QueryParamAll issues a read-register command for every motor.
func (c *collection) QueryParamAll(v codec.MotorVariable) error {
	for _, m := range c.motors {
		if err := c.write(codec.EncodeQueryParam(m.SendID, v)); err != nil {
			return err
		}
	}
	return nil
}

// RecvAll drains the collection's socket, dispatching each inbound frame
// addressed to one of this collection's motors. It returns the number of
// frames successfully processed before a timeout ended the drain.
func (c *collection) RecvAll(timeoutUs ...uint32) (int, error) {
	return drain(c.socket, c.drainTimeout(timeoutUs), c.maxDrain, c.Dispatch)
}

// Dispatch applies one already-read frame to this collection's motors,
// reporting whether the frame's CAN ID belonged to one of them. A facade
// sharing one socket across several collections reads a frame once and
// tries each collection's Dispatch in turn.
func (c *collection) Dispatch(f cansocket.CanFrame) bool {
	return dispatch(c.recvIndex, c.motors, f)
}

// DrainBound is the maximum number of frames RecvAll reads in one call.
func (c *collection) DrainBound() int { return c.maxDrain }

func (c *collection) drainTimeout(timeoutUs []uint32) uint32 {
	if len(timeoutUs) > 0 {
		return timeoutUs[0]
	}
	return 0
}
