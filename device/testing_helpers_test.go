package device

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/enactic/openarm-can/cansocket"
)

// fakeIO is a canIO test double: no cansocket.Socket or OS CAN endpoint
// involved, so these tests exercise collection/dispatch/drain logic in
// isolation, the same way cansocket's own fakeConn isolates Socket from
// SocketCAN.
type fakeIO struct {
	writeErr    error
	written     []cansocket.CanFrame
	readQueue   []cansocket.CanFrame
	readErr     error
	recvTimeout uint32
}

func (f *fakeIO) Write(frame cansocket.CanFrame) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, frame)
	return nil
}

func (f *fakeIO) Read() (cansocket.CanFrame, error) {
	if f.readErr != nil {
		return cansocket.CanFrame{}, f.readErr
	}
	if len(f.readQueue) == 0 {
		return cansocket.CanFrame{}, errors.Wrap(cansocket.ErrTimeout, "read")
	}
	next := f.readQueue[0]
	f.readQueue = f.readQueue[1:]
	return next, nil
}

func (f *fakeIO) SetRecvTimeout(us uint32) error {
	f.recvTimeout = us
	return nil
}

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

var errBoom = errors.New("boom")
