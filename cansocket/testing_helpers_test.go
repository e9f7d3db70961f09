package cansocket

import "github.com/pkg/errors"

// fakeConn is a rawConn test double: no real OS socket involved, so these
// tests exercise Socket's own logic (error wrapping, FD-mode gating,
// idempotent close) the way dxl's MockSerialPort exercises Driver.
type fakeConn struct {
	writeErr    error
	writtenCls  []CanFrame
	writtenFD   []CanFdFrame
	readQueue   [][]byte
	readErr     error
	pollResult  bool
	pollErr     error
	closed      bool
	closeErr    error
	recvTimeout uint32
}

func (f *fakeConn) writeClassic(frame CanFrame) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writtenCls = append(f.writtenCls, frame)
	return nil
}

func (f *fakeConn) writeFD(frame CanFdFrame) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writtenFD = append(f.writtenFD, frame)
	return nil
}

func (f *fakeConn) read(timeoutUs uint32) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if len(f.readQueue) == 0 {
		return nil, errRawTimeout
	}
	next := f.readQueue[0]
	f.readQueue = f.readQueue[1:]
	return next, nil
}

func (f *fakeConn) setRecvTimeout(us uint32) error {
	f.recvTimeout = us
	return nil
}

func (f *fakeConn) pollReadable(us uint32) (bool, error) {
	return f.pollResult, f.pollErr
}

func (f *fakeConn) close() error {
	f.closed = true
	return f.closeErr
}

func newTestSocket(enableFD bool, conn rawConn) *Socket {
	return &Socket{
		iface:     "vcan-test",
		enableFD:  enableFD,
		timeoutUs: 1000,
		conn:      conn,
		logger:    testLogger(),
	}
}

var errBoom = errors.New("boom")
