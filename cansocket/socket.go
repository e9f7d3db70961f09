// Package cansocket wraps a single OS CAN / CAN-FD endpoint: blocking
// write, timed read, FD vs. classic framing, timeout control, and error
// surfacing. It never interprets frame payloads — that is the codec
// package's job.
package cansocket

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Error kinds, per spec §7. Socket operations wrap one of these with
// github.com/pkg/errors so callers can branch with errors.Is while still
// getting the interface name / OS error / stack trace in the message.
var (
	// ErrSocket is an OS-level failure opening, binding, writing, reading
	// or closing the CAN endpoint.
	ErrSocket = errors.New("cansocket: socket error")
	// ErrTimeout is returned by Read/ReadFD when no frame arrived within
	// the configured receive timeout.
	ErrTimeout = errors.New("cansocket: read timeout")
	// ErrClosed is returned by any operation attempted after Close. It
	// wraps ErrSocket, so errors.Is matches it against either sentinel.
	ErrClosed = errors.WithMessage(ErrSocket, "cansocket: socket is closed")

	// errRawTimeout is the sentinel a rawConn.read implementation returns
	// when the OS receive timeout elapsed with no frame available.
	errRawTimeout = errors.New("cansocket: raw read timeout")
)

func isTimeout(err error) bool {
	return errors.Is(err, errRawTimeout)
}

// CanFrame is a classic CAN 2.0B frame: up to 8 payload bytes.
type CanFrame struct {
	CanID uint32
	Data  []byte
}

// CanFdFrame is a CAN-FD frame: up to 64 payload bytes plus flags.
type CanFdFrame struct {
	CanID uint32
	Data  []byte
	Flags uint8
}

// Socket is a single OS endpoint on a named CAN interface (e.g. "can0").
// Classic vs. FD framing is fixed at construction and cannot change
// without Close + Initialize. Socket is not safe for concurrent use by
// multiple goroutines against the same instance.
type Socket struct {
	mu        sync.Mutex
	iface     string
	enableFD  bool
	timeoutUs uint32
	conn      rawConn
	logger    logrus.FieldLogger
}

// rawConn is the platform-specific raw CAN endpoint. socket_linux.go
// implements it against SocketCAN; socket_other.go provides a stub for
// platforms without SocketCAN (CAN-FD hardware access is Linux-only, the
// same constraint the teacher's serial layer draws between
// serial_linux.go and serial_windows.go).
type rawConn interface {
	writeClassic(frame CanFrame) error
	writeFD(frame CanFdFrame) error
	read(timeoutUs uint32) (data []byte, err error)
	setRecvTimeout(us uint32) error
	pollReadable(us uint32) (bool, error)
	close() error
}

// New opens a CAN (or CAN-FD, if enableFD) raw socket bound to ifaceName
// with the given receive timeout. logger may be nil, in which case the
// standard logrus logger is used.
func New(ifaceName string, enableFD bool, recvTimeoutUs uint32, logger logrus.FieldLogger) (*Socket, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Socket{
		iface:     ifaceName,
		enableFD:  enableFD,
		timeoutUs: recvTimeoutUs,
		logger:    logger,
	}
	if err := s.Initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize (re)opens the socket on the configured interface. It is
// idempotent: calling it on an already-open socket is a no-op.
func (s *Socket) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return nil
	}
	conn, err := openRawConn(s.iface, s.enableFD, s.timeoutUs)
	if err != nil {
		s.logger.WithFields(logrus.Fields{"iface": s.iface, "fd_mode": s.enableFD}).
			WithError(err).Error("cansocket: failed to open interface")
		return errors.Wrapf(ErrSocket, "open %s: %v", s.iface, err)
	}
	s.conn = conn
	s.logger.WithFields(logrus.Fields{"iface": s.iface, "fd_mode": s.enableFD}).Debug("cansocket: opened")
	return nil
}

// IsOpen reports whether the socket currently holds an open OS endpoint.
func (s *Socket) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// Close idempotently tears down the OS endpoint. Any subsequent operation
// fails with ErrClosed, which errors.Is also reports as ErrSocket.
func (s *Socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.close()
	s.conn = nil
	s.logger.WithField("iface", s.iface).Debug("cansocket: closed")
	if err != nil {
		return errors.Wrapf(ErrSocket, "close %s: %v", s.iface, err)
	}
	return nil
}

// Write blocks until the OS accepts a classic CAN frame for transmission.
// When the socket is in CAN-FD mode, the classic frame is still accepted
// for transmission (SocketCAN permits writing can_frame-sized datagrams on
// an FD-enabled socket).
func (s *Socket) Write(frame CanFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return errors.Wrap(ErrClosed, "write")
	}
	if err := s.conn.writeClassic(frame); err != nil {
		s.logger.WithField("can_id", frame.CanID).WithError(err).Warn("cansocket: write failed")
		return errors.Wrapf(ErrSocket, "write %s: %v", s.iface, err)
	}
	return nil
}

// WriteFD blocks until the OS accepts a CAN-FD frame for transmission. It
// fails if the socket was not constructed with FD framing enabled.
func (s *Socket) WriteFD(frame CanFdFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return errors.Wrap(ErrClosed, "write_fd")
	}
	if !s.enableFD {
		return errors.Wrapf(ErrSocket, "write_fd on %s: socket not opened in FD mode", s.iface)
	}
	if err := s.conn.writeFD(frame); err != nil {
		s.logger.WithField("can_id", frame.CanID).WithError(err).Warn("cansocket: write_fd failed")
		return errors.Wrapf(ErrSocket, "write_fd %s: %v", s.iface, err)
	}
	return nil
}

// Read blocks up to the configured receive timeout for one classic CAN
// frame, failing with ErrTimeout if none arrives.
func (s *Socket) Read() (CanFrame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return CanFrame{}, errors.Wrap(ErrClosed, "read")
	}
	raw, err := s.conn.read(s.timeoutUs)
	if err != nil {
		return CanFrame{}, s.classifyReadErr("read", err)
	}
	return parseClassicFrame(raw)
}

// ReadFD blocks up to the configured receive timeout for one frame. When
// FD mode is enabled, reads always return the FD form: a frame that
// arrived in classic format is normalised into a CanFdFrame with
// zero flags.
func (s *Socket) ReadFD() (CanFdFrame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return CanFdFrame{}, errors.Wrap(ErrClosed, "read_fd")
	}
	if !s.enableFD {
		return CanFdFrame{}, errors.Wrapf(ErrSocket, "read_fd on %s: socket not opened in FD mode", s.iface)
	}
	raw, err := s.conn.read(s.timeoutUs)
	if err != nil {
		return CanFdFrame{}, s.classifyReadErr("read_fd", err)
	}
	return parseAnyFrame(raw)
}

func (s *Socket) classifyReadErr(op string, err error) error {
	if isTimeout(err) {
		return errors.Wrap(ErrTimeout, op)
	}
	s.logger.WithError(err).Warn("cansocket: read failed")
	return errors.Wrapf(ErrSocket, "%s %s: %v", op, s.iface, err)
}

// SetRecvTimeout atomically updates the receive timeout used by
// subsequent Read/ReadFD calls.
func (s *Socket) SetRecvTimeout(us uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeoutUs = us
	if s.conn == nil {
		return nil
	}
	if err := s.conn.setRecvTimeout(us); err != nil {
		return errors.Wrapf(ErrSocket, "set_recv_timeout %s: %v", s.iface, err)
	}
	return nil
}

// IsDataAvailable polls readability for up to us microseconds.
func (s *Socket) IsDataAvailable(us uint32) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return false, errors.Wrap(ErrClosed, "is_data_available")
	}
	ok, err := s.conn.pollReadable(us)
	if err != nil {
		return false, errors.Wrapf(ErrSocket, "is_data_available %s: %v", s.iface, err)
	}
	return ok, nil
}
