//go:build !linux

package cansocket

import "github.com/pkg/errors"

// SocketCAN is Linux-only; on other platforms every socket operation
// fails distinctly, the same split the teacher draws between
// serial_linux.go and serial_windows.go for platform-specific transports.
type unsupportedConn struct{}

func openRawConn(ifaceName string, enableFD bool, recvTimeoutUs uint32) (rawConn, error) {
	return nil, errors.Errorf("cansocket: CAN sockets are not supported on this platform (iface %s)", ifaceName)
}

func (unsupportedConn) writeClassic(CanFrame) error            { return errUnsupported }
func (unsupportedConn) writeFD(CanFdFrame) error                { return errUnsupported }
func (unsupportedConn) read(uint32) ([]byte, error)             { return nil, errUnsupported }
func (unsupportedConn) setRecvTimeout(uint32) error             { return errUnsupported }
func (unsupportedConn) pollReadable(uint32) (bool, error)       { return false, errUnsupported }
func (unsupportedConn) close() error                            { return nil }

var errUnsupported = errors.New("cansocket: unsupported on this platform")
