//go:build linux

package cansocket

import (
	"errors"
	"net"

	"golang.org/x/sys/unix"
)

// solCanRawFDFrames is SOL_CAN_RAW's CAN_RAW_FD_FRAMES sockopt, enabling
// the socket to send/receive the 72-byte canfd_frame layout alongside the
// 16-byte classic can_frame layout.
const solCanRawFDFrames = 5

// linuxConn is the SocketCAN-backed rawConn, grounded on the gocanopen
// socketcanv3 bus driver: a raw AF_CAN/SOCK_RAW/CAN_RAW socket bound to an
// interface index, with the read timeout enforced via SO_RCVTIMEO rather
// than a userspace deadline loop.
type linuxConn struct {
	fd int
}

func openRawConn(ifaceName string, enableFD bool, recvTimeoutUs uint32) (rawConn, error) {
	iface, err := net.InterfaceByName(ifaceName)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_CAN, unix.SOCK_RAW, unix.CAN_RAW)
	if err != nil {
		return nil, err
	}

	if enableFD {
		if err := unix.SetsockoptInt(fd, unix.SOL_CAN_RAW, solCanRawFDFrames, 1); err != nil {
			unix.Close(fd)
			return nil, err
		}
	}

	if err := unix.Bind(fd, &unix.SockaddrCAN{Ifindex: iface.Index}); err != nil {
		unix.Close(fd)
		return nil, err
	}

	c := &linuxConn{fd: fd}
	if err := c.setRecvTimeout(recvTimeoutUs); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return c, nil
}

func (c *linuxConn) writeClassic(frame CanFrame) error {
	_, err := unix.Write(c.fd, encodeClassicFrame(frame))
	return err
}

func (c *linuxConn) writeFD(frame CanFdFrame) error {
	_, err := unix.Write(c.fd, encodeFDFrame(frame))
	return err
}

func (c *linuxConn) read(timeoutUs uint32) ([]byte, error) {
	buf := make([]byte, fdFrameSize)
	n, err := unix.Read(c.fd, buf)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
			return nil, errRawTimeout
		}
		return nil, err
	}
	return buf[:n], nil
}

func (c *linuxConn) setRecvTimeout(us uint32) error {
	tv := unix.NsecToTimeval(int64(us) * 1000)
	return unix.SetsockoptTimeval(c.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv)
}

func (c *linuxConn) pollReadable(us uint32) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(c.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(us/1000))
	if err != nil {
		return false, err
	}
	return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
}

func (c *linuxConn) close() error {
	return unix.Close(c.fd)
}
