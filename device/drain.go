package device

import (
	"github.com/pkg/errors"

	"github.com/enactic/openarm-can/cansocket"
)

// Drain reads up to maxFrames frames from sock, calling dispatch on each,
// and stops on the first read timeout (which ends the drain cleanly, not
// as an error) or the first non-timeout socket error. If timeoutUs is
// nonzero it is applied to the socket before reading. Exported so a
// facade sharing one socket across several collections can run a single
// read loop and try each collection's Dispatch against every frame.
func Drain(sock *cansocket.Socket, timeoutUs uint32, maxFrames int, dispatch func(cansocket.CanFrame) bool) (int, error) {
	return drain(sock, timeoutUs, maxFrames, dispatch)
}

func drain(sock canIO, timeoutUs uint32, maxFrames int, dispatch func(cansocket.CanFrame) bool) (int, error) {
	if timeoutUs > 0 {
		if err := sock.SetRecvTimeout(timeoutUs); err != nil {
			return 0, err
		}
	}

	processed := 0
	for i := 0; i < maxFrames; i++ {
		frame, err := sock.Read()
		if err != nil {
			if errors.Is(err, cansocket.ErrTimeout) {
				return processed, nil
			}
			return processed, err
		}
		dispatch(frame)
		processed++
	}
	return processed, nil
}
