package cansocket

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Wire sizes of the two SocketCAN struct layouts this package reads and
// writes. Classic: can_id(4) + len(1) + pad/res0/res1(3) + data[8] = 16.
// FD: can_id(4) + len(1) + flags(1) + res0(1) + res1(1) + data[64] = 72.
const (
	classicFrameSize = 16
	fdFrameSize      = 72
)

func encodeClassicFrame(frame CanFrame) []byte {
	buf := make([]byte, classicFrameSize)
	binary.LittleEndian.PutUint32(buf[0:4], frame.CanID)
	buf[4] = byte(len(frame.Data))
	copy(buf[8:8+len(frame.Data)], frame.Data)
	return buf
}

func encodeFDFrame(frame CanFdFrame) []byte {
	buf := make([]byte, fdFrameSize)
	binary.LittleEndian.PutUint32(buf[0:4], frame.CanID)
	buf[4] = byte(len(frame.Data))
	buf[5] = frame.Flags
	copy(buf[8:8+len(frame.Data)], frame.Data)
	return buf
}

func parseClassicFrame(raw []byte) (CanFrame, error) {
	if len(raw) != classicFrameSize {
		return CanFrame{}, errors.Errorf("unexpected classic frame size: %d", len(raw))
	}
	dlc := int(raw[4])
	if dlc > 8 {
		dlc = 8
	}
	data := make([]byte, dlc)
	copy(data, raw[8:8+dlc])
	return CanFrame{
		CanID: binary.LittleEndian.Uint32(raw[0:4]),
		Data:  data,
	}, nil
}

func parseFDFrame(raw []byte) (CanFdFrame, error) {
	if len(raw) != fdFrameSize {
		return CanFdFrame{}, errors.Errorf("unexpected FD frame size: %d", len(raw))
	}
	dlc := int(raw[4])
	if dlc > 64 {
		dlc = 64
	}
	data := make([]byte, dlc)
	copy(data, raw[8:8+dlc])
	return CanFdFrame{
		CanID: binary.LittleEndian.Uint32(raw[0:4]),
		Flags: raw[5],
		Data:  data,
	}, nil
}

// parseAnyFrame interprets a raw read that may be either classic- or
// FD-sized, normalising a classic frame into the FD form with zero flags.
func parseAnyFrame(raw []byte) (CanFdFrame, error) {
	switch len(raw) {
	case classicFrameSize:
		cf, err := parseClassicFrame(raw)
		if err != nil {
			return CanFdFrame{}, err
		}
		return CanFdFrame{CanID: cf.CanID, Data: cf.Data, Flags: 0}, nil
	case fdFrameSize:
		return parseFDFrame(raw)
	default:
		return CanFdFrame{}, errors.Errorf("unexpected frame size: %d", len(raw))
	}
}
