package cansocket

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestWriteWrapsSocketError(t *testing.T) {
	conn := &fakeConn{writeErr: errBoom}
	s := newTestSocket(false, conn)

	err := s.Write(CanFrame{CanID: 1, Data: []byte{0x01}})
	assert.ErrorIs(t, err, ErrSocket)
}

func TestWriteSucceedsAndRecordsFrame(t *testing.T) {
	conn := &fakeConn{}
	s := newTestSocket(false, conn)

	assert.NoError(t, s.Write(CanFrame{CanID: 0x7FF, Data: []byte{1, 2, 3}}))
	assert.Len(t, conn.writtenCls, 1)
	assert.Equal(t, uint32(0x7FF), conn.writtenCls[0].CanID)
}

func TestWriteFDRejectedWhenNotFDMode(t *testing.T) {
	conn := &fakeConn{}
	s := newTestSocket(false, conn)

	err := s.WriteFD(CanFdFrame{CanID: 1})
	assert.ErrorIs(t, err, ErrSocket)
	assert.Empty(t, conn.writtenFD)
}

func TestWriteFDAcceptedInFDMode(t *testing.T) {
	conn := &fakeConn{}
	s := newTestSocket(true, conn)

	assert.NoError(t, s.WriteFD(CanFdFrame{CanID: 1, Data: make([]byte, 32)}))
	assert.Len(t, conn.writtenFD, 1)
}

func TestReadTimeout(t *testing.T) {
	conn := &fakeConn{}
	s := newTestSocket(false, conn)

	_, err := s.Read()
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestReadParsesClassicFrame(t *testing.T) {
	raw := encodeClassicFrame(CanFrame{CanID: 0x11, Data: []byte{0xAA, 0xBB}})
	conn := &fakeConn{readQueue: [][]byte{raw}}
	s := newTestSocket(false, conn)

	frame, err := s.Read()
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x11), frame.CanID)
	assert.Equal(t, []byte{0xAA, 0xBB}, frame.Data)
}

func TestReadFDNormalisesClassicFrame(t *testing.T) {
	raw := encodeClassicFrame(CanFrame{CanID: 0x22, Data: []byte{0x01}})
	conn := &fakeConn{readQueue: [][]byte{raw}}
	s := newTestSocket(true, conn)

	frame, err := s.ReadFD()
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x22), frame.CanID)
	assert.Equal(t, uint8(0), frame.Flags)
}

func TestReadFDRejectedWhenNotFDMode(t *testing.T) {
	conn := &fakeConn{}
	s := newTestSocket(false, conn)

	_, err := s.ReadFD()
	assert.ErrorIs(t, err, ErrSocket)
}

func TestOperationsFailAfterClose(t *testing.T) {
	conn := &fakeConn{}
	s := newTestSocket(false, conn)

	assert.NoError(t, s.Close())
	assert.True(t, conn.closed)
	assert.False(t, s.IsOpen())

	// Close is idempotent.
	assert.NoError(t, s.Close())

	err := s.Write(CanFrame{CanID: 1})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSetRecvTimeoutUpdatesConn(t *testing.T) {
	conn := &fakeConn{}
	s := newTestSocket(false, conn)

	assert.NoError(t, s.SetRecvTimeout(5000))
	assert.Equal(t, uint32(5000), conn.recvTimeout)
}

func TestIsDataAvailable(t *testing.T) {
	conn := &fakeConn{pollResult: true}
	s := newTestSocket(false, conn)

	ok, err := s.IsDataAvailable(100)
	assert.NoError(t, err)
	assert.True(t, ok)
}
