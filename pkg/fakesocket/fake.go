// Package fakesocket provides fake net.Conn implementations for testing
// code that writes statsd lines.
package fakesocket

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"
)

// FakeAddr is a fake net.Addr
var FakeAddr = &net.UDPAddr{
	IP:   net.IPv4(127, 0, 0, 1),
	Port: 8125,
}

var ErrClosedConnection = errors.New("connection is closed")

// FakeConn is a net.Conn that records everything written to it. Writes can
// be made to fail on demand to exercise error paths.
type FakeConn struct {
	mu       sync.Mutex
	writes   [][]byte
	writeErr error
	closed   bool
}

func NewFakeConn() *FakeConn {
	return &FakeConn{}
}

// Write records b, one element per call.
func (fc *FakeConn) Write(b []byte) (int, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.closed {
		return 0, ErrClosedConnection
	}
	if fc.writeErr != nil {
		return 0, fc.writeErr
	}
	fc.writes = append(fc.writes, append([]byte(nil), b...))
	return len(b), nil
}

// FailWith makes subsequent writes return err. Pass nil to heal the conn.
func (fc *FakeConn) FailWith(err error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.writeErr = err
}

// Writes returns a copy of every recorded write, one element per Write call.
func (fc *FakeConn) Writes() [][]byte {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	writes := make([][]byte, len(fc.writes))
	copy(writes, fc.writes)
	return writes
}

// Bytes returns every recorded write concatenated, as a stream consumer
// would observe it.
func (fc *FakeConn) Bytes() []byte {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	var buf []byte
	for _, w := range fc.writes {
		buf = append(buf, w...)
	}
	return buf
}

// Read dummy impl.
func (fc *FakeConn) Read(b []byte) (int, error) { return 0, io.EOF }

// Close marks the conn closed; later writes fail.
func (fc *FakeConn) Close() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (fc *FakeConn) Closed() bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.closed
}

// LocalAddr dummy impl.
func (fc *FakeConn) LocalAddr() net.Addr { return FakeAddr }

// RemoteAddr dummy impl.
func (fc *FakeConn) RemoteAddr() net.Addr { return FakeAddr }

// SetDeadline dummy impl.
func (fc *FakeConn) SetDeadline(t time.Time) error { return nil }

// SetReadDeadline dummy impl.
func (fc *FakeConn) SetReadDeadline(t time.Time) error { return nil }

// SetWriteDeadline dummy impl.
func (fc *FakeConn) SetWriteDeadline(t time.Time) error { return nil }

// FakeDialer hands out connections like net.Dial would, counting the dials
// and optionally failing them.
type FakeDialer struct {
	mu      sync.Mutex
	conn    *FakeConn
	dialErr error
	dials   int
}

func NewFakeDialer(conn *FakeConn) *FakeDialer {
	return &FakeDialer{conn: conn}
}

// Dial returns the dialer's conn, or the scripted error.
func (fd *FakeDialer) Dial() (net.Conn, error) {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.dials++
	if fd.dialErr != nil {
		return nil, fd.dialErr
	}
	return fd.conn, nil
}

// FailWith makes subsequent dials return err. Pass nil to heal.
func (fd *FakeDialer) FailWith(err error) {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.dialErr = err
}

// SetConn swaps the connection handed out by later dials.
func (fd *FakeDialer) SetConn(conn *FakeConn) {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.conn = conn
}

// Dials returns the number of Dial calls so far.
func (fd *FakeDialer) Dials() int {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	return fd.dials
}
