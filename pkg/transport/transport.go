// Package transport delivers formatted statsd lines to an aggregator over
// UDP datagrams or a persistent TCP stream.
package transport

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultDialTimeout is the default net.Dial timeout.
	DefaultDialTimeout = 5 * time.Second
	// DefaultWriteTimeout is the default socket write timeout.
	DefaultWriteTimeout = 30 * time.Second
	// DefaultQueueSize is the default number of sends that may be queued
	// before new ones are rejected.
	DefaultQueueSize = 1000
)

// ErrQueueFull is reported for sends issued while the queue is at capacity.
var ErrQueueFull = errors.New("statsd transport: send queue is full")

// Callback is invoked once a send settles, with the bytes written to the
// socket and the write or dial error, if any.
type Callback func(bytesWritten int, err error)

// ConnFactory creates the underlying connection on demand.
type ConnFactory func() (net.Conn, error)

// Transport sends one formatted line at a time. Send is asynchronous: it
// queues the line and returns, and the outcome is reported through done.
// done may be nil for fire-and-forget sends; errors are then logged instead.
type Transport interface {
	Send(line []byte, done Callback)
	Close() error
}

// Options holds the tunables shared by both transports. Zero values map to
// the defaults.
type Options struct {
	DialTimeout  time.Duration
	WriteTimeout time.Duration
	QueueSize    int
}

func (o *Options) applyDefaults() {
	if o.DialTimeout == 0 {
		o.DialTimeout = DefaultDialTimeout
	}
	if o.WriteTimeout == 0 {
		o.WriteTimeout = DefaultWriteTimeout
	}
	if o.QueueSize == 0 {
		o.QueueSize = DefaultQueueSize
	}
}

// New returns a Transport for the given protocol and address. "udp" sends
// every line as an independent datagram. "tcp" appends a trailing newline to
// each line and writes them all to one long-lived stream, opened lazily on
// first use and reused across sends. Neither protocol performs any I/O, name
// resolution included, until the first send.
func New(protocol, address string, opts Options, logger logrus.FieldLogger) (Transport, error) {
	switch protocol {
	case "udp", "tcp":
	default:
		return nil, fmt.Errorf("[statsd] protocol must be one of 'udp' or 'tcp', got %q", protocol)
	}
	opts.applyDefaults()
	dial := func() (net.Conn, error) {
		return net.DialTimeout(protocol, address, opts.DialTimeout)
	}
	return NewWithDialer(dial, protocol == "tcp", opts, logger), nil
}

// NewWithDialer returns a Transport drawing connections from the supplied
// factory. framed enables the stream discipline used for TCP: every line is
// terminated with a newline so the receiving side can reassemble them from
// arbitrary read boundaries.
func NewWithDialer(dial ConnFactory, framed bool, opts Options, logger logrus.FieldLogger) Transport {
	opts.applyDefaults()
	s := newSender(dial, framed, opts, logger)
	go s.run()
	return s
}
