package transport

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
)

type sendRequest struct {
	line []byte
	done Callback
}

// sender owns the connection handle and the single goroutine all writes go
// through. Writes are serialized in call order, which is what gives the TCP
// transport its on-the-wire ordering guarantee.
type sender struct {
	logger       logrus.FieldLogger
	dial         ConnFactory
	framed       bool
	writeTimeout time.Duration
	requests     chan sendRequest
	stopped      chan struct{}
	closeOnce    sync.Once

	// Owned by the run goroutine.
	backoff  backoff.BackOff
	conn     net.Conn
	redialAt time.Time
	lastErr  error
}

func newSender(dial ConnFactory, framed bool, opts Options, logger logrus.FieldLogger) *sender {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 0 // keep retrying for as long as the transport lives
	return &sender{
		logger:       logger,
		dial:         dial,
		framed:       framed,
		writeTimeout: opts.WriteTimeout,
		requests:     make(chan sendRequest, opts.QueueSize),
		stopped:      make(chan struct{}),
		backoff:      b,
	}
}

// Send queues one line and returns. If the queue is at capacity the send
// settles immediately with ErrQueueFull; it never blocks the caller.
func (s *sender) Send(line []byte, done Callback) {
	if s.framed {
		line = append(line, '\n')
	}
	select {
	case s.requests <- sendRequest{line: line, done: done}:
	default:
		s.settle(done, 0, ErrQueueFull)
	}
}

// Close drains the queued sends and releases the connection. The owning
// client must not issue further sends once Close has been called.
func (s *sender) Close() error {
	s.closeOnce.Do(func() {
		close(s.requests)
	})
	<-s.stopped
	return nil
}

func (s *sender) run() {
	defer close(s.stopped)
	for req := range s.requests {
		n, err := s.write(req.line)
		s.settle(req.done, n, err)
	}
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			s.logger.WithError(err).Warn("close failed")
		}
		s.conn = nil
	}
}

// write pushes one line to the socket, connecting first if needed. Dial
// failures are paced with exponential backoff: until the next attempt is
// due, sends fail fast with the last dial error. A failed send is never
// retried, the error is the caller's to observe.
func (s *sender) write(line []byte) (int, error) {
	if s.conn == nil {
		if !s.redialAt.IsZero() && time.Now().Before(s.redialAt) {
			return 0, s.lastErr
		}
		conn, err := s.dial()
		if err != nil {
			s.lastErr = fmt.Errorf("statsd transport: dial failed: %v", err)
			s.redialAt = time.Now().Add(s.backoff.NextBackOff())
			return 0, s.lastErr
		}
		s.backoff.Reset()
		s.redialAt = time.Time{}
		s.conn = conn
	}
	if s.writeTimeout > 0 {
		if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
			s.logger.WithError(err).Warn("failed to set write deadline")
		}
	}
	n, err := s.conn.Write(line)
	if err != nil {
		// The stream is in an unknown state, drop it and redial on the
		// next send.
		_ = s.conn.Close()
		s.conn = nil
		return n, fmt.Errorf("statsd transport: write failed: %v", err)
	}
	return n, nil
}

func (s *sender) settle(done Callback, n int, err error) {
	if done != nil {
		done(n, err)
		return
	}
	if err != nil {
		s.logger.WithError(err).Warn("send failed")
	}
}
