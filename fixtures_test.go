package statsd

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/statline/statsd/internal/fixtures"
	"github.com/statline/statsd/pkg/transport"
)

// capturingTransport records every line it is handed and settles each send
// synchronously. Errors queued with failWith are popped one per send.
type capturingTransport struct {
	mu    sync.Mutex
	lines []string
	errs  []error
}

func (tr *capturingTransport) Send(line []byte, done transport.Callback) {
	tr.mu.Lock()
	tr.lines = append(tr.lines, string(line))
	var err error
	if len(tr.errs) > 0 {
		err = tr.errs[0]
		tr.errs = tr.errs[1:]
	}
	tr.mu.Unlock()
	if done == nil {
		return
	}
	if err != nil {
		done(0, err)
	} else {
		done(len(line), nil)
	}
}

func (tr *capturingTransport) Close() error {
	return nil
}

// failWith queues outcomes for the next sends, in order. A nil entry means
// success.
func (tr *capturingTransport) failWith(errs ...error) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.errs = append(tr.errs, errs...)
}

func (tr *capturingTransport) Lines() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	lines := make([]string, len(tr.lines))
	copy(lines, tr.lines)
	return lines
}

// newTestClient builds a Client on a capturing transport. The real transport
// created by NewClient never performed I/O, so it is simply closed.
func newTestClient(t *testing.T, cfg Config) (*Client, *capturingTransport) {
	c, err := NewClient(cfg, fixtures.NewTestLogger(t))
	require.NoError(t, err)
	require.NoError(t, c.transport.Close())
	tr := &capturingTransport{}
	c.transport = tr
	return c, tr
}
