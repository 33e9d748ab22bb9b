package statsd

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statline/statsd/internal/fixtures"
	"github.com/statline/statsd/pkg/fakesocket"
	"github.com/statline/statsd/pkg/transport"
)

func TestIncrement(t *testing.T) {
	t.Parallel()
	c, tr := newTestClient(t, Config{})
	c.Increment("test")
	assert.Equal(t, []string{"test:1|c"}, tr.Lines())
}

func TestIncrementWithGlobalTags(t *testing.T) {
	t.Parallel()
	c, tr := newTestClient(t, Config{GlobalTags: Tags{"gtag"}})
	c.Increment("test")
	assert.Equal(t, []string{"test:1|c|#gtag"}, tr.Lines())
}

func TestCallerTagsPrecedeGlobalTags(t *testing.T) {
	t.Parallel()
	c, tr := newTestClient(t, Config{GlobalTags: Tags{"gtag"}})
	c.Count("test", 1337, WithTags("foo"))
	assert.Equal(t, []string{"test:1337|c|#foo,gtag"}, tr.Lines())
}

func TestTagMerge(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		globalTags Tags
		callerTags []string
		expected   string
	}{
		{"no tags", nil, nil, "test:1|c"},
		{"caller tags only", nil, []string{"foo", "bar"}, "test:1|c|#foo,bar"},
		{"global tags only", Tags{"g1", "g2"}, nil, "test:1|c|#g1,g2"},
		{"caller before global", Tags{"g"}, []string{"a", "b"}, "test:1|c|#a,b,g"},
		{"duplicates not deduplicated", Tags{"x"}, []string{"x"}, "test:1|c|#x,x"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c, tr := newTestClient(t, Config{GlobalTags: tc.globalTags})
			c.Increment("test", WithTags(tc.callerTags...))
			assert.Equal(t, []string{tc.expected}, tr.Lines())
		})
	}
}

func TestPrefixSuffixAndSampleRate(t *testing.T) {
	t.Parallel()
	c, tr := newTestClient(t, Config{Prefix: "foo.", Suffix: ".bar"})
	c.randFloat = func() float64 { return 0.42 }

	var calls int
	c.Timing("test", 42, WithRate(0.5), WithDone(func(bytesWritten int, err error) {
		calls++
		assert.NoError(t, err)
		assert.Equal(t, len("foo.test.bar:42|ms|@0.5"), bytesWritten)
	}))
	assert.Equal(t, []string{"foo.test.bar:42|ms|@0.5"}, tr.Lines())
	assert.Equal(t, 1, calls)
}

func TestSampledOutIsTrivialSuccess(t *testing.T) {
	t.Parallel()
	c, tr := newTestClient(t, Config{})
	c.randFloat = func() float64 { return 0.9 }

	var calls int
	c.Timing("test", 42, WithRate(0.5), WithDone(func(bytesWritten int, err error) {
		calls++
		assert.NoError(t, err)
		assert.Zero(t, bytesWritten)
	}))
	assert.Empty(t, tr.Lines())
	assert.Equal(t, 1, calls)
}

func TestDefaultSampleRateApplied(t *testing.T) {
	t.Parallel()
	c, tr := newTestClient(t, Config{SampleRate: 0.5})
	c.randFloat = func() float64 { return 0.42 }
	c.Increment("test")
	assert.Equal(t, []string{"test:1|c|@0.5"}, tr.Lines())
}

func TestDecrement(t *testing.T) {
	t.Parallel()
	c, tr := newTestClient(t, Config{})
	c.Decrement("test", 42)
	assert.Equal(t, []string{"test:-42|c"}, tr.Lines())
}

func TestTypedOperations(t *testing.T) {
	t.Parallel()
	c, tr := newTestClient(t, Config{})
	c.Timing("t", 42)
	c.TimingDuration("t", 1500*time.Millisecond)
	c.Histogram("h", 128)
	c.Gauge("g", -5)
	c.Unique("u", 42)
	assert.Equal(t, []string{
		"t:42|ms",
		"t:1500|ms",
		"h:128|h",
		"g:-5|g",
		"u:42|s",
	}, tr.Lines())
}

func TestFanOutEmitsEveryName(t *testing.T) {
	t.Parallel()
	c, tr := newTestClient(t, Config{})

	var calls int
	c.Emit([]string{"a", "b"}, TIMER, 42, WithDone(func(bytesWritten int, err error) {
		calls++
		assert.NoError(t, err)
		assert.Equal(t, len("a:42|ms")+len("b:42|ms"), bytesWritten)
	}))
	assert.Equal(t, []string{"a:42|ms", "b:42|ms"}, tr.Lines())
	assert.Equal(t, 1, calls)
}

func TestFanOutLatchesFirstErrorAndIssuesSiblings(t *testing.T) {
	t.Parallel()
	c, tr := newTestClient(t, Config{})
	e1 := errors.New("boom")
	e2 := errors.New("later")
	tr.failWith(e1, e2, nil)

	var calls int
	c.Emit([]string{"a", "b", "d"}, COUNTER, 1, WithDone(func(bytesWritten int, err error) {
		calls++
		assert.Equal(t, e1, err)
		assert.Equal(t, len("d:1|c"), bytesWritten)
	}))
	// A failed constituent never aborts its siblings.
	assert.Equal(t, []string{"a:1|c", "b:1|c", "d:1|c"}, tr.Lines())
	assert.Equal(t, 1, calls)
}

func TestFanOutWithoutCallback(t *testing.T) {
	t.Parallel()
	c, tr := newTestClient(t, Config{})
	tr.failWith(errors.New("discarded"))
	c.Emit([]string{"a", "b"}, COUNTER, 1)
	assert.Equal(t, []string{"a:1|c", "b:1|c"}, tr.Lines())
}

func TestEmitNoNames(t *testing.T) {
	t.Parallel()
	c, tr := newTestClient(t, Config{})
	var calls int
	c.Emit(nil, COUNTER, 1, WithDone(func(bytesWritten int, err error) {
		calls++
		assert.NoError(t, err)
		assert.Zero(t, bytesWritten)
	}))
	assert.Empty(t, tr.Lines())
	assert.Equal(t, 1, calls)
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown protocol", Config{Protocol: "carrier-pigeon"}},
		{"negative port", Config{Port: -1}},
		{"port too large", Config{Port: 65536}},
		{"sample rate above one", Config{SampleRate: 1.5}},
		{"negative sample rate", Config{SampleRate: -0.5}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewClient(tc.cfg, fixtures.NewTestLogger(t))
			require.Error(t, err)
		})
	}
}

// TestStreamDelivery drives the real framed transport against a fake conn
// and reassembles the stream with a LineScanner, feeding it in uneven
// chunks the way TCP reads arrive.
func TestStreamDelivery(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, Config{})
	conn := fakesocket.NewFakeConn()
	dialer := fakesocket.NewFakeDialer(conn)
	c.transport = transport.NewWithDialer(dialer.Dial, true, transport.Options{}, fixtures.NewTestLogger(t))

	done := make(chan error, 1)
	c.Emit([]string{"a", "b"}, TIMER, 42, WithDone(func(bytesWritten int, err error) {
		assert.Equal(t, len("a:42|ms\n")+len("b:42|ms\n"), bytesWritten)
		done <- err
	}))
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("callback did not fire")
	}
	require.NoError(t, c.Close())

	stream := conn.Bytes()
	var scanner transport.LineScanner
	var lines []string
	for len(stream) > 0 {
		chunk := 3
		if chunk > len(stream) {
			chunk = len(stream)
		}
		for _, line := range scanner.Push(stream[:chunk]) {
			lines = append(lines, string(line))
		}
		stream = stream[chunk:]
	}
	assert.Equal(t, []string{"a:42|ms", "b:42|ms"}, lines)
	assert.Zero(t, scanner.Pending())
	assert.Equal(t, 1, dialer.Dials())
}
