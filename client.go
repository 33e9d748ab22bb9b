package statsd

import (
	"fmt"
	"math/rand"
	"net"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tilinna/clock"

	"github.com/statline/statsd/pkg/transport"
)

// Config holds the construction options for a Client. The zero value of
// every field maps to its default. The configuration is immutable once the
// Client is built.
type Config struct {
	Host       string  // Aggregator host, default "localhost"
	Port       int     // Aggregator port, default 8125
	Protocol   string  // "udp" or "tcp", default "udp"
	Prefix     string  // Prepended to every stat name
	Suffix     string  // Appended to every stat name
	GlobalTags Tags    // Appended to the tags of every emission
	SampleRate float64 // Default sampling rate, in (0,1], default 1
}

// Client converts metric operations into statsd line protocol and hands the
// lines to its Transport. A Client owns its Transport exclusively for its
// entire lifetime; no two Clients share one.
type Client struct {
	prefix     string
	suffix     string
	globalTags Tags
	sampleRate float64
	transport  transport.Transport
	logger     logrus.FieldLogger
	clock      clock.Clock
	randFloat  func() float64 // uniform draw in [0,1) for sampling decisions
}

// NewClient validates cfg and builds a Client. Invalid options are reported
// synchronously; no I/O, name resolution included, happens until the first
// emission.
func NewClient(cfg Config, logger logrus.FieldLogger) (*Client, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Protocol == "" {
		cfg.Protocol = DefaultProtocol
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("[statsd] port must be in 1..65535, got %d", cfg.Port)
	}
	if cfg.SampleRate < 0 || cfg.SampleRate > 1 {
		return nil, fmt.Errorf("[statsd] default-sample-rate must be in (0,1], got %v", cfg.SampleRate)
	}
	address := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	tr, err := transport.New(cfg.Protocol, address, transport.Options{}, logger)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"address":             address,
		"protocol":            cfg.Protocol,
		"prefix":              cfg.Prefix,
		"suffix":              cfg.Suffix,
		"global-tags":         cfg.GlobalTags,
		"default-sample-rate": cfg.SampleRate,
	}).Info("created statsd client")
	return &Client{
		prefix:     cfg.Prefix,
		suffix:     cfg.Suffix,
		globalTags: cfg.GlobalTags.Copy(),
		sampleRate: cfg.SampleRate,
		transport:  tr,
		logger:     logger,
		clock:      clock.Realtime(),
		randFloat:  rand.Float64,
	}, nil
}

// Option is a per-call knob accepted by every metric operation.
type Option func(*emitOpts)

type emitOpts struct {
	rate float64
	tags Tags
	done SendCallback
}

// WithRate overrides the client's default sampling rate for one emission.
// Values at or below zero fall back to the default; values above 1 behave
// as 1.
func WithRate(rate float64) Option {
	return func(o *emitOpts) {
		o.rate = rate
	}
}

// WithTags attaches caller tags to one emission. On the wire they precede
// the client's global tags.
func WithTags(tags ...string) Option {
	return func(o *emitOpts) {
		o.tags = tags
	}
}

// WithDone registers a completion callback for one emission. Without one,
// results are discarded and transport errors are logged.
func WithDone(done SendCallback) Option {
	return func(o *emitOpts) {
		o.done = done
	}
}

// Increment adds 1 to a counter.
func (c *Client) Increment(stat string, opts ...Option) {
	c.Count(stat, 1, opts...)
}

// Decrement subtracts amount from a counter.
func (c *Client) Decrement(stat string, amount float64, opts ...Option) {
	c.Count(stat, -amount, opts...)
}

// Count adds amount, which may be negative, to a counter.
func (c *Client) Count(stat string, amount float64, opts ...Option) {
	c.Emit([]string{stat}, COUNTER, amount, opts...)
}

// Timing records a duration in milliseconds.
func (c *Client) Timing(stat string, ms float64, opts ...Option) {
	c.Emit([]string{stat}, TIMER, ms, opts...)
}

// TimingDuration records a time.Duration as a timing metric.
func (c *Client) TimingDuration(stat string, d time.Duration, opts ...Option) {
	c.Timing(stat, float64(d)/float64(time.Millisecond), opts...)
}

// Histogram records a value to be aggregated into a distribution.
func (c *Client) Histogram(stat string, value float64, opts ...Option) {
	c.Emit([]string{stat}, HISTOGRAM, value, opts...)
}

// Gauge records an instantaneous value.
func (c *Client) Gauge(stat string, value float64, opts ...Option) {
	c.Emit([]string{stat}, GAUGE, value, opts...)
}

// Unique counts distinct occurrences of value per flush interval on the
// aggregator side.
func (c *Client) Unique(stat string, value float64, opts ...Option) {
	c.Emit([]string{stat}, SET, value, opts...)
}

// Emit is the list-shaped entry point: one logical emission fanned out over
// every name in stats. Each name gets its own sampling draw and its own
// independent send carrying the same value, type, rate and tags; no send is
// skipped because a sibling failed. A callback registered with WithDone
// fires exactly once, after the last constituent settles.
func (c *Client) Emit(stats []string, typ MetricType, value float64, opts ...Option) {
	var o emitOpts
	for _, opt := range opts {
		opt(&o)
	}
	rate := o.rate
	if rate <= 0 {
		rate = c.sampleRate
	}
	if rate > 1 {
		rate = 1
	}
	c.emit(&Metric{
		Names: stats,
		Value: value,
		Rate:  rate,
		Tags:  o.tags,
		Type:  typ,
	}, o.done)
}

func (c *Client) emit(m *Metric, done SendCallback) {
	if len(m.Names) == 0 {
		if done != nil {
			done(0, nil)
		}
		return
	}
	var settle transport.Callback
	if done != nil {
		settle = newAggregator(len(m.Names), done).settle
	}
	tags := m.Tags.Concat(c.globalTags)
	for _, stat := range m.Names {
		if m.Rate < 1 && !shouldSend(m.Rate, c.randFloat()) {
			if settle != nil {
				settle(0, nil)
			}
			continue
		}
		line := appendLine(nil, c.prefix, stat, c.suffix, m.Value, m.Type, m.Rate, tags)
		c.transport.Send(line, settle)
	}
}

// Close drains queued sends and releases the transport's socket. The Client
// must not be used after Close.
func (c *Client) Close() error {
	return c.transport.Close()
}
