package statsd

import "time"

// Timer measures elapsed time and reports it as a timing metric.
type Timer struct {
	client *Client
	stat   string
	opts   []Option
	start  time.Time
}

// NewTimer starts a timer on the client's clock.
func (c *Client) NewTimer(stat string, opts ...Option) *Timer {
	return &Timer{
		client: c,
		stat:   stat,
		opts:   opts,
		start:  c.clock.Now(),
	}
}

// Send emits the time elapsed since the timer was created. It may be called
// more than once; each call reports the total elapsed time so far.
func (t *Timer) Send() {
	t.client.TimingDuration(t.stat, t.client.clock.Now().Sub(t.start), t.opts...)
}
