package main

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/statline/statsd"
)

func main() {
	logger := logrus.New()
	client, err := statsd.NewClient(statsd.Config{
		Host:       "127.0.0.1",
		Protocol:   "tcp",
		Prefix:     "example.",
		GlobalTags: statsd.Tags{"env:dev"},
	}, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer client.Close()

	client.Increment("requests")
	client.Gauge("queue.depth", 42, statsd.WithTags("queue:default"))
	client.Timing("db.query", 12.5, statsd.WithRate(0.5))

	timer := client.NewTimer("render")
	time.Sleep(10 * time.Millisecond)
	timer.Send()

	done := make(chan struct{})
	client.Emit([]string{"requests.2xx", "requests.total"}, statsd.COUNTER, 1,
		statsd.WithDone(func(bytesWritten int, err error) {
			if err != nil {
				logger.WithError(err).Warn("emission failed")
			}
			close(done)
		}))
	<-done
}
