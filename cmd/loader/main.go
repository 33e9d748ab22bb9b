package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/statline/statsd"
)

func main() {
	opts := parseArgs(os.Args[1:])
	logger := logrus.New()

	limiter := rate.NewLimiter(rate.Limit(opts.Rate), int(opts.Workers))
	pendingWorkers := make(chan struct{}, opts.Workers)
	generators := make([]*metricGenerator, 0, opts.Workers)
	for i := uint(0); i < opts.Workers; i++ {
		generator := newMetricGenerator(opts)
		generators = append(generators, generator)
		// Each worker gets its own client; a client owns its transport
		// exclusively.
		client, err := statsd.NewClient(statsd.Config{
			Host:       opts.Host,
			Port:       opts.Port,
			Protocol:   opts.Protocol,
			Prefix:     opts.Prefix,
			GlobalTags: statsd.Tags(opts.Tags),
			SampleRate: opts.SampleRate,
		}, logger)
		if err != nil {
			logger.Fatalf("Failed to create client: %v", err)
		}
		go sendMetricsWorker(client, limiter, generator, pendingWorkers)
	}

	runningWorkers := opts.Workers
	statusTicker := time.NewTicker(1 * time.Second)
	defer statusTicker.Stop()
	for runningWorkers > 0 {
		select {
		case <-pendingWorkers:
			runningWorkers--
		case <-statusTicker.C:
			var counters, gauges, sets, timers, histograms uint64
			for _, mg := range generators {
				counters += atomic.LoadUint64(&mg.counters.count)
				gauges += atomic.LoadUint64(&mg.gauges.count)
				sets += atomic.LoadUint64(&mg.sets.count)
				timers += atomic.LoadUint64(&mg.timers.count)
				histograms += atomic.LoadUint64(&mg.histograms.count)
			}
			fmt.Printf("%d counters, %d gauges, %d sets, %d timers, %d histograms remaining\n",
				counters, gauges, sets, timers, histograms)
		}
	}
}

func sendMetricsWorker(
	client *statsd.Client,
	limiter *rate.Limiter,
	generator *metricGenerator,
	chDone chan<- struct{},
) {
	ctx := context.Background()
	for generator.next(client) {
		if err := limiter.Wait(ctx); err != nil {
			break
		}
	}
	if err := client.Close(); err != nil {
		fmt.Printf("Error closing client: %v\n", err)
	}
	chDone <- struct{}{}
}
