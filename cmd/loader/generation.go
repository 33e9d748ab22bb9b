package main

import (
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/statline/statsd"
)

type metricData struct {
	count           uint64 // atomic
	namePrefix      string
	nameCardinality uint
	valueLimit      uint
}

func (md *metricData) genName(r *rand.Rand) string {
	return fmt.Sprintf("%s%d", md.namePrefix, r.Intn(int(md.nameCardinality)))
}

type metricGenerator struct {
	rnd *rand.Rand

	counters   metricData
	gauges     metricData
	sets       metricData
	timers     metricData
	histograms metricData
}

func newMetricGenerator(opts *commandOptions) *metricGenerator {
	data := func(kind string, count uint64) metricData {
		return metricData{
			count:           count / uint64(opts.Workers),
			namePrefix:      kind + ".",
			nameCardinality: opts.NameCardinality,
			valueLimit:      opts.ValueLimit,
		}
	}
	return &metricGenerator{
		rnd:        rand.New(rand.NewSource(rand.Int63())),
		counters:   data("counter", opts.Counts.Counter),
		gauges:     data("gauge", opts.Counts.Gauge),
		sets:       data("set", opts.Counts.Set),
		timers:     data("timer", opts.Counts.Timer),
		histograms: data("histogram", opts.Counts.Histogram),
	}
}

func (mg *metricGenerator) nextCounter(c *statsd.Client) {
	atomic.AddUint64(&mg.counters.count, ^uint64(0))
	c.Count(mg.counters.genName(mg.rnd), float64(1+mg.rnd.Intn(int(mg.counters.valueLimit))))
}

func (mg *metricGenerator) nextGauge(c *statsd.Client) {
	atomic.AddUint64(&mg.gauges.count, ^uint64(0))
	c.Gauge(mg.gauges.genName(mg.rnd), float64(mg.rnd.Intn(int(mg.gauges.valueLimit))))
}

func (mg *metricGenerator) nextSet(c *statsd.Client) {
	atomic.AddUint64(&mg.sets.count, ^uint64(0))
	c.Unique(mg.sets.genName(mg.rnd), float64(mg.rnd.Intn(int(mg.sets.valueLimit))))
}

func (mg *metricGenerator) nextTimer(c *statsd.Client) {
	atomic.AddUint64(&mg.timers.count, ^uint64(0))
	c.Timing(mg.timers.genName(mg.rnd), mg.rnd.Float64()*float64(mg.timers.valueLimit))
}

func (mg *metricGenerator) nextHistogram(c *statsd.Client) {
	atomic.AddUint64(&mg.histograms.count, ^uint64(0))
	c.Histogram(mg.histograms.genName(mg.rnd), mg.rnd.Float64()*float64(mg.histograms.valueLimit))
}

// next emits one randomly chosen metric, weighted by how many of each type
// remain. It returns false once every budget is exhausted.
func (mg *metricGenerator) next(c *statsd.Client) bool {
	// We can safely read these non-atomically, because this goroutine is the only one that writes to them.
	total := mg.counters.count + mg.gauges.count + mg.sets.count + mg.timers.count + mg.histograms.count
	if total == 0 {
		return false
	}

	n := uint64(mg.rnd.Int63n(int64(total)))
	switch {
	case n < mg.counters.count:
		mg.nextCounter(c)
	case n < mg.counters.count+mg.gauges.count:
		mg.nextGauge(c)
	case n < mg.counters.count+mg.gauges.count+mg.sets.count:
		mg.nextSet(c)
	case n < mg.counters.count+mg.gauges.count+mg.sets.count+mg.timers.count:
		mg.nextTimer(c)
	default:
		mg.nextHistogram(c)
	}
	return true
}
