package statsd

import "fmt"

// MetricType is an enumeration of all the possible types of Metric.
type MetricType byte

const (
	_ = iota
	// COUNTER is the statsd counter type
	COUNTER MetricType = iota
	// TIMER is the statsd timer type
	TIMER
	// HISTOGRAM is the statsd histogram type
	HISTOGRAM
	// GAUGE is the statsd gauge type
	GAUGE
	// SET is the statsd set type
	SET
)

func (m MetricType) String() string {
	switch m {
	case SET:
		return "set"
	case GAUGE:
		return "gauge"
	case HISTOGRAM:
		return "histogram"
	case TIMER:
		return "timer"
	case COUNTER:
		return "counter"
	}
	return "unknown"
}

// typeTag returns the wire protocol code for the metric type.
func (m MetricType) typeTag() string {
	switch m {
	case SET:
		return "s"
	case GAUGE:
		return "g"
	case HISTOGRAM:
		return "h"
	case TIMER:
		return "ms"
	case COUNTER:
		return "c"
	}
	return ""
}

// Metric represents a single logical emission before it is rendered to the
// wire. Names usually holds one stat name; more than one fans the emission
// out into independent sends, one per name, sharing the value, type, rate
// and tags.
type Metric struct {
	Names []string   // The stat names the emission targets
	Value float64    // The numeric value of the metric
	Rate  float64    // The sampling rate of the metric
	Tags  Tags       // The caller tags for the metric, excluding the client's global tags
	Type  MetricType // The type of metric
}

func (m *Metric) String() string {
	return fmt.Sprintf("{%s, %v, %f, %v}", m.Type, m.Names, m.Value, m.Tags)
}

// SendCallback is invoked exactly once per emission, after every constituent
// send has settled. bytesWritten is the sum of the bytes reported by the
// transport; err is the first error encountered across the constituent
// sends, or nil if all of them succeeded. Sampled-out sends contribute zero
// bytes and no error.
type SendCallback func(bytesWritten int, err error)
