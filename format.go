package statsd

import "strconv"

// appendLine renders one metric to the wire format:
//
//	<prefix><stat><suffix>:<value>|<type>[|@<rate>][|#<tag>,<tag>,...]
//
// The sampling rate is only carried when it is below 1, so the aggregator
// can extrapolate the true rate. Tags are rendered in input order, without
// deduplication. The value keeps its canonical decimal representation, no
// rounding.
func appendLine(buf []byte, prefix, stat, suffix string, value float64, typ MetricType, rate float64, tags Tags) []byte {
	buf = append(buf, prefix...)
	buf = append(buf, stat...)
	buf = append(buf, suffix...)
	buf = append(buf, ':')
	buf = strconv.AppendFloat(buf, value, 'f', -1, 64)
	buf = append(buf, '|')
	buf = append(buf, typ.typeTag()...)
	if rate < 1 {
		buf = append(buf, '|', '@')
		buf = strconv.AppendFloat(buf, rate, 'f', -1, 64)
	}
	if len(tags) > 0 {
		buf = append(buf, '|', '#')
		for i, tag := range tags {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, tag...)
		}
	}
	return buf
}
