package statsd

// shouldSend reports whether a constituent send is transmitted, given its
// sampling rate and a uniform random draw from [0,1). Rates of 1 and above
// always transmit. A send that is not transmitted settles as a trivial
// success: no line is formatted, no bytes are written, no error is reported.
func shouldSend(rate, draw float64) bool {
	return rate >= 1 || draw <= rate
}
