package statsd

import "sync"

// aggregator is the join barrier for one logical emission. Every constituent
// send settles exactly once, whether it was transmitted, sampled out or
// failed; when the last one settles, the user callback fires with the first
// latched error and the total byte count. Transmitted sends settle on the
// transport's sender goroutine while sampled-out sends settle on the
// caller's goroutine, hence the mutex.
type aggregator struct {
	mu        sync.Mutex
	remaining int
	bytes     int
	firstErr  error
	done      SendCallback
}

func newAggregator(n int, done SendCallback) *aggregator {
	return &aggregator{
		remaining: n,
		done:      done,
	}
}

// settle records the outcome of one constituent send. Errors after the first
// are dropped to keep the callback contract single-valued.
func (a *aggregator) settle(bytesWritten int, err error) {
	a.mu.Lock()
	a.bytes += bytesWritten
	if err != nil && a.firstErr == nil {
		a.firstErr = err
	}
	a.remaining--
	fire := a.remaining == 0
	a.mu.Unlock()
	// Nothing settles after the last constituent, so the fields are stable
	// here without the lock.
	if fire {
		a.done(a.bytes, a.firstErr)
	}
}
