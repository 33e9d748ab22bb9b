package fixtures

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

type testWriter struct {
	tb testing.TB
}

var _ io.Writer = testWriter{}

func (w testWriter) Write(p []byte) (int, error) {
	w.tb.Log(string(p))
	return len(p), nil
}

// NewTestLogger returns a logger which routes its output through the test's
// log, so it is only shown for failing tests.
func NewTestLogger(tb testing.TB) logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(testWriter{tb: tb})
	return logger
}
