package testutils

import (
	"reflect"
	"strings"
	"testing"

	"github.com/benoitkugler/webstyle/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("expected\n%v\n got \n%v", exp, got)
	}
}

// CapturedLogs stores the messages emitted on the
// package loggers while the capture is active.
type CapturedLogs struct {
	obs *observer.ObservedLogs
}

// CaptureLogs redirects the package loggers to an in-memory sink.
// Use one of the Assert methods (usually with defer) to check the
// messages and restore the default loggers.
func CaptureLogs() *CapturedLogs {
	core, obs := observer.New(zapcore.DebugLevel)
	logger.SetLogger(zap.New(core))
	return &CapturedLogs{obs: obs}
}

// Logs returns the captured messages and stops the capture.
func (c *CapturedLogs) Logs() []string {
	logger.SetLogger(zap.NewNop())
	var out []string
	for _, entry := range c.obs.AllUntimed() {
		out = append(out, entry.Message)
	}
	return out
}

// AssertNoLogs fails if any message has been captured.
func (c *CapturedLogs) AssertNoLogs(t *testing.T) {
	t.Helper()
	if l := c.Logs(); len(l) != 0 {
		t.Fatalf("expected no logs, got (%d): \n%s", len(l), strings.Join(l, "\n"))
	}
}

// CheckLogs asserts that the captured messages contain, in order,
// the given substrings.
func (c *CapturedLogs) CheckLogs(t *testing.T, expected ...string) {
	t.Helper()
	logs := c.Logs()
	if len(logs) != len(expected) {
		t.Fatalf("expected %d logs, got %d: \n%s", len(expected), len(logs), strings.Join(logs, "\n"))
	}
	for i, exp := range expected {
		if !strings.Contains(logs[i], exp) {
			t.Fatalf("expected %s in log %d, got %s", exp, i, logs[i])
		}
	}
}
