package alog

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test returns a logger tuned for unit testing.
// It logs all levels, including the kernel levels, and
// exposes a lot of log-specific assertions for the use in tests.
// The interface follows stretchr/testify as close as possible.
//
//   - Every assert func returns a bool indicating whether the assertion was successful or not,
//     this is useful for if you want to go on making further assertions under certain conditions.
func Test(t *testing.T) *TestLogger {
	if t == nil {
		panic("t is nil")
	}

	buf := &testBuffer{
		mu:    sync.Mutex{},
		lines: []string{},
	}

	opts := getDefaultHandlerOptions()
	opts.ReplaceAttr = func(groups []string, attr slog.Attr) slog.Attr {
		if attr.Key == slog.TimeKey && len(groups) == 0 {
			return slog.Attr{}
		}

		return NameLogLevels(groups, attr)
	}

	logger := NewSlog(
		WithLevel(LevelKernelDebug),
		WithHandler(slog.NewTextHandler(buf, opts)),
	)

	return &TestLogger{
		Adapter: Wrap(logger),
		t:       t,
		buf:     buf,
	}
}

// TestLogger is a special logger for unit testing.
// It implements Logger and can be injected as a logger dependency,
// use Slog if a *slog.Logger is required.
//
// Additionally, TestLogger exposes a set of assertions on all the lines
// logged with this logger.
type TestLogger struct {
	*Adapter

	t   *testing.T
	buf *testBuffer
}

var _ Logger = (*TestLogger)(nil)

// String return the complete log output of each line logged to TestLogger.
func (l *TestLogger) String() string {
	return strings.Join(l.buf.all(), "")
}

// Lines returns each line logged to TestLogger.
func (l *TestLogger) Lines() []string {
	return l.buf.all()
}

// Empty asserts that the logger has no lines logged.
func (l *TestLogger) Empty(msgAndArgs ...any) bool {
	l.t.Helper()

	lines := l.buf.all()
	if len(lines) > 0 {
		s := "it has 1 line"
		if len(lines) > 1 {
			s = fmt.Sprintf("it has %d lines", len(lines))
		}

		return assert.Fail(l.t, "logger is not empty, "+s, msgAndArgs...)
	}

	return true
}

// NotEmpty asserts that the logger has at least one line.
func (l *TestLogger) NotEmpty(msgAndArgs ...any) bool {
	l.t.Helper()

	if len(l.buf.all()) == 0 {
		return assert.Fail(l.t, "logger is empty, should not be", msgAndArgs...)
	}

	return true
}

// Contains asserts that at least one line contains the given substring contains.
func (l *TestLogger) Contains(contains string, msgAndArgs ...any) bool {
	l.t.Helper()

	for _, line := range l.buf.all() {
		if strings.Contains(line, contains) {
			return true
		}
	}

	return assert.Fail(l.t, "log output does not have a line which contains: "+contains, msgAndArgs...)
}

// NotContains asserts that no line of the log output contains the given substring notContains.
func (l *TestLogger) NotContains(notContains string, msgAndArgs ...any) bool {
	l.t.Helper()

	for _, line := range l.buf.all() {
		if strings.Contains(line, notContains) {
			return assert.Fail(l.t, "log output contains: "+notContains+", should not be", msgAndArgs...)
		}
	}

	return true
}

// Total asserts that the logger has exactly total number of lines logged.
func (l *TestLogger) Total(total int, msgAndArgs ...any) bool {
	l.t.Helper()

	n := len(l.buf.all())
	if n != total {
		return assert.Fail(l.t, fmt.Sprintf("logger does not have %d lines, it has: %d", total, n), msgAndArgs...)
	}

	return true
}

// testBuffer keeps each Write as its own line.
// slog handlers call Write exactly once per record.
type testBuffer struct {
	mu    sync.Mutex
	lines []string
}

func (b *testBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines = append(b.lines, string(p))

	return len(p), nil
}

func (b *testBuffer) all() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	lines := make([]string, len(b.lines))
	copy(lines, b.lines)

	return lines
}
