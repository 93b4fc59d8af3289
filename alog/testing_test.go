package alog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/kernel/alog"
)

func TestTest(t *testing.T) {
	t.Parallel()

	t.Run("test logger", func(t *testing.T) {
		t.Parallel()

		logger := alog.Test(t)
		assert.NotNil(t, logger)
		assert.NotNil(t, logger.Slog())
	})

	t.Run("nil does panic", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			alog.Test(nil)
		})
	})

	t.Run("kernel debug is the default level", func(t *testing.T) {
		t.Parallel()

		logger := alog.Test(t)

		logger.Slog().Log(ctx, alog.LevelKernelDebug, "kernel msg")

		logger.Contains("level=KERNEL:DEBUG")
		assert.Contains(t, logger.String(), "kernel msg")
	})

	t.Run("no time", func(t *testing.T) {
		t.Parallel()

		logger := alog.Test(t)
		logger.Info(ctx, applicationMsg)

		assert.Equal(t, []string{"level=INFO msg=\"application message\"\n"}, logger.Lines())
	})

	t.Run("with group", func(t *testing.T) {
		t.Parallel()

		logger := alog.Test(t)

		logger.Debug(ctx, "msg 0")
		simulateComponentWorkingWithLogger(logger.WithGroup("GROUP"))

		logger.Contains("msg 0")
		logger.Contains("GROUP.some=key")
	})
}

func simulateComponentWorkingWithLogger(logger alog.Logger) {
	logger.Debug(ctx, "msg group", "some", "key")
}

func TestTestLogger_Empty(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		logger := alog.Test(new(testing.T))

		assert.True(t, logger.Empty())
		assert.False(t, logger.NotEmpty())
	})

	t.Run("not empty", func(t *testing.T) {
		t.Parallel()

		logger := alog.Test(new(testing.T))
		logger.Info(ctx, applicationMsg)

		assert.False(t, logger.Empty())
		assert.True(t, logger.NotEmpty())
	})
}

func TestTestLogger_Contains(t *testing.T) {
	t.Parallel()

	logger := alog.Test(new(testing.T))
	logger.Info(ctx, applicationMsg)

	assert.True(t, logger.Contains(applicationMsg))
	assert.False(t, logger.Contains("something else"))

	assert.True(t, logger.NotContains("something else"))
	assert.False(t, logger.NotContains(applicationMsg))
}

func TestTestLogger_Total(t *testing.T) {
	t.Parallel()

	logger := alog.Test(new(testing.T))

	assert.True(t, logger.Total(0))

	logger.Info(ctx, applicationMsg)
	logger.Info(ctx, applicationMsg)

	assert.True(t, logger.Total(2))
	assert.False(t, logger.Total(1))
	assert.Len(t, logger.Lines(), 2)
}
