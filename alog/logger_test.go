package alog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/kernel/alog"
	"github.com/go-arrower/kernel/entity"
)

func TestNameLogLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level slog.Level
		name  string
	}{
		{alog.LevelKernelDebug, "KERNEL:DEBUG"},
		{alog.LevelKernelInfo, "KERNEL:INFO"},
		{slog.LevelDebug, "DEBUG"},
		{slog.LevelInfo, "INFO"},
		{slog.LevelWarn, "WARN"},
		{slog.LevelError, "ERROR"},
		{alog.LevelCritical, "CRITICAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
				Level:       alog.LevelKernelDebug,
				ReplaceAttr: alog.NameLogLevels,
			}))

			logger.Log(ctx, tt.level, applicationMsg)
			assert.Contains(t, buf.String(), "level="+tt.name+" ")
		})
	}
}

func TestSlogLevel(t *testing.T) {
	t.Parallel()

	for _, level := range entity.Levels() {
		assert.Equal(t, level, alog.EntityLevel(alog.SlogLevel(level)), "round trip of %s", level)
	}

	assert.Equal(t, slog.LevelInfo, alog.SlogLevel("unknown"))
	assert.Equal(t, alog.LevelCritical, alog.SlogLevel(entity.LevelCritical))
}

func TestEntityLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, entity.LevelDebug, alog.EntityLevel(alog.LevelKernelDebug))
	assert.Equal(t, entity.LevelDebug, alog.EntityLevel(alog.LevelKernelInfo))
	assert.Equal(t, entity.LevelInfo, alog.EntityLevel(slog.LevelInfo+1))
	assert.Equal(t, entity.LevelError, alog.EntityLevel(slog.LevelError+2))
	assert.Equal(t, entity.LevelCritical, alog.EntityLevel(alog.LevelCritical+4))
}
