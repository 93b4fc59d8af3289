package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/go-arrower/kernel/alog"
	"github.com/go-arrower/kernel/kv"
	"github.com/go-arrower/kernel/repository"
)

func TestApp_Instrumented(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
	logger := alog.Test(t)

	repo := repository.Test(t, nil)
	usecases := kv.NewApp(repo).Instrumented(tp, noop.NewMeterProvider(), logger)

	err := usecases.Insert.H(ctx, kv.InsertCommand{Key: "key", Value: "val"})
	require.NoError(t, err)

	res, err := usecases.Get.H(ctx, kv.GetQuery{Key: "key"})
	require.NoError(t, err)
	assert.Equal(t, "val", res.Data[0].Value)

	del, err := usecases.Delete.H(ctx, kv.DeleteCommand{Key: "key"})
	require.NoError(t, err)
	assert.True(t, del.Deleted)

	spans := recorder.Ended()
	require.Len(t, spans, 3)

	for i, name := range []string{"kv.InsertCommand", "kv.GetQuery", "kv.DeleteCommand"} {
		assert.Equal(t, name, spans[i].Name())
		assert.Contains(t, spans[i].Attributes(), attribute.String("kv.key", "key"))
	}

	logger.Contains(`msg="command executed successfully" command=kv.InsertCommand key=key`)
	logger.Contains(`msg="query executed successfully" command=kv.GetQuery key=key`)
	logger.Contains(`msg="request executed successfully" command=kv.DeleteCommand key=key`)
	repo.Empty()
}

func TestViewApp(t *testing.T) {
	t.Parallel()

	repo := repository.NewEnvRepository(repository.WithEnvironment(map[string]string{"A": "1", "B": "2"}))
	usecases := kv.NewViewApp(repo).Instrumented(trace.NewTracerProvider(), noop.NewMeterProvider(), alog.NewNoopLogger())

	res, err := usecases.List.H(ctx, kv.ListQuery{})
	assert.NoError(t, err)
	assert.Equal(t, 2, res.Len())
}
