package server_test

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/go-arrower/kernel"
	"github.com/go-arrower/kernel/entity"
	"github.com/go-arrower/kernel/server"
)

var ctx = context.Background()

// testConfig returns a valid config, that does not persist anything.
func testConfig() *kernel.Config {
	return &kernel.Config{
		ApplicationName: "kernel-test",
		Environment:     kernel.TestEnv,
		Log:             kernel.Log{Level: entity.LevelDebug},
		Store:           kernel.Store{Driver: kernel.MemoryDriver},
		HTTP:            kernel.HTTP{Port: 0},
	}
}

func newTestContainer(t *testing.T, conf *kernel.Config, opts ...server.Option) (*server.Container, *syncBuffer) {
	t.Helper()

	buf := &syncBuffer{}

	dc, err := server.New(ctx, conf, append([]server.Option{server.WithLogWriter(buf)}, opts...)...)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = dc.Shutdown(ctx)
	})

	return dc, buf
}

func serve(dc *server.Container, method string, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	dc.WebRouter.ServeHTTP(rec, req)

	return rec
}


// shutdownRecorder records, if the TraceProvider it belongs to was shut down.
type shutdownRecorder struct {
	*tracetest.SpanRecorder

	shutdown atomic.Bool
}

func (r *shutdownRecorder) Shutdown(ctx context.Context) error {
	r.shutdown.Store(true)

	return r.SpanRecorder.Shutdown(ctx)
}

// syncBuffer is an io.Writer safe for concurrent use, as the server logs from its own goroutines.
type syncBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.b.Write(p) //nolint:wrapcheck
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.b.String()
}
