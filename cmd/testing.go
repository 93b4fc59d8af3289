package cmd

import (
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// mu synchronises all calls of TestExecute.
// The same command can be passed concurrently, and os.Stdout & os.Stderr are global.
var mu sync.Mutex

// TestExecute is a helper that executes a cobra command and returns its output and error.
// The output contains everything written to the command's out and err writers,
// as well as to os.Stdout and os.Stderr.
func TestExecute(t *testing.T, command *cobra.Command, args ...string) (string, error) {
	t.Helper()

	mu.Lock()
	defer mu.Unlock()

	buf := &syncBuilder{}
	command.SetOut(buf)
	command.SetErr(buf)

	restore := captureOS(t, buf)

	command.SetArgs(args)
	_, cmdErr := command.ExecuteC()

	restore()

	return buf.String(), cmdErr
}

// captureOS redirects os.Stdout and os.Stderr into w, until the returned func is called.
func captureOS(t *testing.T, w io.Writer) func() {
	t.Helper()

	stdout, stderr := os.Stdout, os.Stderr

	r, pipe, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout, os.Stderr = pipe, pipe

	done := make(chan struct{})

	go func() {
		_, _ = io.Copy(w, r)
		close(done)
	}()

	return func() {
		_ = pipe.Close()
		<-done
		_ = r.Close()

		os.Stdout, os.Stderr = stdout, stderr
	}
}

// syncBuilder is a helper implementing io.Writer, used for concurrency save testing.
type syncBuilder struct {
	b  strings.Builder
	mu sync.Mutex
}

func (b *syncBuilder) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.b.Write(p) //nolint:wrapcheck
}

func (b *syncBuilder) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.b.String()
}
