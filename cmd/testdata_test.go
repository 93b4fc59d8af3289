package cmd_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestConfig writes a config file using a store in a new temporary directory,
// and returns the path of the file.
func newTestConfig(t *testing.T, driver string) string {
	t.Helper()

	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")

	conf := fmt.Sprintf(`application_name: kernel-cli
environment: test
log:
  level: info
store:
  driver: %s
  path: %s
http:
  port: 0
`, driver, filepath.Join(dir, "data"))

	require.NoError(t, os.WriteFile(file, []byte(conf), 0o600))

	return file
}
