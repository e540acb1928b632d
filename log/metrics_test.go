//go:build unit
// +build unit

package log

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyLoggerWritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	dl := newDailyLogger(dir)
	defer dl.Close()

	_, err := dl.Write([]byte("{\"msg\":\"Metrics\"}\n"))
	require.NoError(t, err)

	fileName := fmt.Sprintf("metrics-%s.log", time.Now().Format("2006-01-02"))
	blob, err := os.ReadFile(filepath.Join(dir, fileName))
	require.NoError(t, err)
	assert.Contains(t, string(blob), "Metrics")
}

func TestMetricsLoggerSetupRejectsMissingDir(t *testing.T) {
	m := &MetricsLogger{FileDir: filepath.Join(t.TempDir(), "no-such-dir")}
	assert.Error(t, m.Setup())
}
