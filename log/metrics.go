package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/qopt-team/qaoa-engine/common"
	"github.com/qopt-team/qaoa-engine/core"
	"go.uber.org/zap"
)

const queueLengthKeyInMetrics = "queue_length"
const DefaultMetricsInterval = 10 * time.Second

// MetricsLogger periodically writes the executor queue length to a
// daily metrics file.
type MetricsLogger struct {
	FileDir  string
	Interval time.Duration

	dl *dailyLogger
	sc *core.SystemComponents
}

func (m *MetricsLogger) Setup() error {
	if err := common.IsDirWritable(m.FileDir); err != nil {
		err = fmt.Errorf("failed to write to %s: %w", m.FileDir, err)
		zap.L().Error("failed to set up metrics logger", zap.Error(err))
		return err
	}
	if m.Interval <= 0 {
		m.Interval = DefaultMetricsInterval
	}
	m.dl = newDailyLogger(m.FileDir)
	slog.SetDefault(slog.New(slog.NewJSONHandler(m.dl, nil)))
	m.sc = core.GetSystemComponents()
	return nil
}

// Run logs until the context is cancelled. Meant to be one actor of the
// command's run group.
func (m *MetricsLogger) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.logOnce()
		}
	}
}

func (m *MetricsLogger) logOnce() {
	slog.Info(
		"Metrics",
		slog.Int(
			queueLengthKeyInMetrics,
			m.sc.GetCurrentQueueSize()),
	)
}

func (m *MetricsLogger) Cleanup() {
	if m.dl != nil {
		m.dl.Close()
	}
}

type dailyLogger struct {
	mu              sync.Mutex
	fileDir         string
	currentFileName string
	file            *os.File
}

func newDailyLogger(fileDir string) *dailyLogger {
	return &dailyLogger{
		fileDir: fileDir,
	}
}

func (dl *dailyLogger) Write(p []byte) (n int, err error) {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	fileName := fmt.Sprintf("metrics-%s.log", time.Now().Format("2006-01-02"))
	filePath := filepath.Join(dl.fileDir, fileName)
	currentFilePath := filepath.Join(dl.fileDir, dl.currentFileName)

	if dl.file == nil || currentFilePath != filePath {
		if dl.file != nil {
			dl.file.Close()
		}
		var err error
		dl.file, err = os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return 0, err
		}
		dl.currentFileName = fileName
	}

	return dl.file.Write(p)
}

func (dl *dailyLogger) Close() error {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.file != nil {
		return dl.file.Close()
	}
	return nil
}
