package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesToRotatingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cmms.log")

	log := New(Config{File: file, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	log.Info("task created", zap.Uint64("task_id", 7))
	_ = log.Sync()

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"task created"`)
	assert.Contains(t, string(content), `"task_id":7`)
}

func TestRotatingFile_UsesConfig(t *testing.T) {
	sink := rotatingFile(Config{File: "app.log", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28})

	assert.Equal(t, "app.log", sink.Filename)
	assert.Equal(t, 10, sink.MaxSize)
	assert.Equal(t, 3, sink.MaxBackups)
	assert.Equal(t, 28, sink.MaxAge)
	assert.True(t, sink.Compress)
}
