package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToInfoOnBadLevel(t *testing.T) {
	log, err := New(Config{Level: "nonsense"})
	require.NoError(t, err)
	defer log.Sync()

	assert.False(t, log.Core().Enabled(-1)) // debug は無効
	assert.True(t, log.Core().Enabled(0))   // info は有効
}

func TestNewWithLogFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "nested", "app.log")

	log, err := New(Config{Level: "info", LogFile: logFile, MaxSize: 1})
	require.NoError(t, err)

	log.Info("起動テスト")
	_ = log.Sync()

	// 親ディレクトリごと作成され、ファイルに書き込まれている
	info, err := os.Stat(logFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestNewDevelopmentNeverNil(t *testing.T) {
	log := NewDevelopment()
	require.NotNil(t, log)
	log.Debug("開発ロガーの動作確認")
}
