package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestWriterLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("test", &buf, WARN)

	logger.Info("скрыто")
	logger.Warn("видно %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "скрыто")
	assert.Contains(t, out, "[WARN] [test] видно 1")
}

func TestNewLogger_WritesFile(t *testing.T) {
	logger, err := NewLogger("roomgen", t.TempDir())
	require.NoError(t, err)
	logger.SetLevels(ERROR, DEBUG)

	logger.Debug("в файл")
	logger.Trace("никуда")
	name := logger.FileName()
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] [roomgen] в файл")
	assert.NotContains(t, string(data), "никуда")

	// Повторное закрытие безопасно
	assert.NoError(t, logger.Close())
}

func TestNewLogger_EmptyDirIsConsoleOnly(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	logger, err := NewLogger("roomgen", "")
	require.NoError(t, err)
	logger.Info("только консоль")

	assert.Empty(t, logger.FileName())
	assert.NoError(t, logger.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "без каталога логов файлы не создаются")
}

func TestDefaultLogger_Swap(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	var buf bytes.Buffer
	SetDefault(NewWriterLogger("main", &buf, DEBUG))

	Debug("отладка")
	Error("ошибка: %v", "boom")

	assert.Contains(t, buf.String(), "[DEBUG] [main] отладка")
	assert.Contains(t, buf.String(), "[ERROR] [main] ошибка: boom")
}
