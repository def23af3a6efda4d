package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutputLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, false)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log.Debug("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	assert.Equal(t, logrus.DebugLevel, NewWithOutput(&buf, true).GetLevel())
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	Component(NewWithOutput(&buf, false), "Grid").Warn("dig rejected")
	assert.Contains(t, buf.String(), "component=Grid")

	assert.NotPanics(t, func() {
		Component(nil, "Grid").Error("goes nowhere")
	})
}

func TestNewRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, err := NewRotatingFile(path, false)
	require.NoError(t, err)

	log.WithField("coins", 3).Warn("save failed")
	log.Debug("not written")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "save failed")
	assert.Contains(t, string(data), "coins=3")
	assert.NotContains(t, string(data), "not written")
}
