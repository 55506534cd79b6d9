package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		level   zapcore.Level
	}{
		{"默认配置", Config{}, false, zapcore.InfoLevel},
		{"json+debug", Config{Level: "debug", Format: "json", Output: "stderr"}, false, zapcore.DebugLevel},
		{"大写级别", Config{Level: "WARN"}, false, zapcore.WarnLevel},
		{"非法级别", Config{Level: "verbose"}, true, 0},
		{"非法格式", Config{Format: "xml"}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.level))
			if tt.level > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.level-1))
			}
		})
	}
}

func TestInit_ReplacesGlobal(t *testing.T) {
	l, restore, err := Init(Config{Level: "error"})
	require.NoError(t, err)

	assert.Same(t, l, zap.L())
	restore()
	assert.NotSame(t, l, zap.L())
}
