package logger

import (
	"testing"

	"clubcine-quiz/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		level string
		want  zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"loud", zapcore.InfoLevel},
	}
	for _, tc := range cases {
		log := New(config.LogConfig{Level: tc.level, Env: "production"})
		if !log.Core().Enabled(tc.want) {
			t.Fatalf("level %q: expected %v enabled", tc.level, tc.want)
		}
		if tc.want > zapcore.DebugLevel && log.Core().Enabled(tc.want-1) {
			t.Fatalf("level %q: expected %v disabled", tc.level, tc.want-1)
		}
	}
}
