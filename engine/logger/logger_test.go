package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestBuildConfigLevels(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"":      zapcore.InfoLevel,
		"loud":  zapcore.InfoLevel,
	}
	for in, want := range cases {
		cfg := buildConfig(Config{Level: in})
		assert.Equal(t, want, cfg.Level.Level(), "level %q", in)
	}
}

func TestBuildConfigFormat(t *testing.T) {
	assert.Equal(t, "console", buildConfig(Config{Format: "console"}).Encoding)
	assert.Equal(t, "json", buildConfig(Config{Format: "json"}).Encoding)
	assert.Equal(t, "json", buildConfig(Config{Format: "yaml"}).Encoding)
	assert.Nil(t, buildConfig(DefaultConfig()).Sampling)
}

func TestBuildConfigDevelopment(t *testing.T) {
	cfg := buildConfig(DevelopmentConfig())
	assert.True(t, cfg.Development)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level.Level())
	assert.Equal(t, "console", cfg.Encoding)

	assert.False(t, buildConfig(DefaultConfig()).Development)
}

func TestNew(t *testing.T) {
	l, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(DevelopmentConfig())
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
