package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-move/engine/game_object"
	"github.com/Carmen-Shannon/oxy-move/engine/input"
	"github.com/Carmen-Shannon/oxy-move/engine/movement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseOverridesOnlyPresentKeys(t *testing.T) {
	doc := `
window:
  title: demo
engine:
  tick_rate: 120
controller:
  move_speed: 4
  interval: 0
  min_vertical_rotation: 0.5
  max_vertical_rotation: 2.5
  vertical_rotation_enabled: false
log:
  level: debug
  format: console
`
	cfg, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 120.0, cfg.Engine.TickRate)
	assert.Equal(t, 4.0, cfg.Controller.MoveSpeed)
	assert.Equal(t, movement.DefaultRotationSpeed, cfg.Controller.RotationSpeed)
	assert.Equal(t, 0.0, cfg.Controller.Interval)
	require.NotNil(t, cfg.Controller.MinVerticalRotation)
	assert.Equal(t, 0.5, *cfg.Controller.MinVerticalRotation)
	require.NotNil(t, cfg.Controller.MaxVerticalRotation)
	assert.Equal(t, 2.5, *cfg.Controller.MaxVerticalRotation)
	assert.False(t, cfg.Controller.VerticalRotationEnabled)
	assert.True(t, cfg.Controller.MoveEnabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("controller:\n  run_speed: 3\n"))
	assert.ErrorContains(t, err, "invalid config")
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse(strings.NewReader("window: [1, 2"))
	assert.Error(t, err)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	minRot, maxRot := 2.0, 1.0
	cfg := Default()
	cfg.Window.Width = 0
	cfg.Engine.TickRate = -1
	cfg.Renderer.PresentMode = "mailbox"
	cfg.Controller.MoveSpeed = -1
	cfg.Controller.Interval = -0.1
	cfg.Controller.MinVerticalRotation = &minRot
	cfg.Controller.MaxVerticalRotation = &maxRot

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"window size", "tick_rate", "present_mode", "move_speed", "interval", "exceeds"} {
		assert.ErrorContains(t, err, want)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("controller:\n  rotation_speed: 3\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Controller.RotationSpeed)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to open config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("engine:\n  tick_rate: 0\n"), 0o600))
	_, err = Load(bad)
	assert.ErrorContains(t, err, bad)
}

func TestControllerOptions(t *testing.T) {
	maxRot := 2.0
	cc := Default().Controller
	cc.MoveSpeed = 5
	cc.Interval = 0
	cc.MaxVerticalRotation = &maxRot
	cc.RotationEnabled = false

	d := input.NewDispatcher()
	node := game_object.NewGameObject()
	mc := movement.NewMoveController(d, node, node, node, cc.Options()...)

	assert.Equal(t, 5.0, mc.MoveSpeed())
	assert.Equal(t, movement.DefaultRotationSpeed, mc.RotationSpeed())
	assert.Equal(t, 0.0, mc.Interval())
	assert.False(t, mc.RotationEnabled())
	assert.True(t, mc.MoveEnabled())

	_, ok := mc.MinVerticalRotation()
	assert.False(t, ok)
	got, ok := mc.MaxVerticalRotation()
	require.True(t, ok)
	assert.Equal(t, 2.0, got)
}
