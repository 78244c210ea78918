package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jabulani101/GHO57-RACING/internal/sim"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.WindowWidth)
	assert.Equal(t, 720, cfg.WindowHeight)
	assert.True(t, cfg.VSync)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "local", cfg.PlayerID)
	assert.Equal(t, "gho57.db", cfg.EntitlementDB)
	assert.Equal(t, 5*time.Second, cfg.AdDismissAfter)
	assert.Equal(t, time.Duration(0), cfg.AdBreakInterval)
	assert.False(t, cfg.PauseUnderAd)
	assert.Equal(t, time.Duration(0), cfg.KeyRepeatInterval)
	assert.Equal(t, 60, cfg.PhysicsHz)
	assert.Equal(t, 10, cfg.MaxSubSteps)
	assert.InDelta(t, 0.7, cfg.Volume, 1e-12)
	assert.False(t, cfg.Mute)
	assert.InDelta(t, 1.0/60, cfg.PhysicsStep(), 1e-15)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"GHO57_WINDOW_WIDTH":        "800",
		"GHO57_WINDOW_HEIGHT":       "600",
		"GHO57_PAUSE_UNDER_AD":      "true",
		"GHO57_AD_BREAK_INTERVAL":   "90s",
		"GHO57_KEY_REPEAT_INTERVAL": "-1ns",
		"GHO57_CAMERA_HALF_LIFE":    "300ms",
		"GHO57_PHYSICS_HZ":          "120",
		"GHO57_MUTE":                "true",
		"GHO57_LOG_FORMAT":          "json",
		"WINDOW_WIDTH":              "1",
	})
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.WindowWidth)
	assert.Equal(t, 600, cfg.WindowHeight)
	assert.True(t, cfg.PauseUnderAd)
	assert.Equal(t, 90*time.Second, cfg.AdBreakInterval)
	assert.Equal(t, -time.Nanosecond, cfg.KeyRepeatInterval)
	assert.Equal(t, 300*time.Millisecond, cfg.CameraHalfLife)
	assert.Equal(t, 120, cfg.PhysicsHz)
	assert.True(t, cfg.Mute)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{name: "bad int", env: map[string]string{"GHO57_WINDOW_WIDTH": "wide"}, msg: "parse env"},
		{name: "zero width", env: map[string]string{"GHO57_WINDOW_WIDTH": "0"}, msg: "window size"},
		{name: "volume too loud", env: map[string]string{"GHO57_VOLUME": "1.5"}, msg: "volume"},
		{name: "negative dismiss", env: map[string]string{"GHO57_AD_DISMISS_AFTER": "-1s"}, msg: "dismiss"},
		{name: "zero physics rate", env: map[string]string{"GHO57_PHYSICS_HZ": "0"}, msg: "physics rate"},
		{name: "unknown log format", env: map[string]string{"GHO57_LOG_FORMAT": "xml"}, msg: "log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.env)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	t.Setenv("GHO57_PLAYER_ID", "racer-7")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "racer-7", cfg.PlayerID)
}

func TestConfig_Scene(t *testing.T) {
	cfg, err := Parse(map[string]string{})
	require.NoError(t, err)

	sc := cfg.Scene(false)
	def := sim.DefaultSceneConfig()
	assert.InDelta(t, def.Step, sc.Step, 1e-15)
	assert.Equal(t, def.MaxSubSteps, sc.MaxSubSteps)
	assert.Equal(t, def.CameraHalfLife, sc.CameraHalfLife)
	assert.Equal(t, def.AdDismissAfter, sc.AdDismissAfter)
	assert.False(t, sc.Premium)
	assert.False(t, sc.PauseUnderAd)

	cfg.CameraHalfLife = 500 * time.Millisecond
	cfg.PauseUnderAd = true
	cfg.AdBreakInterval = time.Minute
	sc = cfg.Scene(true)
	assert.Equal(t, 0.5, sc.CameraHalfLife)
	assert.True(t, sc.PauseUnderAd)
	assert.Equal(t, time.Minute, sc.AdBreakInterval)
	assert.True(t, sc.Premium)
}
