// Package config loads runtime settings from GHO57_* environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/Jabulani101/GHO57-RACING/internal/sim"
)

const Prefix = "GHO57_"

type Config struct {
	WindowWidth  int  `env:"WINDOW_WIDTH" envDefault:"1280"`
	WindowHeight int  `env:"WINDOW_HEIGHT" envDefault:"720"`
	VSync        bool `env:"VSYNC" envDefault:"true"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"` // console or json

	PlayerID      string `env:"PLAYER_ID" envDefault:"local"`
	EntitlementDB string `env:"ENTITLEMENT_DB" envDefault:"gho57.db"`

	AdDismissAfter  time.Duration `env:"AD_DISMISS_AFTER" envDefault:"5s"`
	AdBreakInterval time.Duration `env:"AD_BREAK_INTERVAL" envDefault:"0s"`
	PauseUnderAd    bool          `env:"PAUSE_UNDER_AD" envDefault:"false"`

	// KeyRepeatInterval: 0 honours platform key repeat, >0 throttles it,
	// <0 ignores repeats.
	KeyRepeatInterval time.Duration `env:"KEY_REPEAT_INTERVAL" envDefault:"0s"`
	// CameraHalfLife of 0 selects the tuning the follow camera shipped with.
	CameraHalfLife time.Duration `env:"CAMERA_HALF_LIFE" envDefault:"0s"`

	PhysicsHz   int `env:"PHYSICS_HZ" envDefault:"60"`
	MaxSubSteps int `env:"MAX_SUB_STEPS" envDefault:"10"`

	Volume float64 `env:"VOLUME" envDefault:"0.7"`
	Mute   bool    `env:"MUTE" envDefault:"false"`
}

// Load reads the process environment.
func Load() (Config, error) {
	return Parse(nil)
}

// Parse reads settings from environ, or from the process environment when
// environ is nil.
func Parse(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: Prefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight))
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log format must be console or json, got %q", c.LogFormat))
	}
	if c.AdDismissAfter < 0 {
		errs = append(errs, errors.New("ad dismiss delay must not be negative"))
	}
	if c.AdBreakInterval < 0 {
		errs = append(errs, errors.New("ad break interval must not be negative"))
	}
	if c.CameraHalfLife < 0 {
		errs = append(errs, errors.New("camera half-life must not be negative"))
	}
	if c.PhysicsHz < 1 {
		errs = append(errs, fmt.Errorf("physics rate must be at least 1 Hz, got %d", c.PhysicsHz))
	}
	if c.MaxSubSteps < 1 {
		errs = append(errs, fmt.Errorf("max sub-steps must be at least 1, got %d", c.MaxSubSteps))
	}
	if c.Volume < 0 || c.Volume > 1 {
		errs = append(errs, fmt.Errorf("volume must be within [0,1], got %g", c.Volume))
	}
	return errors.Join(errs...)
}

// PhysicsStep is the fixed simulation step in seconds.
func (c Config) PhysicsStep() float64 {
	return 1.0 / float64(c.PhysicsHz)
}

// Scene builds the scene tuning. premium is the restored entitlement.
func (c Config) Scene(premium bool) sim.SceneConfig {
	sc := sim.DefaultSceneConfig()
	sc.Step = c.PhysicsStep()
	sc.MaxSubSteps = c.MaxSubSteps
	if c.CameraHalfLife > 0 {
		sc.CameraHalfLife = c.CameraHalfLife.Seconds()
	}
	sc.RepeatInterval = c.KeyRepeatInterval
	sc.AdDismissAfter = c.AdDismissAfter
	sc.AdBreakInterval = c.AdBreakInterval
	sc.PauseUnderAd = c.PauseUnderAd
	sc.Premium = premium
	return sc
}
