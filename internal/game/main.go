package game

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"github.com/Jabulani101/GHO57-RACING/internal/config"
	"github.com/Jabulani101/GHO57-RACING/internal/entitlement"
	"github.com/Jabulani101/GHO57-RACING/internal/hud"
	"github.com/Jabulani101/GHO57-RACING/internal/sim"
)

// RunDesktop opens the window and runs the scene until the window closes,
// Escape is pressed, or ctx is cancelled.
func RunDesktop(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := initWindow(cfg.WindowWidth, cfg.WindowHeight, cfg.VSync)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Info().Str("gl", gl.GoStr(gl.GetString(gl.VERSION))).Msg("window ready")

	store, premium := openEntitlements(ctx, cfg, log)
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				log.Warn().Err(err).Msg("close entitlement store")
			}
		}()
	}

	// A typed nil must not reach the scene as a non-nil AudioSink.
	var sink sim.AudioSink
	engine := startEngineSound(cfg, log)
	if engine != nil {
		sink = engine
		defer engine.Close()
	}

	bus := sim.NewKeyBus()
	defer bus.Close()
	BindKeys(window, bus)

	scene, err := sim.NewScene(cfg.Scene(premium), bus, sink)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	defer func() {
		if err := scene.Close(); err != nil {
			log.Warn().Err(err).Msg("close scene")
		}
	}()

	scene.Gate.OnChange(func(c sim.GateChange) {
		log.Info().
			Stringer("from", c.From).
			Stringer("to", c.To).
			Bool("premium", c.Premium).
			Str("reason", c.Reason).
			Msg("ad gate")
		if c.Reason != sim.ReasonUpgrade || store == nil {
			return
		}
		if err := store.GrantPremium(ctx, cfg.PlayerID, time.Now()); err != nil {
			log.Warn().Err(err).Str("player", cfg.PlayerID).Msg("premium not persisted")
		}
	})

	unsubUpgrade, err := bus.SubscribeKeys(func(e sim.KeyEvent) {
		if e.Key == sim.KeyUpgrade && e.Action == sim.KeyPress && scene.Gate.Showing() {
			scene.Gate.Upgrade()
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe upgrade key: %w", err)
	}
	defer unsubUpgrade()

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		return fmt.Errorf("font: %w", err)
	}

	log.Info().
		Bool("premium", premium).
		Bool("pause_under_ad", cfg.PauseUnderAd).
		Dur("ad_break_interval", cfg.AdBreakInterval).
		Bool("audio", engine != nil).
		Msg("scene ready")

	input := NewInput()
	halfExtents := toVec32(scene.Vehicle.Body().HalfExtents())
	var frame sim.Frame

	last := glfw.GetTime()
	for !window.ShouldClose() {
		if ctx.Err() != nil {
			break
		}
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > DTClamp {
			dt = DTClamp
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		if input.JustPressed(window, glfw.KeyM) && engine != nil {
			engine.SetMuted(!engine.Muted())
		}

		pointer, fx, fy := Cursor(window, fbW, fbH)
		overlay := hud.LayoutOverlay(fbW, fbH, rend.font.Metrics())
		hover := scene.Gate.Showing() && overlay.Button.Contains(fx, fy)
		if input.JustClicked(window, glfw.MouseButtonLeft) && hover {
			scene.Gate.Upgrade()
		}

		frame = scene.Tick(dt, pointer)

		rend.BeginFrame(CameraFromFrame(frame), fbW, fbH)
		rend.DrawGround()
		rend.DrawCar(frame, halfExtents)
		RenderHUD(rend, frame, overlay, hover, fbW, fbH)

		window.SwapBuffers()
	}

	log.Info().
		Float64("play_time", frame.PlayTime).
		Float64("speed_kmh", frame.Vehicle.SpeedKmh).
		Msg("shutting down")
	return nil
}

// openEntitlements restores the premium flag. Storage problems degrade to
// a non-premium session that is not persisted.
func openEntitlements(ctx context.Context, cfg config.Config, log zerolog.Logger) (*entitlement.Store, bool) {
	store, err := entitlement.Open(ctx, cfg.EntitlementDB)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.EntitlementDB).Msg("entitlement store unavailable, premium will not persist")
		return nil, false
	}
	premium, err := store.Premium(ctx, cfg.PlayerID)
	if err != nil {
		log.Warn().Err(err).Str("player", cfg.PlayerID).Msg("read entitlement")
		return store, false
	}
	if premium {
		at, err := store.GrantedAt(ctx, cfg.PlayerID)
		if err != nil {
			log.Warn().Err(err).Str("player", cfg.PlayerID).Msg("read premium grant time")
		} else {
			log.Info().Str("player", cfg.PlayerID).Time("granted_at", at).Msg("premium restored")
		}
	}
	return store, premium
}

// startEngineSound returns nil when audio is muted or unavailable.
func startEngineSound(cfg config.Config, log zerolog.Logger) *EngineSound {
	if cfg.Mute {
		log.Info().Msg("audio muted")
		return nil
	}
	sys, err := InitAudio()
	if err != nil {
		log.Warn().Err(err).Msg("audio init failed, continuing without sound")
		return nil
	}
	if err := sys.WaitReady(AudioReadyTimeout); err != nil {
		log.Warn().Err(err).Msg("audio init failed, continuing without sound")
		return nil
	}
	engine, err := sys.NewEngineSound(cfg.Volume, splitmix64(uint64(time.Now().UnixNano())))
	if err != nil {
		log.Warn().Err(err).Msg("engine sound unavailable")
		return nil
	}
	return engine
}
