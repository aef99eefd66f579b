// Package game is the desktop client: a GLFW window with an OpenGL 4.1 core
// context, audio, and the frame loop that drives the scene.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"raft/internal/config"
	"raft/internal/frame"
	"raft/internal/render"
	"raft/internal/scene"
)

// Options configure a desktop run.
type Options struct {
	Config     config.Config
	ConfigPath string           // watched for live changes when set
	Overrides  config.Overrides // reapplied to every reloaded config
	Level      *slog.LevelVar   // updated on config reload when set
	Log        *slog.Logger
}

// RunDesktop opens the window and runs until it is closed or ctx is done.
func RunDesktop(ctx context.Context, opts Options) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	cfg := opts.Config
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	window, err := initWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Info("opengl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	rend.InitState(cfg.CullFace)

	meshes, err := render.UploadMeshes(rend)
	if err != nil {
		return err
	}
	loader := render.NewLoader(rend, log)
	a := cfg.Assets
	textures, err := render.LoadTextures(loader, a.Box, a.Wood, a.Sail, a.Skybox)
	if err != nil {
		return err
	}
	defer rend.DeleteTextures(textures)

	var audio *Audio
	if cfg.Audio.Enabled {
		if audio, err = NewAudio(cfg.Audio, log); err != nil {
			log.Warn("audio init failed, continuing without sound", "err", err)
			audio = nil
		}
	}
	defer audio.Close()

	policy, err := cfg.CaptureLossPolicy()
	if err != nil {
		return err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	st := scene.NewState(scene.Options{Seed: seed, CaptureLoss: policy, CullFace: cfg.CullFace})
	driver := frame.NewDriver(st, frame.NewClock(cfg.TickRate))
	seq := render.Sequencer{Meshes: meshes, Textures: textures}
	input := NewInput(cfg.Input.MouseSensitivity)
	log.Info("scene ready", "seed", seed, "tick_rate", cfg.TickRate)

	var reloads <-chan config.Config
	if opts.ConfigPath != "" {
		if reloads, err = config.Watch(ctx, opts.ConfigPath, opts.Overrides, log); err != nil {
			log.Warn("config hot reload disabled", "err", err)
		}
	}

	bus := NewEventBus()
	bus.Subscribe(EventModeChanged, func(e Event) {
		tr := e.Transition
		log.Info("mode changed", "from", tr.From, "to", tr.To, "forced", tr.Forced)
		audio.Follow(tr)
		setTitle(window, cfg.Window.Title, tr.To)
	})
	bus.Subscribe(EventConfigReloaded, func(e Event) {
		applyLive(e.Config, st, input, audio, opts.Level)
	})

	setTitle(window, cfg.Window.Title, st.Mode)
	last := glfw.GetTime()
	for !window.ShouldClose() && ctx.Err() == nil {
		now := glfw.GetTime()
		dt := now - last
		last = now

		glfw.PollEvents()
		loader.Poll()

		select {
		case c, ok := <-reloads:
			if !ok {
				reloads = nil
				break
			}
			bus.Emit(Event{Type: EventConfigReloaded, Config: c})
		default:
		}

		if input.JustPressed(window, glfw.KeyC) {
			st.CullFace = !st.CullFace
		}
		in := input.Sample(window, st.Mode)
		if in.Start {
			audio.Click()
		}
		for _, tr := range driver.Frame(dt, in) {
			bus.Emit(Event{Type: EventModeChanged, Transition: tr})
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW > 0 && fbH > 0 {
			rend.Viewport(fbW, fbH)
			seq.Render(rend, st.Snapshot(), float32(fbW)/float32(fbH))
		}
		window.SwapBuffers()
	}
	return nil
}

// applyLive takes the settings that can change without a restart.
func applyLive(c config.Config, st *scene.State, input *Input, audio *Audio, level *slog.LevelVar) {
	st.CullFace = c.CullFace
	input.Sensitivity = c.Input.MouseSensitivity
	audio.SetVolumes(c.Audio.OceanVolume, c.Audio.ClickVolume)
	if level != nil {
		if l, err := config.ParseLevel(c.LogLevel); err == nil {
			level.Set(l)
		}
	}
}

func setTitle(window *glfw.Window, title string, mode scene.Mode) {
	if mode == scene.ModeMenu {
		title += " (click or press Space to start)"
	}
	window.SetTitle(title)
}
