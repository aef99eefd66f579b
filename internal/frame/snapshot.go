package frame

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"raft/internal/assets"
	"raft/internal/config"
	"raft/internal/render"
	"raft/internal/scene"
	"raft/internal/softgpu"
)

// SnapshotOptions describe one offscreen frame.
type SnapshotOptions struct {
	Width, Height int
	Time          float64 // simulated seconds before the frame is drawn
	Mode          scene.Mode
	Config        config.Config
}

// RenderSnapshot simulates the scene up to opts.Time and draws a single frame
// with the software backend.
func RenderSnapshot(ctx context.Context, opts SnapshotOptions, log *slog.Logger) (*image.NRGBA, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	dev, err := softgpu.NewDevice(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	meshes, err := render.UploadMeshes(dev)
	if err != nil {
		return nil, err
	}
	a := opts.Config.Assets
	loader := render.NewLoader(dev, log)
	textures, err := render.LoadTextures(loader, a.Box, a.Wood, a.Sail, a.Skybox)
	if err != nil {
		return nil, err
	}
	if err := loader.Wait(ctx); err != nil {
		return nil, fmt.Errorf("load textures: %w", err)
	}

	st := scene.NewState(scene.Options{Seed: opts.Config.Seed, CullFace: opts.Config.CullFace})
	clock := NewClock(opts.Config.TickRate)
	playing := opts.Mode == scene.ModePlaying
	if playing {
		st.Update(clock.Step, scene.Input{Start: true, Captured: true})
	}
	for st.Time+clock.Step/2 < opts.Time {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st.Update(clock.Step, scene.Input{Captured: playing})
	}

	seq := render.Sequencer{Meshes: meshes, Textures: textures}
	seq.Render(dev, st.Snapshot(), dev.Aspect())
	log.Debug("snapshot rendered", "mode", st.Mode, "time", st.Time, "ticks", st.Ticks)
	return dev.Image(), nil
}

// WriteSnapshot renders a frame and saves it to path in the format its
// extension names.
func WriteSnapshot(ctx context.Context, path string, opts SnapshotOptions, log *slog.Logger) error {
	img, err := RenderSnapshot(ctx, opts, log)
	if err != nil {
		return err
	}
	if err := assets.Save(img, path); err != nil {
		return err
	}
	if log != nil {
		log.Info("snapshot written", "path", path, "width", opts.Width, "height", opts.Height)
	}
	return nil
}
