package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/audio"
	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/Carmen-Shannon/oxy-folio/engine"
	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/light"
	"github.com/Carmen-Shannon/oxy-folio/engine/loader"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
	"github.com/Carmen-Shannon/oxy-folio/portfolio"
)

// smallest window that still fits a section panel beside the model
const minWidth, minHeight = 600, 400

func run(opts *options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	regions, err := portfolio.RegionsFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to build regions: %w", err)
	}

	// ── Engine + Window ─────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithProfiling(opts.profile),
		engine.WithTickRate(60),
		engine.WithWindow(window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithSize(cfg.Window.Width, cfg.Window.Height),
			window.WithMinSize(minWidth, minHeight),
		)),
	)
	win := eng.Window()
	defer func() {
		if err := win.Close(); err != nil {
			log.Printf("failed to close window: %v", err)
		}
	}()

	// ── Renderer ────────────────────────────────────────────────────────
	msaa, err := renderer.ParseMSAA(cfg.Window.MSAA)
	if err != nil {
		return err
	}
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(renderer.PresentModeFor(cfg.Window.VSync)),
		renderer.WithMSAA(msaa),
		renderer.WithClearColor(cfg.Window.ClearColor),
	)
	defer r.Release()

	// ── Camera + Scene ──────────────────────────────────────────────────
	cam := camera.NewCamera(
		camera.WithPerspective(cfg.Camera.Fov, cfg.Camera.Near, cfg.Camera.Far),
		camera.WithViewport(win.Width(), win.Height()),
		camera.WithPose(cfg.Camera.Position, cfg.Camera.Rotation),
	)

	lc := cfg.Light
	sc := scene.NewScene("portfolio", cam,
		scene.WithActive(true),
		scene.WithRenderer(r),
		scene.WithHemisphere(lc.Hemisphere),
		scene.WithLights(light.NewLight(light.LightTypeAmbient,
			light.WithColor(lc.Color),
			light.WithIntensity(lc.Intensity),
		)),
	)
	eng.AddScene(0, sc)

	// ── Audio ───────────────────────────────────────────────────────────
	player := audio.NewPlayer(
		audio.WithBaseDir(opts.assetsDir),
		audio.WithVolume(cfg.Audio.Volume),
		audio.WithMuted(opts.mute),
		audio.WithSilent(!cfg.Audio.Enabled),
	)
	defer player.Close()
	sounds := make([]string, 0, len(regions))
	for _, reg := range regions {
		sounds = append(sounds, reg.Sound)
	}
	if err := player.Preload(sounds...); err != nil {
		log.Printf("failed to preload sounds: %v", err)
	}

	// ── Portfolio ───────────────────────────────────────────────────────
	presenter := portfolio.NewDesktopPresenter(cfg.Window.Title, func(title string) {
		eng.RunOnMain(func() { win.SetTitle(title) })
	}, regions)

	ctrl := portfolio.NewController(cam, regions,
		portfolio.WithConfig(cfg),
		portfolio.WithPresenter(presenter),
		portfolio.WithPlayer(player),
		portfolio.WithScene(sc),
		portfolio.WithViewport(win.Width(), win.Height()),
		portfolio.WithLoadKeys(portfolio.BackdropKey),
		portfolio.WithHoverCallback(func(hovering bool) {
			cursor := window.CursorArrow
			if hovering {
				cursor = window.CursorHand
			}
			eng.RunOnMain(func() { win.SetCursor(cursor) })
		}),
	)
	defer ctrl.Shutdown()

	eng.SetEventHandler(func(ev any) {
		if e, ok := ev.(portfolio.Event); ok {
			ctrl.Handle(e)
		}
	})
	eng.SetTickCallback(func(dt float32) {
		ctrl.Handle(portfolio.Tick{DT: time.Duration(float64(dt) * float64(time.Second))})
	})
	eng.SetResizeCallback(func(width, height int) {
		eng.Post(portfolio.Resize{Width: width, Height: height})
	})

	// ── Input ───────────────────────────────────────────────────────────
	profiling := opts.profile
	in := newInput(eng.Post, eng.Quit,
		func() { player.Mute(!player.Muted()) },
		func() {
			profiling = !profiling
			if profiling {
				eng.EnableProfiler()
			} else {
				eng.DisableProfiler()
			}
		},
	)
	win.SetMouseDownCallback(in.mouseDown)
	win.SetMouseUpCallback(in.mouseUp)
	win.SetMouseMoveCallback(in.mouseMove)
	win.SetKeyDownCallback(in.keyDown)
	win.SetKeyUpCallback(in.keyUp)

	// ── Background work ─────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ldr := loader.NewLoader(loader.BackendTypeGLTF)
		for res := range ldr.StreamModels(ctx, loadRequests(cfg, opts.assetsDir)) {
			eng.Post(portfolio.Loaded{Key: res.Key, Model: res.Model, Err: res.Err})
		}
	}()

	if opts.configPath != "" {
		go func() {
			err := config.Watch(ctx, opts.configPath, func(c config.Config) {
				eng.Post(portfolio.Reconfigure{Config: c})
			})
			if err != nil {
				log.Printf("config hot reload disabled: %v", err)
			}
		}()
	}

	eng.Run()
	return nil
}

// loadRequests lists the backdrop and every region model. Models without animation skip clip extraction.
func loadRequests(cfg config.Config, assetsDir string) []loader.Request {
	reqs := []loader.Request{{
		Key:      portfolio.BackdropKey,
		Path:     filepath.Join(assetsDir, cfg.Backdrop.Path),
		MeshOnly: !cfg.Backdrop.Animate,
	}}
	for _, rc := range cfg.Regions {
		reqs = append(reqs, loader.Request{
			Key:      rc.Section,
			Path:     filepath.Join(assetsDir, rc.Model.Path),
			MeshOnly: !rc.Model.Animate,
		})
	}
	return reqs
}
