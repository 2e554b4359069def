package config

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, [3]float32{1, 1.5, 3}, cfg.Camera.Position)
	assert.InDelta(t, math.Pi/2, cfg.Camera.Rotation[1], 1e-6)
	assert.Equal(t, 1500*time.Millisecond, cfg.Tween.Duration.D())
	assert.Equal(t, 600*time.Millisecond, cfg.Drag.InertiaDelay.D())
	assert.Equal(t, float32(0.001), cfg.Drag.Scale)

	projects, ok := cfg.Region("projects")
	require.True(t, ok)
	assert.Equal(t, [3]float32{0.7, 1.5, 1.4}, projects.CameraPosition)

	tech, _ := cfg.Region("tech")
	assert.True(t, tech.Transparent)
	assert.Equal(t, float32(0.9), tech.Baseline)
	assert.True(t, tech.Model.Animate)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[hover]
opacity = 0.25

[tween]
duration = "750ms"

[drag]
mode = "spring"
`))
	require.NoError(t, err)
	assert.Equal(t, float32(0.25), cfg.Hover.Opacity)
	assert.Equal(t, 750*time.Millisecond, cfg.Tween.Duration.D())
	assert.Equal(t, "spring", cfg.Drag.Mode)
	assert.Len(t, cfg.Regions, 4, "regions fall back to the defaults")
	assert.Equal(t, 600*time.Millisecond, cfg.Drag.InertiaDelay.D())
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[hover]\nopacity = 0.5\nglow = true\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseRegionListReplacesDefaults(t *testing.T) {
	_, err := Parse([]byte(`
[[region]]
section = "about"
panel = "aboutMeSection"
baseline = 1.0
reveal_delay = "500ms"
model = { path = "hand.glb" }
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), `missing region section "tech"`)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Hover.Opacity = 1.5
	cfg.Tween.Duration = 0
	cfg.Regions = append(cfg.Regions, RegionConfig{Section: "blog"})
	cfg.Window.MSAA = 2

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "hover.opacity")
	assert.Contains(t, err.Error(), "tween.duration must be positive")
	assert.Contains(t, err.Error(), `unknown region section "blog"`)
	assert.Contains(t, err.Error(), "window msaa 2")
}

func TestMarshalParsesBack(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `duration = '1.5s'`)

	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.toml")
	require.NoError(t, os.WriteFile(path, []byte("[hover]\nopacity = 0.5\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c Config) { changes <- c })
	}()

	// keep rewriting until the watcher is registered; spaced wider than the debounce
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changes:
			assert.Equal(t, float32(0.2), cfg.Hover.Opacity)
			cancel()
			require.NoError(t, <-done)
			return
		case <-ticker.C:
			require.NoError(t, os.WriteFile(path, []byte("[hover]\nopacity = 0.2\n"), 0o644))
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}
