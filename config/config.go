// Package config holds the tunable constants of the portfolio scene and loads them from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"math"
	"os"
	"slices"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/engine/tween"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Sections are the four interactive regions, in display order.
var Sections = []string{"about", "tech", "projects", "contact"}

// Duration is a time.Duration that reads and writes TOML strings such as "1500ms".
type Duration time.Duration

// D returns the value as a time.Duration.
func (d Duration) D() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Config is the full application configuration.
type Config struct {
	Window    WindowConfig    `toml:"window"`
	Camera    CameraConfig    `toml:"camera"`
	Drag      DragConfig      `toml:"drag"`
	Tween     TweenConfig     `toml:"tween"`
	Hover     HoverConfig     `toml:"hover"`
	Animation AnimationConfig `toml:"animation"`
	Light     LightConfig     `toml:"light"`
	Loading   LoadingConfig   `toml:"loading"`
	Countdown CountdownConfig `toml:"countdown"`
	Audio     AudioConfig     `toml:"audio"`
	Backdrop  ModelConfig     `toml:"backdrop"`
	Regions   []RegionConfig  `toml:"region"`
}

type WindowConfig struct {
	Title      string     `toml:"title"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	VSync      bool       `toml:"vsync"`
	MSAA       int        `toml:"msaa"` // samples per pixel: 1, 4, 8 or 16
	ClearColor [4]float64 `toml:"clear_color"`
}

// CameraConfig describes the perspective projection and the default (home) pose.
type CameraConfig struct {
	Fov      float32    `toml:"fov"` // degrees
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
	Position [3]float32 `toml:"position"`
	Rotation [3]float32 `toml:"rotation"`
}

type DragConfig struct {
	Scale        float32  `toml:"scale"`
	InertiaDelay Duration `toml:"inertia_delay"`
	// Mode is "hold" or "spring".
	Mode            string  `toml:"mode"`
	SpringFrequency float64 `toml:"spring_frequency"`
	SpringDamping   float64 `toml:"spring_damping"`
}

// TweenConfig times the camera transitions. Easing is one of the tween package names, e.g. "quadratic-out".
type TweenConfig struct {
	Duration Duration `toml:"duration"`
	Easing   string   `toml:"easing"`
}

type HoverConfig struct {
	Opacity float32 `toml:"opacity"`
}

// AnimationConfig sets the fixed step added to every animation mixer per tick, in seconds.
type AnimationConfig struct {
	Step float32 `toml:"step"`
}

type LightConfig struct {
	Color      [3]float32 `toml:"color"`
	Intensity  float32    `toml:"intensity"`
	Hemisphere float32    `toml:"hemisphere"`
}

type LoadingConfig struct {
	HideDelay Duration `toml:"hide_delay"`
}

// CountdownConfig times the projects sequence.
type CountdownConfig struct {
	From     int      `toml:"from"`
	Tick     Duration `toml:"tick"`
	Terminal string   `toml:"terminal"`
	// AlertDelay is the wait before the warning alert opens, StartDelay the wait before the first number.
	AlertDelay  Duration `toml:"alert_delay"`
	StartDelay  Duration `toml:"start_delay"`
	RevealDelay Duration `toml:"reveal_delay"`
	ComeinDelay Duration `toml:"comein_delay"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
	Step    float64 `toml:"step"`
}

// ModelConfig places a model file in the scene. Rotation is Euler XYZ in radians.
type ModelConfig struct {
	Path     string     `toml:"path"`
	Position [3]float32 `toml:"position"`
	Rotation [3]float32 `toml:"rotation"`
	Scale    [3]float32 `toml:"scale"`
	// Animate loops every animation clip of the model.
	Animate bool `toml:"animate"`
}

// RegionConfig is one interactive section.
type RegionConfig struct {
	Section     string      `toml:"section"`
	Model       ModelConfig `toml:"model"`
	Baseline    float32     `toml:"baseline"`
	Transparent bool        `toml:"transparent"`
	Sound       string      `toml:"sound"`
	Panel       string      `toml:"panel"`
	RevealClass string      `toml:"reveal_class"`
	RevealDelay Duration    `toml:"reveal_delay"`
	// CameraPosition and CameraRotation (y, z) are the tween targets.
	CameraPosition [3]float32 `toml:"camera_position"`
	CameraRotation [2]float32 `toml:"camera_rotation"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:      "oxy-folio",
			Width:      1280,
			Height:     720,
			VSync:      true,
			MSAA:       4,
			ClearColor: [4]float64{0.05, 0.05, 0.08, 1},
		},
		Camera: CameraConfig{
			Fov:      75,
			Near:     0.1,
			Far:      1000,
			Position: [3]float32{1, 1.5, 3},
			Rotation: [3]float32{0, math.Pi / 2, 0},
		},
		Drag: DragConfig{
			Scale:           0.001,
			InertiaDelay:    Duration(600 * time.Millisecond),
			Mode:            "hold",
			SpringFrequency: 6,
			SpringDamping:   1,
		},
		Tween:     TweenConfig{Duration: Duration(1500 * time.Millisecond), Easing: "quadratic-out"},
		Hover:     HoverConfig{Opacity: 0.5},
		Animation: AnimationConfig{Step: 0.020},
		Light:     LightConfig{Color: [3]float32{1, 1, 1}, Intensity: 2, Hemisphere: 0.5},
		Loading:   LoadingConfig{HideDelay: Duration(700 * time.Millisecond)},
		Countdown: CountdownConfig{
			From:        5,
			Tick:        Duration(time.Second),
			Terminal:    "Opening Projects!",
			AlertDelay:  Duration(time.Second),
			StartDelay:  Duration(500 * time.Millisecond),
			RevealDelay: Duration(600 * time.Millisecond),
			ComeinDelay: Duration(100 * time.Millisecond),
		},
		Audio:    AudioConfig{Enabled: true, Volume: 1, Step: 0.05},
		Backdrop: ModelConfig{Path: "assets/garage/scene.gltf", Scale: [3]float32{1, 1, 1}},
		Regions: []RegionConfig{
			{
				Section:        "about",
				Model:          ModelConfig{Path: "assets/hand/scene.gltf", Position: [3]float32{-1.8, 1.5, -0.05}, Rotation: [3]float32{0, -1.5, 0.4}, Scale: [3]float32{1, 1, 1}},
				Baseline:       1,
				Sound:          "assets/sounds/AI Sounds/OpeningAbout.mp3",
				Panel:          "aboutMeSection",
				RevealClass:    "aboutZoom",
				RevealDelay:    Duration(500 * time.Millisecond),
				CameraPosition: [3]float32{-1.2, 1.7, 1},
				CameraRotation: [2]float32{0.5, 0},
			},
			{
				Section:        "tech",
				Model:          ModelConfig{Path: "assets/tech/test.gltf", Position: [3]float32{-3.5, 1, 3.7}, Rotation: [3]float32{0, 2, 0}, Scale: [3]float32{1, 1, 1}, Animate: true},
				Baseline:       0.9,
				Transparent:    true,
				Sound:          "assets/sounds/AI Sounds/openingTech.mp3",
				Panel:          "techSection",
				RevealClass:    "techopen",
				RevealDelay:    Duration(500 * time.Millisecond),
				CameraPosition: [3]float32{-2.5, 1.2, 3},
				CameraRotation: [2]float32{2, 0},
			},
			{
				Section:        "projects",
				Model:          ModelConfig{Path: "assets/sea/scene.gltf", Position: [3]float32{0.4, 1.4, 0.3}, Scale: [3]float32{1, 1, 1}},
				Baseline:       1,
				Sound:          "assets/sounds/AI Sounds/openingProjects.mp3",
				Panel:          "projects",
				RevealClass:    "projectsComein",
				RevealDelay:    Duration(100 * time.Millisecond),
				CameraPosition: [3]float32{0.7, 1.5, 1.4},
				CameraRotation: [2]float32{0.2, 0},
			},
			{
				Section:        "contact",
				Model:          ModelConfig{Path: "assets/alien/scene.gltf", Position: [3]float32{0.2, 0.6, 5.0}, Rotation: [3]float32{0, 1.5, 0}, Scale: [3]float32{1, 1, 1}},
				Baseline:       1,
				Transparent:    true,
				Sound:          "assets/sounds/AI Sounds/openingContacts.mp3",
				Panel:          "contactMain",
				RevealClass:    "contactComeIn",
				RevealDelay:    Duration(500 * time.Millisecond),
				CameraPosition: [3]float32{0.8, 1.2, 4.5},
				CameraRotation: [2]float32{3, 0},
			},
		},
	}
}

// Load reads a TOML file over the defaults and validates the result. Unknown keys are rejected.
// A file that lists regions replaces the default region list entirely.
//
// Parameters:
//   - path: the config file
//
// Returns:
//   - Config: the effective configuration
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the effective configuration
//   - error: a decode or validation error
func Parse(data []byte) (Config, error) {
	cfg := Default()
	defaultRegions := cfg.Regions
	cfg.Regions = nil

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Regions == nil {
		cfg.Regions = defaultRegions
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as TOML.
//
// Returns:
//   - []byte: the TOML document
//   - error: an encoding error
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Region returns the region for section.
//
// Parameters:
//   - section: the section name
//
// Returns:
//   - RegionConfig: the region
//   - bool: false if no region has that section
func (c Config) Region(section string) (RegionConfig, bool) {
	for _, r := range c.Regions {
		if r.Section == section {
			return r, true
		}
	}
	return RegionConfig{}, false
}

// Validate checks ranges and the region list. Every error wraps ErrInvalid.
//
// Returns:
//   - error: the joined problems, or nil
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	switch c.Window.MSAA {
	case 1, 4, 8, 16:
	default:
		bad("window msaa %d must be 1, 4, 8 or 16", c.Window.MSAA)
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		bad("camera fov %v must be in (0, 180)", c.Camera.Fov)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		bad("camera near %v and far %v must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far)
	}
	if _, ok := tween.EasingByName(c.Tween.Easing); !ok {
		bad("tween easing %q is unknown", c.Tween.Easing)
	}
	if c.Drag.Mode != "hold" && c.Drag.Mode != "spring" {
		bad("drag mode %q must be hold or spring", c.Drag.Mode)
	}

	positive := map[string]Duration{
		"drag.inertia_delay":     c.Drag.InertiaDelay,
		"tween.duration":         c.Tween.Duration,
		"loading.hide_delay":     c.Loading.HideDelay,
		"countdown.tick":         c.Countdown.Tick,
		"countdown.alert_delay":  c.Countdown.AlertDelay,
		"countdown.start_delay":  c.Countdown.StartDelay,
		"countdown.reveal_delay": c.Countdown.RevealDelay,
		"countdown.comein_delay": c.Countdown.ComeinDelay,
	}
	for _, name := range slices.Sorted(maps.Keys(positive)) {
		if positive[name] <= 0 {
			bad("%s must be positive", name)
		}
	}

	if c.Countdown.From < 1 {
		bad("countdown.from %d must be at least 1", c.Countdown.From)
	}
	if c.Animation.Step < 0 {
		bad("animation.step must not be negative")
	}
	if !unit(c.Hover.Opacity) {
		bad("hover.opacity %v must be in [0, 1]", c.Hover.Opacity)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		bad("audio.volume %v must be in [0, 1]", c.Audio.Volume)
	}
	if c.Audio.Step <= 0 || c.Audio.Step > 1 {
		bad("audio.step %v must be in (0, 1]", c.Audio.Step)
	}

	seen := make(map[string]bool)
	for _, r := range c.Regions {
		if !slices.Contains(Sections, r.Section) {
			bad("unknown region section %q", r.Section)
			continue
		}
		if seen[r.Section] {
			bad("duplicate region section %q", r.Section)
		}
		seen[r.Section] = true
		if r.Model.Path == "" {
			bad("region %s has no model path", r.Section)
		}
		if r.Panel == "" {
			bad("region %s has no panel", r.Section)
		}
		if !unit(r.Baseline) {
			bad("region %s baseline %v must be in [0, 1]", r.Section, r.Baseline)
		}
		if r.RevealDelay <= 0 {
			bad("region %s reveal_delay must be positive", r.Section)
		}
	}
	for _, s := range Sections {
		if !seen[s] {
			bad("missing region section %q", s)
		}
	}

	return errors.Join(errs...)
}

func unit(v float32) bool {
	return v >= 0 && v <= 1
}
