package portfolio

import (
	"github.com/Carmen-Shannon/oxy-folio/audio"
	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/Carmen-Shannon/oxy-folio/engine/schedule"
)

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controller)

// WithConfig sets the timings, opacities and camera home pose. Default is config.Default().
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithConfig(cfg config.Config) ControllerBuilderOption {
	return func(c *controller) {
		c.cfg = cfg
	}
}

// WithPresenter sets the presenter panels are revealed through.
//
// Parameters:
//   - p: the presenter
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithPresenter(p Presenter) ControllerBuilderOption {
	return func(c *controller) {
		c.presenter = p
	}
}

// WithPlayer sets the audio player for section sounds.
//
// Parameters:
//   - p: the player
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithPlayer(p audio.Player) ControllerBuilderOption {
	return func(c *controller) {
		c.player = p
	}
}

// WithScene adds loaded models to s and advances its animations on every tick.
//
// Parameters:
//   - s: the scene
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithScene(s scene.Scene) ControllerBuilderOption {
	return func(c *controller) {
		c.scene = s
	}
}

// WithScheduler replaces the controller's scheduler.
//
// Parameters:
//   - s: the scheduler
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithScheduler(s schedule.Scheduler) ControllerBuilderOption {
	return func(c *controller) {
		c.scheduler = s
	}
}

// WithViewport sets the initial viewport size used to convert pointer positions.
//
// Parameters:
//   - width: the width in pixels
//   - height: the height in pixels
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithViewport(width, height int) ControllerBuilderOption {
	return func(c *controller) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}

// WithLoadKeys adds expected Loaded keys besides the region sections, such as BackdropKey.
//
// Parameters:
//   - keys: the extra keys
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithLoadKeys(keys ...string) ControllerBuilderOption {
	return func(c *controller) {
		c.extraKeys = append(c.extraKeys, keys...)
	}
}

// WithHoverCallback sets a function called from Handle when the pointer starts or stops hovering any
// loaded region, e.g. to switch the cursor.
//
// Parameters:
//   - fn: receives true when a region is under the pointer
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithHoverCallback(fn func(hovering bool)) ControllerBuilderOption {
	return func(c *controller) {
		c.onHover = fn
	}
}
