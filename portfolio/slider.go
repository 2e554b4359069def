package portfolio

import (
	"math"

	"github.com/Carmen-Shannon/oxy-folio/audio"
)

// Slider is the master volume control. Holding it suspends mouse dragging of the scene.
type Slider struct {
	player audio.Player
	step   float64
	held   bool
}

// NewSlider creates a slider driving player's volume in increments of step.
//
// Parameters:
//   - player: the audio player
//   - step: the volume change per step
//
// Returns:
//   - *Slider: the slider
func NewSlider(player audio.Player, step float64) *Slider {
	return &Slider{player: player, step: step}
}

// Grab presses the slider.
func (s *Slider) Grab() {
	s.held = true
}

// Release lets go of the slider.
func (s *Slider) Release() {
	s.held = false
}

// Held reports whether the slider is pressed.
func (s *Slider) Held() bool {
	return s.held
}

// Step moves the volume by delta steps, snapped to the step grid and clamped to [0, 1].
//
// Parameters:
//   - delta: the number of steps, negative to lower
//
// Returns:
//   - float64: the new volume
func (s *Slider) Step(delta int) float64 {
	v := s.player.Volume() + float64(delta)*s.step
	if s.step > 0 {
		v = math.Round(v/s.step) * s.step
	}
	s.player.SetVolume(v)
	return s.player.Volume()
}

// SetStep changes the step size.
func (s *Slider) SetStep(step float64) {
	s.step = step
}
