package portfolio

import (
	"time"

	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
)

// Event is an input to Controller.Handle.
type Event interface {
	event()
}

// PointerMove is a mouse move in window pixels. It updates the hover highlight and any mouse drag.
type PointerMove struct{ X, Y float32 }

// PointerDown starts a mouse drag.
type PointerDown struct{ X, Y float32 }

// PointerUp ends a mouse drag.
type PointerUp struct{ X, Y float32 }

// Click picks the region under the pointer and opens it.
type Click struct{ X, Y float32 }

// TouchStart starts a touch drag.
type TouchStart struct{ X float32 }

// TouchMove updates a touch drag.
type TouchMove struct{ X float32 }

// TouchEnd ends a touch drag.
type TouchEnd struct{}

// Close is a panel's close control. SectionAny closes whatever is open.
type Close struct{ Section Section }

// SliderGrab presses the volume slider.
type SliderGrab struct{}

// SliderRelease releases the volume slider.
type SliderRelease struct{}

// VolumeStep moves the volume slider by Delta steps.
type VolumeStep struct{ Delta int }

// Tick advances timers, tweens, drag inertia and animations by DT.
type Tick struct{ DT time.Duration }

// Resize reports the new viewport size in pixels.
type Resize struct{ Width, Height int }

// Loaded delivers one model load result. Key is a section name or the backdrop key.
type Loaded struct {
	Key   string
	Model model.Model
	Err   error
}

// Reconfigure applies a reloaded configuration.
type Reconfigure struct{ Config config.Config }

func (PointerMove) event()   {}
func (PointerDown) event()   {}
func (PointerUp) event()     {}
func (Click) event()         {}
func (TouchStart) event()    {}
func (TouchMove) event()     {}
func (TouchEnd) event()      {}
func (Close) event()         {}
func (SliderGrab) event()    {}
func (SliderRelease) event() {}
func (VolumeStep) event()    {}
func (Tick) event()          {}
func (Resize) event()        {}
func (Loaded) event()        {}
func (Reconfigure) event()   {}

// Motion samples are superseded by the next one, so a full queue may drop them.
func (PointerMove) Droppable() {}
func (TouchMove) Droppable()   {}
