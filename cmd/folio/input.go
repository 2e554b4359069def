package main

import (
	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/portfolio"
)

// clickSlop is how far the pointer may travel between press and release for the pair to count as a click.
const clickSlop = 4

// input turns window callbacks into portfolio events. Callbacks arrive on the main thread; events are
// posted to the tick goroutine.
type input struct {
	post           func(ev any) bool
	quit           func()
	toggleMute     func()
	toggleProfiler func()

	pressed  bool
	touching bool
	downX    int32
	downY    int32

	// volume keys currently down; the slider stays grabbed while any is held
	volumeKeys map[uint32]bool
}

func newInput(post func(ev any) bool, quit, toggleMute, toggleProfiler func()) *input {
	return &input{
		post:           post,
		quit:           quit,
		toggleMute:     toggleMute,
		toggleProfiler: toggleProfiler,
		volumeKeys:     make(map[uint32]bool),
	}
}

func (in *input) mouseDown(button int, x, y int32) {
	switch button {
	case common.MouseButtonLeft:
		in.pressed = true
		in.downX, in.downY = x, y
		in.post(portfolio.PointerDown{X: float32(x), Y: float32(y)})
	case common.MouseButtonRight:
		// right drags stand in for touch, which the interaction gate never blocks
		in.touching = true
		in.post(portfolio.TouchStart{X: float32(x)})
	}
}

func (in *input) mouseUp(button int, x, y int32) {
	switch button {
	case common.MouseButtonLeft:
		in.post(portfolio.PointerUp{X: float32(x), Y: float32(y)})
		if in.pressed && abs(x-in.downX) <= clickSlop && abs(y-in.downY) <= clickSlop {
			in.post(portfolio.Click{X: float32(x), Y: float32(y)})
		}
		in.pressed = false
	case common.MouseButtonRight:
		in.touching = false
		in.post(portfolio.TouchEnd{})
	}
}

func (in *input) mouseMove(x, y int32) {
	in.post(portfolio.PointerMove{X: float32(x), Y: float32(y)})
	if in.touching {
		in.post(portfolio.TouchMove{X: float32(x)})
	}
}

func (in *input) keyDown(code uint32) {
	switch code {
	case common.KeyEsc:
		in.post(portfolio.Close{Section: portfolio.SectionAny})
	case common.KeyQ:
		in.quit()
	case common.KeyM:
		in.toggleMute()
	case common.KeyF:
		in.toggleProfiler()
	case common.KeyMinus, common.KeyEqual:
		// key repeat delivers further downs for a held key
		if len(in.volumeKeys) == 0 {
			in.post(portfolio.SliderGrab{})
		}
		in.volumeKeys[code] = true
		delta := 1
		if code == common.KeyMinus {
			delta = -1
		}
		in.post(portfolio.VolumeStep{Delta: delta})
	}
}

func (in *input) keyUp(code uint32) {
	switch code {
	case common.KeyMinus, common.KeyEqual:
		if !in.volumeKeys[code] {
			return
		}
		delete(in.volumeKeys, code)
		if len(in.volumeKeys) == 0 {
			in.post(portfolio.SliderRelease{})
		}
	}
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
