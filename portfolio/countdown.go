package portfolio

import (
	"context"
	"fmt"

	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/Carmen-Shannon/oxy-folio/engine/schedule"
)

// Countdown runs the projects sequence: a one-per-tick countdown, the terminal text, then the panel reveal.
// All steps are scheduler timers, so the sequence advances with the tick loop and stops when its context
// is cancelled.
type Countdown struct {
	presenter Presenter
	scheduler schedule.Scheduler
	cfg       config.CountdownConfig

	panel       string
	revealClass string

	ctx     context.Context
	value   int
	started bool
	done    bool
}

// NewCountdown creates an idle countdown that reveals panel with revealClass when it finishes.
//
// Parameters:
//   - p: the presenter written to
//   - s: the scheduler driving the ticks
//   - cfg: the countdown timings and terminal text
//   - panel: the element shown at the end
//   - revealClass: the class added to panel after the come-in delay
//
// Returns:
//   - *Countdown: the countdown
func NewCountdown(p Presenter, s schedule.Scheduler, cfg config.CountdownConfig, panel, revealClass string) *Countdown {
	return &Countdown{
		presenter:   p,
		scheduler:   s,
		cfg:         cfg,
		panel:       panel,
		revealClass: revealClass,
	}
}

// Start writes "from..." and counts down once per tick. At zero it writes the terminal text instead,
// then hides the warning alert and shows the panel after the reveal delay, and adds the reveal class after
// the come-in delay.
//
// Parameters:
//   - ctx: cancels every pending step
//   - from: the first number shown
func (c *Countdown) Start(ctx context.Context, from int) {
	c.ctx = ctx
	c.value = from
	c.started = true
	c.done = false
	c.write()

	var step func()
	step = func() {
		c.value--
		if c.value > 0 {
			c.write()
			c.scheduler.After(ctx, c.cfg.Tick.D(), step)
			return
		}
		c.presenter.SetText(ElementCountdown, c.cfg.Terminal)
		c.scheduler.After(ctx, c.cfg.RevealDelay.D(), func() {
			c.presenter.RemoveClass(ElementProjectsAlert, ClassProjectsWarning)
			c.presenter.Show(c.panel)
			c.scheduler.After(ctx, c.cfg.ComeinDelay.D(), func() {
				c.presenter.AddClass(c.panel, c.revealClass)
				c.done = true
			})
		})
	}
	c.scheduler.After(ctx, c.cfg.Tick.D(), step)
}

func (c *Countdown) write() {
	c.presenter.SetText(ElementCountdown, fmt.Sprintf("%d...", c.value))
}

// Running reports whether a started sequence is still pending.
func (c *Countdown) Running() bool {
	return c.started && !c.done && c.ctx != nil && c.ctx.Err() == nil
}

// Done reports whether the last started sequence revealed the panel.
func (c *Countdown) Done() bool {
	return c.done
}

// Value returns the number last written, 0 once the terminal text is shown.
func (c *Countdown) Value() int {
	return max(c.value, 0)
}
