// Package portfolio drives the interactive sections of the scene: hover highlighting, click-to-open
// transitions, the projects countdown and the panels they reveal.
package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/Carmen-Shannon/oxy-folio/engine/game_object"
)

// Section identifies an interactive region.
type Section int

const (
	SectionAbout Section = iota
	SectionTech
	SectionProjects
	SectionContact

	// SectionAny targets whichever section is open. Only meaningful in a Close event.
	SectionAny Section = -1
)

func (s Section) String() string {
	switch s {
	case SectionAbout:
		return "about"
	case SectionTech:
		return "tech"
	case SectionProjects:
		return "projects"
	case SectionContact:
		return "contact"
	case SectionAny:
		return "any"
	default:
		return fmt.Sprintf("Section(%d)", int(s))
	}
}

// ParseSection converts a configuration name into a Section.
//
// Parameters:
//   - name: about, tech, projects or contact
//
// Returns:
//   - Section: the parsed section
//   - error: an error if the name is unknown
func ParseSection(name string) (Section, error) {
	for _, s := range []Section{SectionAbout, SectionTech, SectionProjects, SectionContact} {
		if s.String() == name {
			return s, nil
		}
	}
	return SectionAny, fmt.Errorf("unknown section %q", name)
}

// State is the lifecycle of a region's panel.
type State int

const (
	StateClosed State = iota
	StateOpening
	StateOpen
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Pose is a camera tween target. Rotation holds the y and z Euler angles; x is never tweened.
type Pose struct {
	Position [3]float32
	Rotation [2]float32
}

// Region is one interactive model and the panel it opens.
// Its state only changes inside Controller.Handle.
type Region struct {
	Section Section

	// Object is nil until the model has loaded.
	Object game_object.GameObject
	Model  config.ModelConfig

	BaselineOpacity float32
	Transparent     bool

	Panel       string
	RevealClass string
	RevealDelay time.Duration
	Sound       string

	CameraTarget Pose

	state  State
	cancel context.CancelFunc
}

// State returns the region's lifecycle state.
func (r *Region) State() State {
	return r.state
}

// Loaded reports whether the region's model is in the scene.
func (r *Region) Loaded() bool {
	return r.Object != nil
}

// settled reports whether the region lets the scene accept new clicks.
func (r *Region) settled() bool {
	return r.state == StateClosed || r.state == StateClosing
}

// stop cancels the region's active transition, if any.
func (r *Region) stop() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// RegionsFromConfig builds the region list in configuration order.
//
// Parameters:
//   - cfg: a validated configuration
//
// Returns:
//   - []*Region: one closed, unloaded region per configured section
//   - error: an error if a section name is unknown
func RegionsFromConfig(cfg config.Config) ([]*Region, error) {
	regions := make([]*Region, 0, len(cfg.Regions))
	for _, rc := range cfg.Regions {
		section, err := ParseSection(rc.Section)
		if err != nil {
			return nil, err
		}
		regions = append(regions, &Region{
			Section:         section,
			Model:           rc.Model,
			BaselineOpacity: rc.Baseline,
			Transparent:     rc.Transparent,
			Panel:           rc.Panel,
			RevealClass:     rc.RevealClass,
			RevealDelay:     rc.RevealDelay.D(),
			Sound:           rc.Sound,
			CameraTarget:    Pose{Position: rc.CameraPosition, Rotation: rc.CameraRotation},
		})
	}
	return regions, nil
}
