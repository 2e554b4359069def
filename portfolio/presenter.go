package portfolio

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
)

// Element ids and classes the controller mutates outside the configured region panels.
const (
	ElementHeader        = "header"
	ElementLoading       = "loading"
	ElementProjectsAlert = "projectsAlert"
	ElementCountdown     = "countdown"

	ClassHeaderTransition = "headerTransition"
	ClassLoadingDone      = "loadingDone"
	ClassProjectsWarning  = "projectsWarningOpen"
	DisplayFlex           = "flex"
	DisplayNone           = "none"
)

// Presenter applies visual changes to the page around the scene: element classes, visibility and text.
type Presenter interface {
	// AddClass adds class to the element. Adding a present class is a no-op.
	AddClass(id, class string)

	// RemoveClass removes class from the element. Removing an absent class is a no-op.
	RemoveClass(id, class string)

	// Show displays the element as flex.
	Show(id string)

	// Hide stops displaying the element.
	Hide(id string)

	// SetText replaces the element's text.
	SetText(id, text string)
}

// Mutation is one recorded presenter call.
type Mutation struct {
	Op    string // add, remove, show, hide, text
	ID    string
	Value string
}

func (m Mutation) String() string {
	if m.Value == "" {
		return fmt.Sprintf("%s %s", m.Op, m.ID)
	}
	return fmt.Sprintf("%s %s %q", m.Op, m.ID, m.Value)
}

// Recorder is a Presenter that keeps the resulting element state and the list of calls.
type Recorder struct {
	mu        *sync.Mutex
	classes   map[string][]string
	display   map[string]string
	text      map[string]string
	mutations []Mutation
}

var _ Presenter = &Recorder{}

// NewRecorder creates an empty Recorder.
//
// Returns:
//   - *Recorder: the recorder
func NewRecorder() *Recorder {
	return &Recorder{
		mu:      &sync.Mutex{},
		classes: make(map[string][]string),
		display: make(map[string]string),
		text:    make(map[string]string),
	}
}

func (r *Recorder) record(m Mutation) {
	r.mutations = append(r.mutations, m)
}

func (r *Recorder) AddClass(id, class string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Mutation{Op: "add", ID: id, Value: class})
	if !slices.Contains(r.classes[id], class) {
		r.classes[id] = append(r.classes[id], class)
	}
}

func (r *Recorder) RemoveClass(id, class string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Mutation{Op: "remove", ID: id, Value: class})
	r.classes[id] = slices.DeleteFunc(r.classes[id], func(c string) bool { return c == class })
}

func (r *Recorder) Show(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Mutation{Op: "show", ID: id})
	r.display[id] = DisplayFlex
}

func (r *Recorder) Hide(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Mutation{Op: "hide", ID: id})
	r.display[id] = DisplayNone
}

func (r *Recorder) SetText(id, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Mutation{Op: "text", ID: id, Value: text})
	r.text[id] = text
}

// HasClass reports whether the element carries class.
func (r *Recorder) HasClass(id, class string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Contains(r.classes[id], class)
}

// Visible reports whether the element was last shown.
func (r *Recorder) Visible(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.display[id] == DisplayFlex
}

// Text returns the element's text.
func (r *Recorder) Text(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text[id]
}

// Mutations returns a copy of every call so far.
func (r *Recorder) Mutations() []Mutation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.mutations)
}

// desktopPresenter logs every mutation and mirrors the open panel and the countdown into the window title.
type desktopPresenter struct {
	*Recorder

	baseTitle string
	setTitle  func(title string)
	labels    map[string]string // panel id -> section label

	mu        *sync.Mutex
	active    string
	countdown string
}

// NewDesktopPresenter creates the Presenter used by the desktop build.
//
// Parameters:
//   - baseTitle: the window title when nothing is open
//   - setTitle: receives every title change; may post to the main thread
//   - regions: the regions whose panels are mirrored in the title
//
// Returns:
//   - Presenter: the presenter
func NewDesktopPresenter(baseTitle string, setTitle func(title string), regions []*Region) Presenter {
	labels := make(map[string]string, len(regions))
	for _, r := range regions {
		labels[r.Panel] = r.Section.String()
	}
	return &desktopPresenter{
		Recorder:  NewRecorder(),
		baseTitle: baseTitle,
		setTitle:  setTitle,
		labels:    labels,
		mu:        &sync.Mutex{},
	}
}

func (d *desktopPresenter) AddClass(id, class string) {
	d.Recorder.AddClass(id, class)
	log.Printf("presenter: add class %s to %s", class, id)
}

func (d *desktopPresenter) RemoveClass(id, class string) {
	d.Recorder.RemoveClass(id, class)
	log.Printf("presenter: remove class %s from %s", class, id)
}

func (d *desktopPresenter) Show(id string) {
	d.Recorder.Show(id)
	log.Printf("presenter: show %s", id)
	if label, ok := d.labels[id]; ok {
		d.mu.Lock()
		d.active = label
		d.mu.Unlock()
		d.refreshTitle()
	}
}

func (d *desktopPresenter) Hide(id string) {
	d.Recorder.Hide(id)
	log.Printf("presenter: hide %s", id)
	if label, ok := d.labels[id]; ok {
		d.mu.Lock()
		if d.active == label {
			d.active = ""
			d.countdown = ""
		}
		d.mu.Unlock()
		d.refreshTitle()
	}
}

func (d *desktopPresenter) SetText(id, text string) {
	d.Recorder.SetText(id, text)
	log.Printf("presenter: set %s text to %q", id, text)
	if id == ElementCountdown {
		d.mu.Lock()
		d.countdown = text
		d.mu.Unlock()
		d.refreshTitle()
	}
}

func (d *desktopPresenter) refreshTitle() {
	if d.setTitle != nil {
		d.setTitle(d.title())
	}
}

// title joins the base title, the open section and the countdown text.
func (d *desktopPresenter) title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	parts := []string{d.baseTitle}
	if d.active != "" {
		parts = append(parts, d.active)
	}
	if d.countdown != "" {
		parts = append(parts, d.countdown)
	}
	return strings.Join(parts, " | ")
}
