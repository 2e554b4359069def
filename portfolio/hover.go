package portfolio

import (
	"github.com/Carmen-Shannon/oxy-folio/common"
)

// Highlighter dims the region under the pointer.
// Every update rewrites each loaded region's live materials from their defaults with either the region
// baseline or, for a region the ray hits, the hover opacity. Each material is written once per update so
// the render goroutine never sees the default in between.
type Highlighter struct {
	regions []*Region
	opacity float32
}

// NewHighlighter creates a highlighter over regions that sets hit regions to opacity.
//
// Parameters:
//   - regions: the regions to test
//   - opacity: the hover opacity in [0, 1]
//
// Returns:
//   - *Highlighter: the highlighter
func NewHighlighter(regions []*Region, opacity float32) *Highlighter {
	return &Highlighter{regions: regions, opacity: opacity}
}

// SetOpacity changes the hover opacity for subsequent updates.
func (h *Highlighter) SetOpacity(opacity float32) {
	h.opacity = opacity
}

// Opacity returns the hover opacity.
func (h *Highlighter) Opacity() float32 {
	return h.opacity
}

// Update tests ray against every loaded region independently. Unloaded regions are skipped.
//
// Parameters:
//   - ray: the world-space pointer ray
//
// Returns:
//   - []Section: the sections the ray hits, in region order
func (h *Highlighter) Update(ray common.Ray) []Section {
	var hits []Section
	for _, r := range h.regions {
		if !r.Loaded() {
			continue
		}
		mdl := r.Object.Model()
		if mdl == nil {
			continue
		}
		opacity, transparent := r.BaselineOpacity, r.Transparent
		if _, ok := r.Object.Pick(ray); ok {
			opacity, transparent = h.opacity, true
			hits = append(hits, r.Section)
		}
		mdl.OverrideMaterials(opacity, transparent)
	}
	return hits
}

// Baseline applies r's resting opacity and transparency to its live materials.
func (h *Highlighter) Baseline(r *Region) {
	if r.Object == nil || r.Object.Model() == nil {
		return
	}
	r.Object.Model().OverrideMaterials(r.BaselineOpacity, r.Transparent)
}
