package renderer

import (
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/pipeline"
)

// RendererBuilderOption configures a renderer inside NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPipelines registers extra pipelines next to the built-in mesh pipelines. A pipeline whose key matches a
// built-in one replaces it.
//
// Parameters:
//   - pipelines: the pipelines to register
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPipelines(pipelines ...pipeline.Pipeline) RendererBuilderOption {
	return func(r *renderer) {
		r.custom = append(r.custom, pipelines...)
	}
}

// WithPresentMode sets the initial present mode. Defaults to PresentModeVSync.
//
// Parameters:
//   - mode: the PresentMode to use
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the sample count of the color and depth attachments. Defaults to MSAA4x; invalid counts are
// ignored.
//
// Parameters:
//   - count: the sample count
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		if count.Valid() {
			r.msaa = count
		}
	}
}

// WithForceSoftwareRenderer requests the fallback (CPU) adapter, e.g. lavapipe or SwiftShader.
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithClearColor sets the background color.
//
// Parameters:
//   - color: RGBA in [0, 1]
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithClearColor(color [4]float64) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = &color
	}
}
