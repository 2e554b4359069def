package renderer

import "fmt"

// RendererBackendType selects the GPU API behind a Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU draws through WebGPU (wgpu-native).
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode selects how finished frames reach the display.
type PresentMode int

const (
	// PresentModeVSync presents on vertical blank, limiting the frame rate to the refresh rate.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents as soon as a frame is ready. Lowest latency, may tear.
	PresentModeUncapped
)

// PresentModeFor maps a vsync switch to a PresentMode.
func PresentModeFor(vsync bool) PresentMode {
	if vsync {
		return PresentModeVSync
	}
	return PresentModeUncapped
}

// MSAASampleCount is the number of samples per pixel for multisample anti-aliasing.
// WebGPU guarantees 1 and 4; 8 and 16 depend on the adapter.
type MSAASampleCount uint32

const (
	MSAAOff MSAASampleCount = 1
	MSAA4x  MSAASampleCount = 4 // default
	MSAA8x  MSAASampleCount = 8
	MSAA16x MSAASampleCount = 16
)

// Valid reports whether c is one of the supported sample counts.
func (c MSAASampleCount) Valid() bool {
	switch c {
	case MSAAOff, MSAA4x, MSAA8x, MSAA16x:
		return true
	}
	return false
}

// ParseMSAA converts a configured sample count. 0 selects the default MSAA4x.
//
// Parameters:
//   - samples: the sample count (0, 1, 4, 8 or 16)
//
// Returns:
//   - MSAASampleCount: the sample count
//   - error: an error if samples is not supported
func ParseMSAA(samples int) (MSAASampleCount, error) {
	if samples == 0 {
		return MSAA4x, nil
	}
	c := MSAASampleCount(samples)
	if samples < 0 || !c.Valid() {
		return 0, fmt.Errorf("unsupported msaa sample count %d", samples)
	}
	return c, nil
}

// RendererBackend is what the Renderer drives. It is satisfied by the backend of the selected API.
type RendererBackend interface {
	wgpuRendererBackend
}
