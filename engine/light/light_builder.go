package light

// LightBuilderOption configures a light inside NewLight.
type LightBuilderOption func(*lightImpl)

// WithColor sets the linear RGB color. Components are clamped to [0, 1].
//
// Parameters:
//   - rgb: the color
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithColor(rgb [3]float32) LightBuilderOption {
	return func(l *lightImpl) {
		for i, c := range rgb {
			l.color[i] = min(max(c, 0), 1)
		}
	}
}

// WithHexColor sets the color from 0xRRGGBB, the form scene layouts usually carry.
func WithHexColor(hex uint32) LightBuilderOption {
	return WithColor(HexToRGB(hex))
}

// WithIntensity scales the color. Negative values become 0.
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = max(intensity, 0)
	}
}

// WithEnabled creates the light switched on or off. Lights start enabled.
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// HexToRGB unpacks 0xRRGGBB into components in [0, 1].
func HexToRGB(hex uint32) [3]float32 {
	return [3]float32{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}
