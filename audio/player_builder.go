package audio

import "io"

// PlayerBuilderOption is a functional option for configuring a Player.
type PlayerBuilderOption func(*player)

// WithBaseDir resolves relative sound names against dir.
//
// Parameters:
//   - dir: the assets directory
//
// Returns:
//   - PlayerBuilderOption: option function to apply
func WithBaseDir(dir string) PlayerBuilderOption {
	return func(p *player) {
		p.baseDir = dir
	}
}

// WithVolume sets the initial master volume in [0, 1]. Default is 1.
//
// Parameters:
//   - v: the volume
//
// Returns:
//   - PlayerBuilderOption: option function to apply
func WithVolume(v float64) PlayerBuilderOption {
	return func(p *player) {
		p.volume = max(0, min(1, v))
	}
}

// WithMuted starts the player muted.
//
// Parameters:
//   - muted: true to start muted
//
// Returns:
//   - PlayerBuilderOption: option function to apply
func WithMuted(muted bool) PlayerBuilderOption {
	return func(p *player) {
		p.muted = muted
	}
}

// WithSilent skips opening the audio device. Used when audio is disabled in the config.
//
// Parameters:
//   - silent: true to run without a device
//
// Returns:
//   - PlayerBuilderOption: option function to apply
func WithSilent(silent bool) PlayerBuilderOption {
	return func(p *player) {
		p.silent = silent
	}
}

// WithOpener replaces os.Open for reading sound files.
//
// Parameters:
//   - open: function opening a resolved sound path
//
// Returns:
//   - PlayerBuilderOption: option function to apply
func WithOpener(open func(path string) (io.ReadCloser, error)) PlayerBuilderOption {
	return func(p *player) {
		p.open = open
	}
}

// WithDecoder replaces the mp3 decoder.
//
// Parameters:
//   - decode: the decoder
//
// Returns:
//   - PlayerBuilderOption: option function to apply
func WithDecoder(decode Decoder) PlayerBuilderOption {
	return func(p *player) {
		p.decode = decode
	}
}
