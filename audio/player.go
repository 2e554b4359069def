package audio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	// minVolume is the quietest audible slider position in the base-2 gain scale, about -60 dB.
	minVolume = -10.0
)

// ErrUnknownSound is returned when a sound name cannot be resolved to a readable file.
var ErrUnknownSound = errors.New("unknown sound")

// Decoder decodes an encoded sound stream. mp3.Decode is the default.
type Decoder func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

// Player plays one-shot sound effects through a shared mixer with a master volume.
// When no audio device is available the player runs silent: every call succeeds and nothing is heard.
type Player interface {
	// Play decodes the named sound on first use and starts it. Overlapping plays mix.
	//
	// Parameters:
	//   - name: the sound path, relative to the player's base directory
	//
	// Returns:
	//   - error: ErrUnknownSound (wrapped) if the file does not exist, or a decode error
	Play(name string) error

	// Preload decodes the named sounds into memory so the first Play does not stall.
	//
	// Parameters:
	//   - names: the sound paths
	//
	// Returns:
	//   - error: every failure joined, nil if all loaded
	Preload(names ...string) error

	// SetVolume sets the master volume, clamped to [0, 1]. 0 silences output.
	//
	// Parameters:
	//   - v: the slider value
	SetVolume(v float64)

	// Volume returns the master volume in [0, 1].
	Volume() float64

	// Mute silences output without changing the volume.
	//
	// Parameters:
	//   - muted: true to silence
	Mute(muted bool)

	// Muted reports whether output is muted.
	Muted() bool

	// Silent reports whether the player runs without an audio device.
	Silent() bool

	// Close stops every sound and releases the audio device.
	Close()
}

type player struct {
	mu *sync.Mutex

	baseDir string
	open    func(path string) (io.ReadCloser, error)
	decode  Decoder

	buffers map[string]*beep.Buffer

	mixer  *beep.Mixer
	master *effects.Volume

	volume float64
	muted  bool

	// silent players skip playback; speakerLive players share the mixer with the speaker goroutine
	silent      bool
	speakerLive bool
	initErr     error
}

var _ Player = &player{}

// NewPlayer creates a Player and opens the default audio device at 48 kHz with a 100ms buffer.
// A device failure is logged once and the player falls back to silent mode.
//
// Parameters:
//   - options: functional options to configure the player
//
// Returns:
//   - Player: the newly created player
func NewPlayer(options ...PlayerBuilderOption) Player {
	p := &player{
		mu:          &sync.Mutex{},
		open:        func(path string) (io.ReadCloser, error) { return os.Open(path) },
		decode:      mp3.Decode,
		buffers:     make(map[string]*beep.Buffer),
		mixer:       &beep.Mixer{},
		volume:      1,
		speakerLive: true,
	}
	p.master = &effects.Volume{Streamer: p.mixer, Base: 2}

	for _, opt := range options {
		opt(p)
	}
	p.applyGain()

	if p.silent || !p.speakerLive {
		return p
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		log.Printf("audio device unavailable, running silent: %v", err)
		p.silent = true
		p.initErr = err
		return p
	}
	speaker.Play(p.master)
	return p
}

// lock guards the mixer and master volume. The speaker goroutine reads them, so it is locked too while live.
func (p *player) lock() {
	p.mu.Lock()
	if p.speakerLive && !p.silent {
		speaker.Lock()
	}
}

func (p *player) unlock() {
	if p.speakerLive && !p.silent {
		speaker.Unlock()
	}
	p.mu.Unlock()
}

func (p *player) Play(name string) error {
	if p.Silent() {
		return nil
	}

	buf, err := p.buffer(name)
	if err != nil {
		return err
	}

	p.lock()
	defer p.unlock()
	p.mixer.Add(buf.Streamer(0, buf.Len()))
	return nil
}

func (p *player) Preload(names ...string) error {
	if p.Silent() {
		return nil
	}
	var errs []error
	for _, name := range names {
		if _, err := p.buffer(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// buffer returns the decoded samples for name, decoding on first use.
func (p *player) buffer(name string) (*beep.Buffer, error) {
	p.mu.Lock()
	buf, ok := p.buffers[name]
	p.mu.Unlock()
	if ok {
		return buf, nil
	}

	path := name
	if p.baseDir != "" && !filepath.IsAbs(name) {
		path = filepath.Join(p.baseDir, name)
	}
	rc, err := p.open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSound, name)
		}
		return nil, fmt.Errorf("failed to open sound %s: %w", name, err)
	}

	streamer, format, err := p.decode(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("failed to decode sound %s: %w", name, err)
	}
	defer streamer.Close()

	buf = beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	if format.SampleRate != sampleRate {
		buf.Append(beep.Resample(4, format.SampleRate, sampleRate, streamer))
	} else {
		buf.Append(streamer)
	}
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("failed to decode sound %s: %w", name, err)
	}

	p.mu.Lock()
	p.buffers[name] = buf
	p.mu.Unlock()
	return buf, nil
}

func (p *player) SetVolume(v float64) {
	p.lock()
	defer p.unlock()
	p.volume = math.Max(0, math.Min(1, v))
	p.applyGain()
}

func (p *player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func (p *player) Mute(muted bool) {
	p.lock()
	defer p.unlock()
	p.muted = muted
	p.applyGain()
}

func (p *player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

func (p *player) Silent() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.silent
}

// applyGain pushes volume and mute into the master effect. Caller must hold the lock.
func (p *player) applyGain() {
	gain, silent := GainFor(p.volume)
	p.master.Volume = gain
	p.master.Silent = silent || p.muted
}

func (p *player) Close() {
	p.lock()
	p.mixer.Clear()
	live := p.speakerLive && !p.silent
	p.unlock()

	p.mu.Lock()
	p.silent = true
	p.mu.Unlock()
	if live {
		speaker.Close()
	}
}

// GainFor maps a [0, 1] slider value onto the base-2 exponent used by effects.Volume.
// 1 is unity gain, each halving of v halves the amplitude, and 0 is silent.
//
// Parameters:
//   - v: the slider value
//
// Returns:
//   - float64: the effects.Volume exponent
//   - bool: true if the output should be silent
func GainFor(v float64) (float64, bool) {
	if v <= 0 {
		return minVolume, true
	}
	if v >= 1 {
		return 0, false
	}
	return math.Max(minVolume, math.Log2(v)), false
}
