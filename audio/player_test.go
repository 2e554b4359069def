package audio

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withoutDevice mixes into the player's mixer without opening the speaker so tests can pull samples.
func withoutDevice() PlayerBuilderOption {
	return func(p *player) {
		p.speakerLive = false
	}
}

type nopCloser struct{ beep.StreamSeeker }

func (nopCloser) Close() error { return nil }

// constDecoder decodes every file into 100 samples of a constant level.
func constDecoder(level float64, decoded *int) Decoder {
	return func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
		rc.Close()
		*decoded++
		format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
		buf := beep.NewBuffer(format)
		buf.Append(beep.Take(100, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
			for i := range samples {
				samples[i] = [2]float64{level, level}
			}
			return len(samples), true
		})))
		return nopCloser{buf.Streamer(0, buf.Len())}, format, nil
	}
}

func memOpener(files ...string) func(string) (io.ReadCloser, error) {
	known := map[string]bool{}
	for _, f := range files {
		known[f] = true
	}
	return func(path string) (io.ReadCloser, error) {
		if !known[path] {
			return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
}

func pull(p *player) float64 {
	samples := make([][2]float64, 10)
	p.master.Stream(samples)
	return samples[0][0]
}

func TestGainFor(t *testing.T) {
	g, silent := GainFor(1)
	assert.Zero(t, g)
	assert.False(t, silent)

	g, _ = GainFor(0.5)
	assert.InDelta(t, -1, g, 1e-9)

	_, silent = GainFor(0)
	assert.True(t, silent)

	g, silent = GainFor(1e-9)
	assert.Equal(t, float64(minVolume), g)
	assert.False(t, silent)
}

func TestPlayMixesAtMasterVolume(t *testing.T) {
	decoded := 0
	p := NewPlayer(
		withoutDevice(),
		WithBaseDir("assets"),
		WithOpener(memOpener("assets/click.mp3")),
		WithDecoder(constDecoder(0.5, &decoded)),
	).(*player)

	require.NoError(t, p.Play("click.mp3"))
	assert.InDelta(t, 0.5, pull(p), 1e-3)

	p.SetVolume(0.5)
	assert.InDelta(t, 0.25, pull(p), 1e-3)

	p.Mute(true)
	assert.True(t, p.Muted())
	assert.Zero(t, pull(p))
	p.Mute(false)

	require.NoError(t, p.Play("click.mp3"))
	assert.Equal(t, 1, decoded, "decoded once and replayed from the buffer")
}

func TestSetVolumeClamps(t *testing.T) {
	p := NewPlayer(withoutDevice())
	p.SetVolume(3)
	assert.Equal(t, 1.0, p.Volume())
	p.SetVolume(-1)
	assert.Equal(t, 0.0, p.Volume())
}

func TestUnknownSound(t *testing.T) {
	decoded := 0
	p := NewPlayer(withoutDevice(), WithOpener(memOpener()), WithDecoder(constDecoder(1, &decoded)))
	err := p.Play("missing.mp3")
	assert.ErrorIs(t, err, ErrUnknownSound)

	err = p.Preload("a.mp3", "b.mp3")
	assert.ErrorIs(t, err, ErrUnknownSound)
	assert.Zero(t, decoded)
}

func TestDecodeFailure(t *testing.T) {
	boom := errors.New("bad frame")
	p := NewPlayer(
		withoutDevice(),
		WithOpener(memOpener("x.mp3")),
		WithDecoder(func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
			return nil, beep.Format{}, boom
		}),
	)
	err := p.Play("x.mp3")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrUnknownSound)
}

func TestSilentPlayerSucceeds(t *testing.T) {
	p := NewPlayer(WithSilent(true), WithOpener(memOpener()))
	assert.True(t, p.Silent())
	assert.NoError(t, p.Play("missing.mp3"))
	assert.NoError(t, p.Preload("missing.mp3"))
	p.SetVolume(0.3)
	assert.Equal(t, 0.3, p.Volume())
	p.Close()
}
