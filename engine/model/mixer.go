package model

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-folio/common"
)

// animationMixer is the implementation of the AnimationMixer interface.
type animationMixer struct {
	mu      *sync.Mutex
	model   Model
	base    []Node
	clip    *AnimationClip
	time    float32
	playing bool
}

// AnimationMixer plays one looping animation clip on a Model's nodes.
type AnimationMixer interface {
	// Play starts a clip from its beginning. An out-of-range index stops playback.
	//
	// Parameters:
	//   - index: the clip index in Model.Animations
	Play(index int)

	// Stop halts playback and leaves the nodes where they are.
	Stop()

	// Playing reports whether a clip is active.
	Playing() bool

	// Time returns the playhead position in seconds within the current loop.
	Time() float32

	// Update advances the playhead, samples every channel and refreshes the model's node matrices.
	//
	// Parameters:
	//   - dt: the step in seconds
	Update(dt float32)
}

var _ AnimationMixer = &animationMixer{}

// NewAnimationMixer creates a mixer bound to a model. Nothing plays until Play is called.
//
// Parameters:
//   - m: the model whose nodes are animated
//
// Returns:
//   - AnimationMixer: the mixer
func NewAnimationMixer(m Model) AnimationMixer {
	return &animationMixer{
		mu:    &sync.Mutex{},
		model: m,
		base:  m.Nodes(),
	}
}

func (a *animationMixer) Play(index int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	clips := a.model.Animations()
	if index < 0 || index >= len(clips) {
		a.clip = nil
		a.playing = false
		return
	}
	a.clip = clips[index]
	a.time = 0
	a.playing = true
}

func (a *animationMixer) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.playing = false
}

func (a *animationMixer) Playing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playing
}

func (a *animationMixer) Time() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.time
}

func (a *animationMixer) Update(dt float32) {
	a.mu.Lock()
	if !a.playing || a.clip == nil {
		a.mu.Unlock()
		return
	}
	a.time += dt
	if a.clip.Duration > 0 {
		for a.time >= a.clip.Duration {
			a.time -= a.clip.Duration
		}
	} else {
		a.time = 0
	}
	clip, t := a.clip, a.time
	a.mu.Unlock()

	for _, ch := range clip.Channels {
		if ch.NodeIndex < 0 || ch.NodeIndex >= len(a.base) {
			continue
		}
		a.model.SetNodeLocal(ch.NodeIndex, SampleChannel(ch, a.base[ch.NodeIndex].Local, t))
	}
	a.model.UpdateMatrices()
}

// SampleChannel evaluates a channel at a time. Components without keys keep the rest pose value.
//
// Parameters:
//   - ch: the channel
//   - rest: the node's rest transform
//   - t: time in seconds
//
// Returns:
//   - Transform: the sampled local transform
func SampleChannel(ch AnimationChannel, rest Transform, t float32) Transform {
	out := rest
	step := ch.Interpolation == InterpolationStep
	if len(ch.PositionKeys) > 0 {
		out.Translation = sampleVector(ch.PositionKeys, t, step)
	}
	if len(ch.RotationKeys) > 0 {
		out.Rotation = sampleQuaternion(ch.RotationKeys, t, step)
	}
	if len(ch.ScaleKeys) > 0 {
		out.Scale = sampleVector(ch.ScaleKeys, t, step)
	}
	return out
}

// keyIndex returns the index of the last key at or before t, and the blend factor toward the next key.
func keyIndex(n int, at func(int) float32, t float32) (int, float32) {
	if t <= at(0) {
		return 0, 0
	}
	if t >= at(n-1) {
		return n - 1, 0
	}
	i := sort.Search(n, func(i int) bool { return at(i) > t }) - 1
	span := at(i+1) - at(i)
	if span <= 0 {
		return i, 0
	}
	return i, (t - at(i)) / span
}

func sampleVector(keys []VectorKeyframe, t float32, step bool) [3]float32 {
	i, f := keyIndex(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if step || f == 0 || i+1 >= len(keys) {
		return keys[i].Value
	}
	return common.Lerp3(keys[i].Value, keys[i+1].Value, f)
}

func sampleQuaternion(keys []QuaternionKeyframe, t float32, step bool) [4]float32 {
	i, f := keyIndex(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if step || f == 0 || i+1 >= len(keys) {
		return keys[i].Value
	}
	return common.SlerpQuat(keys[i].Value, keys[i+1].Value, f)
}
