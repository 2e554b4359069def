package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-folio/engine/model"
)

// gltfAnimationExtractorImpl is the implementation of the gltfAnimationExtractor interface.
type gltfAnimationExtractorImpl struct {
	parser gltfParser
}

// gltfAnimationExtractor converts glTF animations into node-targeted AnimationClips.
type gltfAnimationExtractor interface {
	// ExtractAllAnimations extracts every animation in document order.
	//
	// Returns:
	//   - []*model.AnimationClip: the clips
	//   - error: error if a sampler cannot be read
	ExtractAllAnimations() ([]*model.AnimationClip, error)
}

var _ gltfAnimationExtractor = &gltfAnimationExtractorImpl{}

// newGLTFAnimationExtractor creates a new animation extractor for a parsed document.
func newGLTFAnimationExtractor(parser gltfParser) gltfAnimationExtractor {
	return &gltfAnimationExtractorImpl{parser: parser}
}

func (e *gltfAnimationExtractorImpl) ExtractAllAnimations() ([]*model.AnimationClip, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	clips := make([]*model.AnimationClip, 0, len(doc.Animations))
	for i := range doc.Animations {
		clip, err := e.extractAnimation(i)
		if err != nil {
			return nil, fmt.Errorf("animation %d: %w", i, err)
		}
		clips = append(clips, clip)
	}
	return clips, nil
}

// extractAnimation merges the translation, rotation and scale channels of each node into one AnimationChannel.
// Channels keep the order in which their node first appears. Morph weight channels are skipped.
func (e *gltfAnimationExtractorImpl) extractAnimation(animIndex int) (*model.AnimationClip, error) {
	doc := e.parser.Document()
	anim := &doc.Animations[animIndex]

	byNode := make(map[int]int)
	var channels []model.AnimationChannel
	var duration float32

	for i := range anim.Channels {
		ch := &anim.Channels[i]
		if ch.Target.Node == nil || *ch.Target.Node < 0 || *ch.Target.Node >= len(doc.Nodes) {
			continue
		}
		path := ch.Target.Path
		if path != gltfAnimPathTranslation && path != gltfAnimPathRotation && path != gltfAnimPathScale {
			continue
		}
		if ch.Sampler < 0 || ch.Sampler >= len(anim.Samplers) {
			return nil, fmt.Errorf("channel %d: invalid sampler index %d", i, ch.Sampler)
		}
		sampler := &anim.Samplers[ch.Sampler]

		times, err := e.parser.ReadFloats(sampler.Input, gltfAccessorTypeScalar)
		if err != nil {
			return nil, fmt.Errorf("channel %d: failed to read timestamps: %w", i, err)
		}
		if len(times) == 0 {
			continue
		}
		duration = max(duration, times[len(times)-1])

		node := *ch.Target.Node
		idx, ok := byNode[node]
		if !ok {
			idx = len(channels)
			byNode[node] = idx
			channels = append(channels, model.AnimationChannel{NodeIndex: node})
		}
		out := &channels[idx]
		if sampler.Interpolation == gltfAnimInterpolationStep {
			out.Interpolation = model.InterpolationStep
		}

		width := 3
		accType := gltfAccessorTypeVec3
		if path == gltfAnimPathRotation {
			width, accType = 4, gltfAccessorTypeVec4
		}
		values, err := e.parser.ReadFloats(sampler.Output, accType)
		if err != nil {
			return nil, fmt.Errorf("channel %d: failed to read %s values: %w", i, path, err)
		}
		values = keyValues(values, width, sampler.Interpolation == gltfAnimInterpolationCubicSpline)
		n := min(len(times), len(values)/width)

		switch path {
		case gltfAnimPathTranslation:
			out.PositionKeys = vectorKeys(times[:n], values)
		case gltfAnimPathScale:
			out.ScaleKeys = vectorKeys(times[:n], values)
		case gltfAnimPathRotation:
			keys := make([]model.QuaternionKeyframe, n)
			for j := range keys {
				keys[j] = model.QuaternionKeyframe{
					Time:  times[j],
					Value: [4]float32{values[j*4], values[j*4+1], values[j*4+2], values[j*4+3]},
				}
			}
			out.RotationKeys = keys
		}
	}

	name := anim.Name
	if name == "" {
		name = fmt.Sprintf("animation_%d", animIndex)
	}
	return &model.AnimationClip{
		Name:     name,
		Duration: duration,
		Channels: channels,
	}, nil
}

// keyValues drops the in and out tangents of cubic spline output, keeping each key's value.
// The keys are then blended linearly.
func keyValues(values []float32, width int, cubic bool) []float32 {
	if !cubic {
		return values
	}
	keys := len(values) / (width * 3)
	out := make([]float32, 0, keys*width)
	for k := range keys {
		start := k*width*3 + width
		out = append(out, values[start:start+width]...)
	}
	return out
}

func vectorKeys(times, values []float32) []model.VectorKeyframe {
	keys := make([]model.VectorKeyframe, len(times))
	for j := range keys {
		keys[j] = model.VectorKeyframe{
			Time:  times[j],
			Value: [3]float32{values[j*3], values[j*3+1], values[j*3+2]},
		}
	}
	return keys
}
