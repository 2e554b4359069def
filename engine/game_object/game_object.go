package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
)

type gameObject struct {
	mu      *sync.RWMutex
	id      uint64
	name    string
	enabled atomic.Bool
	mdl     model.Model
	mixer   model.AnimationMixer

	position [3]float32
	rotation [3]float32
	scale    [3]float32

	world      [16]float32
	worldDirty bool

	// clip to start once a model with animations is attached, -1 for none
	autoplay     int
	autoplayName string
}

// GameObject defines the interface for a placed instance of a Model.
// The transform is a position, an XYZ Euler rotation in radians and a scale, composed into a world matrix
// that is rebuilt lazily after any change. An object with an animated model owns an AnimationMixer.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's name, used in logs and lookups.
	Name() string

	// Enabled returns whether this object is enabled for rendering and picking.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Mixer returns the object's animation mixer, or nil when the model has no clips.
	Mixer() model.AnimationMixer

	// Position returns the object's position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Rotation returns the object's Euler rotation in radians.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// Scale returns the object's scale.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// TransformData reads the whole transform under one lock.
	//
	// Returns:
	//   - pos: position as [3]float32 (x, y, z)
	//   - scale: scale as [3]float32 (x, y, z)
	//   - rot: rotation as [3]float32 (rx, ry, rz)
	TransformData() (pos, scale, rot [3]float32)

	// WorldMatrix returns the column-major object-to-world matrix.
	//
	// Returns:
	//   - [16]float32: the world matrix
	WorldMatrix() [16]float32

	// WorldBounds returns the world-space bounding box of the model.
	//
	// Returns:
	//   - [3]float32: minimum corner
	//   - [3]float32: maximum corner
	//   - bool: false when there is no model or it has no meshes
	WorldBounds() ([3]float32, [3]float32, bool)

	// Pick tests a world-space ray against the object's model, moving the ray into object space first.
	//
	// Parameters:
	//   - ray: the ray in world space
	//
	// Returns:
	//   - float32: nearest hit distance in multiples of ray.Direction
	//   - bool: true if the ray hits any triangle
	Pick(ray common.Ray) (float32, bool)

	// Update advances the object's animation.
	//
	// Parameters:
	//   - dt: the step in seconds
	Update(dt float32)

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetModel assigns a Model to this object and builds a mixer when the model is animated.
	//
	// Parameters:
	//   - m: the Model to associate
	SetModel(m model.Model)

	// SetPosition updates the object's position.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetRotation updates the object's Euler rotation.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation angles in radians
	SetRotation(rx, ry, rz float32)

	// SetScale updates the object's scale.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects start enabled with unit scale.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:         &sync.RWMutex{},
		scale:      [3]float32{1, 1, 1},
		worldDirty: true,
		autoplay:   -1,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	if obj.mdl != nil {
		obj.attach(obj.mdl)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	if g.name == "" && g.mdl != nil {
		return g.mdl.Name()
	}
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mdl
}

func (g *gameObject) Mixer() model.AnimationMixer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mixer
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) TransformData() (pos, scale, rot [3]float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position, g.scale, g.rotation
}

func (g *gameObject) WorldMatrix() [16]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.worldMatrix()
}

// worldMatrix rebuilds the cached matrix if needed. Caller must hold mu for writing.
func (g *gameObject) worldMatrix() [16]float32 {
	if g.worldDirty {
		common.BuildModelMatrix(g.world[:], g.position, g.rotation, g.scale)
		g.worldDirty = false
	}
	return g.world
}

func (g *gameObject) WorldBounds() ([3]float32, [3]float32, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mdl == nil {
		return [3]float32{}, [3]float32{}, false
	}
	bmin, bmax, ok := g.mdl.Bounds()
	if !ok {
		return bmin, bmax, false
	}
	world := g.worldMatrix()
	bmin, bmax = common.TransformAABB(world[:], bmin, bmax)
	return bmin, bmax, true
}

func (g *gameObject) Pick(ray common.Ray) (float32, bool) {
	if !g.Enabled() {
		return 0, false
	}
	g.mu.Lock()
	mdl := g.mdl
	world := g.worldMatrix()
	g.mu.Unlock()
	if mdl == nil {
		return 0, false
	}

	var inv [16]float32
	if !common.Invert4(inv[:], world[:]) {
		return 0, false
	}
	return mdl.Pick(ray.Transform(inv[:]))
}

func (g *gameObject) Update(dt float32) {
	g.mu.RLock()
	mixer := g.mixer
	g.mu.RUnlock()
	if mixer != nil && mixer.Playing() {
		mixer.Update(dt)
	}
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetModel(m model.Model) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.attach(m)
}

// attach binds a model and starts the configured clip. Caller must hold mu or own g exclusively.
func (g *gameObject) attach(m model.Model) {
	g.mdl = m
	g.mixer = nil
	if m == nil || m.AnimationCount() == 0 {
		return
	}
	g.mixer = model.NewAnimationMixer(m)

	clip := g.autoplay
	if g.autoplayName != "" {
		clip = m.AnimationIndex(g.autoplayName)
	}
	if clip >= 0 {
		g.mixer.Play(clip)
	}
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = [3]float32{x, y, z}
	g.worldDirty = true
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = [3]float32{rx, ry, rz}
	g.worldDirty = true
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = [3]float32{sx, sy, sz}
	g.worldDirty = true
}
