package scene

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/game_object"
	"github.com/Carmen-Shannon/oxy-folio/engine/light"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
)

// Scene holds a camera, its lights and a registry of GameObjects, and turns them into renderer Frames.
// Scenes can be hot-swapped via the Active flag to switch between different views.
// Thread-safe for concurrent access: the tick goroutine mutates objects through Update while the render
// goroutine builds Frames under the read lock.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Renderer returns the scene's renderer, or nil when the scene is headless.
	Renderer() renderer.Renderer

	// SetRenderer replaces the scene's renderer.
	//
	// Parameters:
	//   - r: the new renderer
	SetRenderer(r renderer.Renderer)

	// Count returns the number of GameObjects in the scene.
	//
	// Returns:
	//   - int: count of registered GameObjects
	Count() int

	// Add registers a GameObject, assigning an ID when it has none.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.GameObject) uint64

	// Get returns the object with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove unregisters the object with the given ID. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the object ID
	Remove(id uint64)

	// Objects returns the registered objects in insertion order.
	//
	// Returns:
	//   - []game_object.GameObject: a snapshot of the registry
	Objects() []game_object.GameObject

	// Clear removes every object.
	Clear()

	// AddLight adds a light to the scene.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// RemoveLight removes a light from the scene.
	//
	// Parameters:
	//   - l: the light to remove
	RemoveLight(l light.Light)

	// Lights returns the scene's lights.
	//
	// Returns:
	//   - []light.Light: a snapshot of the light list
	Lights() []light.Light

	// LightBindGroupProvider returns the provider holding the light uniform buffer.
	LightBindGroupProvider() bind_group_provider.BindGroupProvider

	// Update advances every object's animation by dt seconds, fanned out over the update worker pool.
	//
	// Parameters:
	//   - dt: the step in seconds
	Update(dt float32)

	// Pick returns the nearest enabled object hit by a world-space ray.
	//
	// Parameters:
	//   - ray: the ray in world space
	//
	// Returns:
	//   - game_object.GameObject: the nearest hit object, or nil
	//   - float32: the hit distance in multiples of ray.Direction
	//   - bool: true if any object was hit
	Pick(ray common.Ray) (game_object.GameObject, float32, bool)

	// Frame snapshots the camera, lights and every visible mesh into a renderer Frame.
	// Opaque draws come first in insertion order, transparent draws follow from farthest to nearest.
	//
	// Returns:
	//   - renderer.Frame: the frame to hand to the renderer
	Frame() renderer.Frame

	// Render builds a Frame and draws it with the scene's renderer.
	//
	// Returns:
	//   - error: an error if no renderer is attached or drawing failed
	Render() error
}

type scene struct {
	mu     *sync.RWMutex
	name   string
	active bool
	cam    camera.Camera
	r      renderer.Renderer

	registry map[uint64]game_object.GameObject
	order    []uint64
	nextID   uint64

	lights     []light.Light
	hemisphere float32
	lightsBGP  bind_group_provider.BindGroupProvider

	frustumCulling bool

	updateWorkers int
	updatePool    worker.DynamicWorkerPool
}

var _ Scene = &scene{}

// NewScene creates a scene viewed through cam. A renderer is optional: a scene without one still updates,
// picks and builds Frames, which is how it is tested.
//
// Parameters:
//   - name: the scene's identifier
//   - cam: the camera (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:            &sync.RWMutex{},
		name:          name,
		cam:           cam,
		registry:      make(map[uint64]game_object.GameObject),
		nextID:        1,
		hemisphere:    0.5,
		lightsBGP:     bind_group_provider.NewBindGroupProvider(name + "_lights"),
		updateWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Workers are reused across ticks; a per-tick WaitGroup is the barrier since pool.Wait blocks until
	// the workers idle out.
	s.updatePool = worker.NewDynamicWorkerPool(s.updateWorkers, 256, 1*time.Second)

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(obj)
}

// add registers obj. Caller must hold mu for writing.
func (s *scene) add(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	if _, exists := s.registry[obj.ID()]; !exists {
		s.order = append(s.order, obj.ID())
	}
	s.registry[obj.ID()] = obj
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.registry[id]; !exists {
		return
	}
	delete(s.registry, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects()
}

// objects returns the registry in insertion order. Caller must hold mu.
func (s *scene) objects() []game_object.GameObject {
	out := make([]game_object.GameObject, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.registry[id])
	}
	return out
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]game_object.GameObject)
	s.order = nil
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) LightBindGroupProvider() bind_group_provider.BindGroupProvider {
	return s.lightsBGP
}

func (s *scene) Update(dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var wg sync.WaitGroup
	for i, obj := range s.objects() {
		if obj.Mixer() == nil {
			continue
		}
		wg.Add(1)
		s.updatePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				obj.Update(dt)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (s *scene) Pick(ray common.Ray) (game_object.GameObject, float32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var nearest game_object.GameObject
	best := float32(0)
	for _, obj := range s.objects() {
		dist, ok := obj.Pick(ray)
		if !ok {
			continue
		}
		if nearest == nil || dist < best {
			nearest, best = obj, dist
		}
	}
	return nearest, best, nearest != nil
}

func (s *scene) Frame() renderer.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()

	frame := renderer.Frame{
		CameraProvider: s.cam.BindGroupProvider(),
		Camera:         s.cam.Uniform(),
		LightProvider:  s.lightsBGP,
		Light:          light.BuildLightUniform(s.lights, s.hemisphere),
	}
	eye := s.cam.Position()

	var frustum *common.Frustum
	if s.frustumCulling {
		vp := s.cam.ViewProjectionMatrix()
		f := common.ExtractFrustumFromMatrix(vp[:])
		frustum = &f
	}

	for _, obj := range s.objects() {
		if !obj.Enabled() {
			continue
		}
		mdl := obj.Model()
		if mdl == nil {
			continue
		}
		world := obj.WorldMatrix()
		for _, mesh := range mdl.Meshes() {
			var draw renderer.Draw
			node := mdl.NodeMatrix(mesh.Node())
			common.Mul4(draw.Uniform.Model[:], world[:], node[:])

			bmin, bmax := mesh.Bounds()
			bmin, bmax = common.TransformAABB(draw.Uniform.Model[:], bmin, bmax)
			if frustum != nil && !frustum.IntersectsAABB(bmin, bmax) {
				continue
			}

			mat := mesh.Material()
			u := mat.Uniform()
			copy(draw.Uniform.Material[:], u.Marshal())
			draw.Mesh = mesh
			draw.Transparent = mat.Transparent()
			draw.DoubleSided = mat.DoubleSided()

			center := common.Lerp3(bmin, bmax, 0.5)
			d := common.Sub3(center, eye)
			draw.Depth = common.Dot3(d, d)

			frame.Draws = append(frame.Draws, draw)
		}
	}

	renderer.SortDraws(frame.Draws)
	return frame
}

func (s *scene) Render() error {
	r := s.Renderer()
	if r == nil {
		return fmt.Errorf("scene %q has no renderer attached", s.Name())
	}
	return r.RenderFrame(s.Frame())
}
