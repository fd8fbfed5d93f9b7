package viewer

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-face/common"
	"github.com/Carmen-Shannon/oxy-face/config"
	"github.com/Carmen-Shannon/oxy-face/engine"
	"github.com/Carmen-Shannon/oxy-face/engine/audio"
	"github.com/Carmen-Shannon/oxy-face/engine/camera"
	"github.com/Carmen-Shannon/oxy-face/engine/light"
	"github.com/Carmen-Shannon/oxy-face/engine/loader"
	"github.com/Carmen-Shannon/oxy-face/engine/model"
	"github.com/Carmen-Shannon/oxy-face/engine/playback"
	"github.com/Carmen-Shannon/oxy-face/engine/renderer"
	"github.com/Carmen-Shannon/oxy-face/engine/scene"
	"github.com/Carmen-Shannon/oxy-face/engine/track"
	"github.com/Carmen-Shannon/oxy-face/engine/watcher"
	"github.com/Carmen-Shannon/oxy-face/engine/window"
)

// ErrNoEngine is returned by Run when the viewer was built around an external scene.
var ErrNoEngine = errors.New("viewer has no engine")

// viewer is the implementation of the Viewer interface.
type viewer struct {
	mu *sync.Mutex

	cfg *config.Config

	eng    engine.Engine
	scn    scene.Scene
	driver playback.Driver
	player audio.Player
	loader loader.Loader
	watch  watcher.Watcher

	// loads runs file loads off the render goroutine. A single worker keeps them in request order.
	// pending holds the latest requested load per slot; a slot has at most one queued task.
	loads    worker.DynamicWorkerPool
	pending  map[Slot]func()
	loadWG   sync.WaitGroup
	loadID   int
	watchWG  sync.WaitGroup
	post     func(action func())
	now      func() time.Time
	sources  map[Slot]string
	drag     dragState
	closeErr error
	closed   bool
}

// Viewer is the facial-animation viewer application.
//
// It owns the scene showing the head asset, the playback driver applying the blendshape track and
// the audio player kept in lock-step with it. Loads run on a background worker; their results are
// handed to the render goroutine, which is the only goroutine touching the scene and the driver.
type Viewer interface {
	// Run loads the default assets and blocks in the window message loop until the window closes.
	//
	// Returns:
	//   - error: ErrNoEngine if the viewer has no window, or an error from shutting down
	Run() error

	// Load routes a file to its slot by extension and loads it in the background.
	//
	// Parameters:
	//   - path: the file to load
	//
	// Returns:
	//   - Slot: the slot the file was routed to, SlotNone if it was ignored
	Load(path string) Slot

	// LoadDefaults loads the configured model, track and audio.
	LoadDefaults()

	// ReloadDefaultAnimation loads the configured track and audio again.
	ReloadDefaultAnimation()

	// LoadPreset loads the model preset at the given index.
	//
	// Parameters:
	//   - index: zero-based preset index
	//
	// Returns:
	//   - bool: false if there is no such preset
	LoadPreset(index int) bool

	// Source returns the absolute path loaded into a slot, or "" when the slot is empty.
	//
	// Parameters:
	//   - slot: the slot to query
	//
	// Returns:
	//   - string: the loaded path
	Source(slot Slot) string

	// Driver returns the playback driver.
	//
	// Returns:
	//   - playback.Driver: the driver
	Driver() playback.Driver

	// Scene returns the scene showing the head asset.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Status describes the playback position for the profiler line.
	//
	// Returns:
	//   - string: e.g. "playback running 12/300 loop=false"
	Status() string

	// Close stops background loads and file watching and releases the audio device.
	//
	// Returns:
	//   - error: the first error from closing the watcher or the audio player
	Close() error
}

var _ Viewer = &viewer{}

// New builds a viewer from cfg. Unless WithScene supplies a scene, New opens the window, creates
// the renderer, camera, lights and scene and wires input to them.
//
// Parameters:
//   - cfg: the resolved viewer configuration
//   - options: variadic list of ViewerBuilderOption functions to configure the viewer
//
// Returns:
//   - Viewer: the new viewer
//   - error: error if the configuration is invalid or the scene cannot be created
func New(cfg *config.Config, options ...ViewerBuilderOption) (Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	v := &viewer{
		mu:      &sync.Mutex{},
		cfg:     cfg,
		now:     time.Now,
		sources: make(map[Slot]string),
		pending: make(map[Slot]func()),
	}
	for _, opt := range options {
		opt(v)
	}

	if v.player == nil {
		v.player = audio.NewPlayer(audio.WithSampleRate(cfg.Audio.SampleRate), audio.WithVolume(cfg.Audio.Volume))
	}
	v.driver = playback.NewDriver(playback.WithLoop(cfg.Loop), playback.WithAudio(v.player))
	v.loader = loader.NewLoader(
		loader.WithTrackedMeshes(cfg.Meshes.Tracked...),
		loader.WithPhongMeshes(cfg.Meshes.Phong...),
	)

	if v.scn == nil {
		if err := v.buildEngine(); err != nil {
			return nil, err
		}
	}
	if v.post == nil {
		v.post = func(action func()) { action() }
	}

	v.loads = worker.NewDynamicWorkerPool(1, 16, time.Second)

	if cfg.Watch && v.watch == nil {
		w, err := watcher.NewWatcher()
		if err != nil {
			log.Printf("[Viewer] hot reload disabled: %v", err)
		} else {
			v.watch = w
		}
	}
	if v.watch != nil {
		v.watchWG.Add(1)
		go v.watchLoop()
	}

	return v, nil
}

// buildEngine opens the window and builds the GPU side of the viewer around it.
func (v *viewer) buildEngine() error {
	cfg := v.cfg

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)

	presentMode := renderer.PresentModeUncapped
	if cfg.Renderer.VSync {
		presentMode = renderer.PresentModeVSync
	}
	bg := cfg.Background.RGB()
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
		renderer.WithClearColor(float64(bg[0]), float64(bg[1]), float64(bg[2])),
	)

	cam := camera.NewCamera(
		camera.WithFovDegrees(cfg.Camera.Fov),
		camera.WithClipPlanes(cfg.Camera.Near, cfg.Camera.Far),
		camera.WithAspect(float32(win.Width())/float32(max(win.Height(), 1))),
		camera.WithController(camera.NewCameraController(camera.WithHome(cfg.Camera.Position, cfg.Camera.Target))),
	)

	scn, err := scene.NewScene("face", cam, r, newRig(cfg.Lights),
		scene.WithActive(true),
		scene.WithDoubleSided(cfg.Renderer.DoubleSided),
	)
	if err != nil {
		_ = win.Close()
		return fmt.Errorf("viewer: %w", err)
	}

	v.scn = scn
	v.eng = engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(0, scn),
		engine.WithProfiling(cfg.Profile),
		engine.WithFrameCallback(func(now time.Time, _ float32) {
			v.driver.Tick(now)
		}),
	)
	v.eng.Profiler().SetStatus(v.Status)
	v.post = v.eng.Post
	v.bindInput(win)
	return nil
}

// newRig builds the ambient, directional and point lights.
func newRig(cfg config.LightsConfig) light.Rig {
	dir := cfg.Directional.Position
	point := cfg.Point.Position
	return light.NewRig(
		light.WithAmbient(light.NewLight(light.LightTypeAmbient,
			light.WithColorHex(cfg.Ambient.Color.Hex()),
			light.WithIntensity(cfg.Ambient.Intensity),
		)),
		light.WithDirectional(light.NewLight(light.LightTypeDirectional,
			light.WithColorHex(cfg.Directional.Color.Hex()),
			light.WithIntensity(cfg.Directional.Intensity),
			light.WithPosition(dir[0], dir[1], dir[2]),
		)),
		light.WithPoint(light.NewLight(light.LightTypePoint,
			light.WithColorHex(cfg.Point.Color.Hex()),
			light.WithIntensity(cfg.Point.Intensity),
			light.WithPosition(point[0], point[1], point[2]),
			light.WithRange(cfg.Point.Range),
		)),
	)
}

func (v *viewer) Run() error {
	if v.eng == nil {
		return ErrNoEngine
	}
	v.LoadDefaults()
	v.eng.Run()
	return v.Close()
}

func (v *viewer) Driver() playback.Driver {
	return v.driver
}

func (v *viewer) Scene() scene.Scene {
	return v.scn
}

func (v *viewer) Status() string {
	return fmt.Sprintf("playback %s %d/%d loop=%t",
		v.driver.State(), v.driver.FrameIndex(), v.driver.FrameCount(), v.driver.Loop())
}

func (v *viewer) Source(slot Slot) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sources[slot]
}

func (v *viewer) Load(path string) Slot {
	slot := SlotFor(path)
	switch slot {
	case SlotModel:
		v.submit(slot, func() { v.loadModel(path, false) })
	case SlotTrack:
		v.submit(slot, func() { v.loadTrack(path) })
	case SlotAudio:
		v.submit(slot, func() { v.loadAudio(path) })
	default:
		log.Printf("[Viewer] ignoring %s: unsupported file type", path)
	}
	return slot
}

func (v *viewer) LoadDefaults() {
	assets := v.cfg.Assets
	for _, path := range []string{common.Coalesce(assets.Model, first(assets.Presets)), assets.Track, assets.Audio} {
		if path != "" {
			v.Load(path)
		}
	}
}

func (v *viewer) ReloadDefaultAnimation() {
	log.Printf("[Viewer] reloading default animation data")
	for _, path := range []string{v.cfg.Assets.Track, v.cfg.Assets.Audio} {
		if path != "" {
			v.Load(path)
		}
	}
}

func (v *viewer) LoadPreset(index int) bool {
	presets := v.cfg.Assets.Presets
	if index < 0 || index >= len(presets) {
		return false
	}
	v.Load(presets[index])
	return true
}

func (v *viewer) Close() error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return v.closeErr
	}
	v.closed = true
	v.mu.Unlock()

	v.loadWG.Wait()
	v.loads.Stop()

	var errs []error
	if v.watch != nil {
		errs = append(errs, v.watch.Close())
		v.watchWG.Wait()
	}
	errs = append(errs, v.player.Close())
	v.closeErr = errors.Join(errs...)
	return v.closeErr
}

// submit queues a load for slot on the load worker. A request for a slot that is still queued
// replaces the queued load instead of adding a task, so the queue never holds more than one task
// per slot and callers on the window thread never block on it.
func (v *viewer) submit(slot Slot, load func()) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	if _, queued := v.pending[slot]; queued {
		v.pending[slot] = load
		v.mu.Unlock()
		return
	}
	v.pending[slot] = load
	id := v.loadID
	v.loadID++
	v.loadWG.Add(1)
	v.mu.Unlock()

	v.loads.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer v.loadWG.Done()
			v.mu.Lock()
			latest := v.pending[slot]
			delete(v.pending, slot)
			v.mu.Unlock()
			if latest != nil {
				latest()
			}
			return nil, nil
		},
	})
}

// loadModel reads a glTF asset and hands it to the scene and the driver. A failed load empties the
// model slot, which stops playback.
func (v *viewer) loadModel(path string, reload bool) {
	load := v.loader.Load
	if reload {
		load = v.loader.Reload
	}
	m, err := load(path)
	if err != nil {
		log.Printf("[Viewer] %v", err)
		v.setSource(SlotModel, "")
		v.post(func() {
			v.scn.ClearModel()
			v.driver.SetAsset(nil)
		})
		return
	}

	targets := trackedTargets(m, v.cfg.Meshes.Tracked)
	v.setSource(SlotModel, path)
	v.post(func() {
		if err := v.scn.SetModel(m); err != nil {
			log.Printf("[Viewer] %v", err)
			v.driver.SetAsset(nil)
			return
		}
		v.driver.SetAsset(targets)
	})
}

// loadTrack parses a blendshape CSV and hands it to the driver. A failed parse empties the track
// slot, which stops playback.
func (v *viewer) loadTrack(path string) {
	t, err := track.ParseFile(path,
		track.WithPrefix(v.cfg.Track.Prefix),
		track.WithTimeField(v.cfg.Track.TimeField),
		track.WithFrameRate(v.cfg.Track.FrameRate),
	)
	if err != nil {
		log.Printf("[Viewer] %v", err)
		v.setSource(SlotTrack, "")
		v.post(func() { v.driver.SetTrack(nil) })
		return
	}
	log.Printf("[Viewer] track %s: %d frames, %s", filepath.Base(path), t.Len(), t.TotalDuration())
	v.setSource(SlotTrack, path)
	v.post(func() { v.driver.SetTrack(t) })
}

// loadAudio decodes a WAV file into the player. The player keeps its previous audio on failure.
func (v *viewer) loadAudio(path string) {
	if err := v.player.Load(path); err != nil {
		log.Printf("[Viewer] %v", err)
		return
	}
	v.setSource(SlotAudio, path)
}

// setSource records the file loaded into a slot and moves the file watch along with it.
func (v *viewer) setSource(slot Slot, path string) {
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	v.mu.Lock()
	old := v.sources[slot]
	if path == "" {
		delete(v.sources, slot)
	} else {
		v.sources[slot] = path
	}
	v.mu.Unlock()

	if v.watch == nil || old == path {
		return
	}
	if old != "" && !v.watched(old) {
		if err := v.watch.Unwatch(old); err != nil {
			log.Printf("[Viewer] %v", err)
		}
	}
	if path != "" {
		if err := v.watch.Watch(path); err != nil {
			log.Printf("[Viewer] %v", err)
		}
	}
}

// watched reports whether any slot still holds path.
func (v *viewer) watched(path string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, p := range v.sources {
		if p == path {
			return true
		}
	}
	return false
}

// slotOf returns the slot currently holding path.
func (v *viewer) slotOf(path string) Slot {
	v.mu.Lock()
	defer v.mu.Unlock()
	for slot, p := range v.sources {
		if p == path {
			return slot
		}
	}
	return SlotNone
}

// watchLoop reloads a slot whenever its file changes on disk.
func (v *viewer) watchLoop() {
	defer v.watchWG.Done()
	events, errs := v.watch.Events(), v.watch.Errors()
	for events != nil || errs != nil {
		select {
		case path, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			v.reload(path)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Printf("[Viewer] watcher: %v", err)
		}
	}
}

// reload loads a changed file again into the slot that holds it.
func (v *viewer) reload(path string) {
	slot := v.slotOf(path)
	if slot == SlotNone {
		return
	}
	log.Printf("[Viewer] %s changed, reloading %s", filepath.Base(path), slot)
	switch slot {
	case SlotModel:
		v.submit(slot, func() { v.loadModel(path, true) })
	case SlotTrack:
		v.submit(slot, func() { v.loadTrack(path) })
	case SlotAudio:
		v.submit(slot, func() { v.loadAudio(path) })
	}
}

// trackedTargets collects the tracked meshes present in m. The result is never nil so an asset
// without tracked meshes still counts as loaded.
func trackedTargets(m model.Model, names []string) []playback.Target {
	targets := make([]playback.Target, 0, len(names))
	for _, name := range names {
		if mesh, ok := m.Mesh(name); ok {
			targets = append(targets, mesh)
		}
	}
	return targets
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
