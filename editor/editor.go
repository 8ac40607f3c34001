package editor

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/engine"
	"github.com/plus3/sandbox/playmode"
	"github.com/plus3/sandbox/scene"
)

// Options configures New. Every field is optional.
type Options struct {
	// Backend draws the panels. Without one the editor runs headless:
	// panels are not drawn and ImGui never captures input.
	Backend *Backend
	Keys    Keys
	Pointer func() Pointer
	// Speaker enables audio preview in the asset browser.
	Speaker Speaker
	Logger  *zap.Logger
}

// Editor is an ebiten.Game wrapping an engine App with editing tools and
// play mode. Gameplay systems belong in App.Systems, registered after New
// and gated on Machine.Gate so they only run while playing.
type Editor struct {
	App       *engine.App
	Machine   *playmode.Machine
	Scenes    *scene.Manager
	Files     *SceneFiles
	Selection *Selection
	Status    *Status
	Gizmo     *Gizmo
	Toolbar   *Toolbar
	Hierarchy *HierarchyPanel
	Inspector *Inspector
	Assets    *AssetBrowser
	Animation *AnimationEditor
	Stats     *StatsPanel
	// UI runs the panel system between ImGui's BeginFrame and EndFrame.
	UI *ecs.Scheduler

	backend *Backend
	keys    Keys
	logger  *zap.Logger
	timer   *FrameTimer
}

// New builds the editor around app. It registers the play-mode transition
// system, the engine systems and the gizmo on app.Systems, so call it
// before registering gameplay systems.
func New(app *engine.App, opts Options) *Editor {
	logger := opts.Logger
	if logger == nil {
		logger = app.Logger
	}
	logger = logger.Named("editor")
	keys := opts.Keys
	if keys == nil {
		keys = ebitenKeys{}
	}

	storage := app.Storage
	ecs.RegisterComponent[Panel](app.Registry)
	storage.AddSingleton(InputCapture{})

	serializer := app.Serializer()
	e := &Editor{
		App:       app,
		Machine:   playmode.New(storage, serializer, app.Logger),
		Scenes:    scene.NewManager(storage, serializer, logger.Named("scene")),
		Selection: &Selection{},
		Status:    &Status{},
		UI:        ecs.NewScheduler(storage),
		backend:   opts.Backend,
		keys:      keys,
		logger:    logger,
		timer:     NewFrameTimer(),
	}
	e.Machine.Subscribe(e.Status.OnPlayEvent)

	e.Files = &SceneFiles{
		Manager:    e.Scenes,
		Machine:    e.Machine,
		Status:     e.Status,
		Selection:  e.Selection,
		ScenesDir:  app.Config.ScenesDir,
		PrefabsDir: app.Config.PrefabsDir,
		Logger:     logger,
	}
	e.Gizmo = &Gizmo{
		Selection: e.Selection,
		Policy:    serializer.Policy,
		Width:     float32(app.Config.WindowWidth),
		Height:    float32(app.Config.WindowHeight),
		Pointer:   opts.Pointer,
		OnMove:    e.MarkDirty,
	}
	e.Toolbar = &Toolbar{Machine: e.Machine}
	e.Hierarchy = &HierarchyPanel{
		Storage:   storage,
		Selection: e.Selection,
		Policy:    serializer.Policy,
		OnEdit:    e.MarkDirty,
	}
	e.Inspector = &Inspector{
		Storage:   storage,
		Selection: e.Selection,
		Defaults:  DefaultComponents(),
		OnEdit:    e.MarkDirty,
		OnError:   e.reportError,
	}
	e.Animation = NewAnimationEditor(storage, e.Selection)
	e.Animation.OnEdit = e.MarkDirty
	e.Animation.OnError = e.reportError
	e.Assets = &AssetBrowser{
		Root:        app.Config.AssetsDir,
		AssignImage: e.AssignImage,
		OnError:     e.reportError,
	}
	if opts.Speaker != nil {
		e.Assets.Audio = NewAudioPreview(opts.Speaker)
	}
	if err := e.Assets.Rescan(); err != nil {
		logger.Warn("scan assets", zap.Error(err))
	}
	e.Stats = &StatsPanel{
		Storage: storage,
		Systems: app.Systems,
		Machine: e.Machine,
		History: NewFrameHistory(120),
	}

	app.Systems.Register(&playmode.TransitionSystem{Machine: e.Machine})
	app.InstallEngineSystems(e.Machine.Gate())
	app.Systems.RegisterIf(e.Gizmo, e.Machine.EditGate())

	if e.backend != nil {
		e.UI.Register(&PanelSystem{})
	}
	for i, p := range []struct {
		title  string
		render func()
	}{
		{"Toolbar", e.Toolbar.Render},
		{"Scene", e.Files.Render},
		{"Hierarchy", e.Hierarchy.Render},
		{"Inspector", e.Inspector.Render},
		{"Animation", e.Animation.Render},
		{"Assets", e.Assets.Render},
		{"Stats", e.Stats.Render},
		{"Status", e.Status.Render},
	} {
		storage.Spawn(Panel{Title: p.title, Order: i, Visible: true, Render: p.render}, scene.EditorOnly{})
	}
	return e
}

// MarkDirty flags unsaved scene edits. Edits made during play are thrown
// away on Stop, so they never dirty the scene.
func (e *Editor) MarkDirty() {
	if !e.Machine.InPlayMode() {
		e.Scenes.MarkDirty()
	}
}

func (e *Editor) reportError(err error) {
	e.logger.Warn("edit failed", zap.Error(err))
	e.Status.Errorf("%v", err)
}

// AssignImage points the selected entity's sprite at the image asset at
// path, adding a Sprite sized from the image if it has none.
func (e *Editor) AssignImage(path string) error {
	storage := e.App.Storage
	id, ok := e.Selection.Entity(storage)
	if !ok {
		return ErrNoSelection
	}
	if ecs.ReadComponent[engine.Sprite](storage, id) == nil {
		id = storage.AddComponent(id, engine.Sprite{Color: engine.White})
	}
	storage.AddComponent(id, engine.AssetPath{Path: path})
	e.MarkDirty()
	e.Status.Successf("Assigned %s", path)
	return nil
}

// Apply runs a shortcut action.
func (e *Editor) Apply(action Action) error {
	switch action {
	case ActionNewScene:
		return e.Files.New()
	case ActionSave:
		return e.Files.Save()
	case ActionSaveAs:
		return e.Files.SaveAs(e.Files.Name)
	case ActionLoad:
		return e.Files.Load(e.Files.Name)
	case ActionPlayStop:
		if e.Machine.InPlayMode() {
			e.Machine.Submit(playmode.RequestStop)
		} else {
			e.Machine.Submit(playmode.RequestPlay)
		}
	case ActionPauseResume:
		e.Machine.Submit(playmode.RequestTogglePause)
	}
	return nil
}

func (e *Editor) Update() error {
	dt := e.timer.Lap()
	e.Stats.History.Record(dt)
	e.Status.Tick(dt)

	if e.backend != nil {
		e.backend.BeginFrame()
		defer e.backend.EndFrame()
	}
	e.UI.Once(dt.Seconds())

	var capture *InputCapture
	if !e.App.Storage.ReadSingleton(&capture) || !capture.Keyboard {
		// Failures are already on the status line
		_ = e.Apply(ResolveShortcut(e.keys))
	}

	e.App.Tick()
	return nil
}

func (e *Editor) Draw(screen *ebiten.Image) {
	e.App.Draw(screen)
	if !e.Machine.InPlayMode() {
		e.Gizmo.Draw(screen, e.App.Storage)
	}
	if e.backend != nil {
		e.backend.Draw(screen)
	}
}

func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.Gizmo.Width, e.Gizmo.Height = float32(outsideWidth), float32(outsideHeight)
	if e.backend != nil {
		e.backend.Layout(outsideWidth, outsideHeight)
	}
	return e.App.Layout(outsideWidth, outsideHeight)
}

// Run opens the editor window and blocks until it closes.
func (e *Editor) Run(title string) error {
	defer func() {
		if e.Assets.Audio != nil {
			e.Assets.Audio.Stop()
		}
	}()
	return e.App.RunWith(e, title)
}
