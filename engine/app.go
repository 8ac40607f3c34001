package engine

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/scene"
)

// App is an ebiten.Game driving a world with two schedulers: Systems runs
// once per fixed tick in Update, Renderers once per Draw.
type App struct {
	Config    Config
	Logger    *zap.Logger
	Registry  *ecs.ComponentRegistry
	Codecs    *scene.Codecs
	Storage   *ecs.Storage
	Systems   *ecs.Scheduler
	Renderers *ecs.Scheduler
	Assets    *AssetCache
	Camera    ecs.EntityId

	render *RenderSystem
}

// NewApp builds the world, registers the engine components plus any extra
// registrations, and spawns the camera.
func NewApp(cfg Config, logger *zap.Logger, register ...func(*ecs.ComponentRegistry, *scene.Codecs)) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := ecs.NewComponentRegistry()
	codecs := scene.NewCodecs()
	RegisterComponents(registry, codecs)
	for _, r := range register {
		r(registry, codecs)
	}

	storage := ecs.NewStorage(registry)
	app := &App{
		Config:    cfg,
		Logger:    logger,
		Registry:  registry,
		Codecs:    codecs,
		Storage:   storage,
		Systems:   ecs.NewScheduler(storage),
		Renderers: ecs.NewScheduler(storage),
		Assets:    NewAssetCache(cfg.AssetsDir),
		render:    &RenderSystem{},
	}
	app.Camera = SpawnCamera(storage)
	app.Renderers.Register(app.render)
	return app
}

// InstallEngineSystems registers asset sync unconditionally and sprite
// animation under gameplay.
func (a *App) InstallEngineSystems(gameplay ecs.RunCondition) {
	a.Systems.Register(&AssetSyncSystem{Loader: a.Assets, Logger: a.Logger.Named("assets")})
	a.Systems.RegisterIf(&SpriteAnimationSystem{}, gameplay)
}

// Serializer returns a scene serializer over the app's codecs using the
// default policy.
func (a *App) Serializer() *scene.Serializer {
	return scene.NewSerializer(a.Codecs, DefaultPolicy())
}

// Tick advances Systems by one fixed step.
func (a *App) Tick() {
	a.Systems.Once(a.Config.TickSeconds())
}

func (a *App) Update() error {
	a.Tick()
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	a.render.Screen = screen
	a.Renderers.Once(0)
	a.render.Screen = nil
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it closes.
func (a *App) Run(title string) error {
	return a.RunWith(a, title)
}

// RunWith runs game, usually a wrapper around a, with a's window settings.
func (a *App) RunWith(game ebiten.Game, title string) error {
	ebiten.SetWindowSize(a.Config.WindowWidth, a.Config.WindowHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(a.Config.TickRate)
	return ebiten.RunGame(game)
}
