package spaceminer_test

import (
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/engine"
	"github.com/plus3/sandbox/spaceminer"
)

func newApp() *engine.App {
	return engine.NewApp(engine.Config{WindowWidth: 640, WindowHeight: 480, TickRate: 60}, nil, spaceminer.Register)
}

func keys(held ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, h := range held {
			if h == k {
				return true
			}
		}
		return false
	}
}

func TestSetup(t *testing.T) {
	app := newApp()
	ship := spaceminer.Setup(app.Storage)

	assert.True(t, app.Storage.HasComponent(ship, reflect.TypeFor[spaceminer.Ship]()))
	sprite := ecs.ReadComponent[engine.Sprite](app.Storage, ship)
	assert.Equal(t, float32(40), sprite.Width)
	assert.Equal(t, float32(50), sprite.Height)

	snap, err := app.Serializer().Capture(app.Storage)
	require.NoError(t, err)
	assert.Equal(t, 1+spaceminer.StarCount, snap.Len())

	stars := 0
	for _, id := range app.Storage.Entities() {
		if id == ship || id == app.Camera {
			continue
		}
		tr := ecs.ReadComponent[engine.Transform](app.Storage, id)
		assert.Equal(t, float32(-1), tr.Z)
		assert.GreaterOrEqual(t, tr.X, float32(-1000))
		assert.Less(t, tr.X, float32(1000))
		stars++
	}
	assert.Equal(t, spaceminer.StarCount, stars)
}

func TestThrustAndDrag(t *testing.T) {
	app := newApp()
	ship := spaceminer.Setup(app.Storage)

	app.Systems.Register(&spaceminer.KeyboardSystem{Pressed: keys(ebiten.KeyD)})
	app.Systems.Register(&spaceminer.ThrustSystem{})
	app.Systems.Register(&spaceminer.DragSystem{})

	app.Systems.Once(0.1)

	v := ecs.ReadComponent[spaceminer.Velocity](app.Storage, ship)
	assert.InDelta(t, 50*spaceminer.Drag, v.X, 1e-3)
	assert.Zero(t, v.Y)
}

func TestThrustDiagonalIsNormalized(t *testing.T) {
	app := newApp()
	ship := spaceminer.Setup(app.Storage)
	app.Systems.Register(&spaceminer.KeyboardSystem{Pressed: keys(ebiten.KeyW, ebiten.KeyA)})
	app.Systems.Register(&spaceminer.ThrustSystem{})

	app.Systems.Once(0.1)

	v := ecs.ReadComponent[spaceminer.Velocity](app.Storage, ship)
	assert.InDelta(t, -35.355, v.X, 1e-2)
	assert.InDelta(t, 35.355, v.Y, 1e-2)
}

func TestThrustCapsSpeed(t *testing.T) {
	app := newApp()
	ship := spaceminer.Setup(app.Storage)
	*ecs.ReadComponent[spaceminer.Velocity](app.Storage, ship) = spaceminer.Velocity{X: 300, Y: 400}
	app.Systems.Register(&spaceminer.ThrustSystem{})

	app.Systems.Once(0.1)

	v := ecs.ReadComponent[spaceminer.Velocity](app.Storage, ship)
	assert.InDelta(t, 240, v.X, 1e-3)
	assert.InDelta(t, 320, v.Y, 1e-3)
}

func TestDragSnapsToRest(t *testing.T) {
	app := newApp()
	id := app.Storage.Spawn(spaceminer.Velocity{X: 0.05, Y: 0.05})
	app.Systems.Register(&spaceminer.DragSystem{})

	app.Systems.Once(0.1)

	assert.Equal(t, spaceminer.Velocity{}, *ecs.ReadComponent[spaceminer.Velocity](app.Storage, id))
}

func TestMovementAndCameraFollow(t *testing.T) {
	app := newApp()
	ship := app.Storage.Spawn(spaceminer.Ship{}, spaceminer.Velocity{X: 10}, engine.NewTransform(0, 0))
	app.Systems.Register(&spaceminer.MovementSystem{})
	app.Systems.Register(&spaceminer.CameraFollowSystem{})

	app.Systems.Once(1)
	app.Systems.Once(1)
	app.Systems.Once(1)

	tr := ecs.ReadComponent[engine.Transform](app.Storage, ship)
	assert.Equal(t, float32(30), tr.X)

	cam := ecs.ReadComponent[engine.Transform](app.Storage, app.Camera)
	// 1, then 1+0.1*(20-1), then 2.9+0.1*(30-2.9)
	assert.InDelta(t, 5.61, cam.X, 1e-4)
}

func TestRegisterSystemsGated(t *testing.T) {
	app := newApp()
	ship := app.Storage.Spawn(spaceminer.Ship{}, spaceminer.Velocity{X: 100}, engine.NewTransform(0, 0))

	playing := false
	spaceminer.RegisterSystems(app.Systems, func() bool { return playing })

	app.Tick()
	assert.Zero(t, ecs.ReadComponent[engine.Transform](app.Storage, ship).X)

	playing = true
	app.Tick()
	assert.Greater(t, ecs.ReadComponent[engine.Transform](app.Storage, ship).X, float32(0))
}
