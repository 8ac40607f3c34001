// Package spaceminer is a small 2D space game built on the engine. The
// player flies a ship with WASD.
package spaceminer

import (
	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/engine"
	"github.com/plus3/sandbox/scene"
)

const (
	Thrust   = 500
	Drag     = 0.98
	MaxSpeed = 400

	// Velocities slower than this are snapped to zero by drag.
	RestSpeed  = 0.1
	FollowRate = 0.1
)

// Ship marks the player's ship.
type Ship struct{}

type Velocity struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// ThrustInput is the requested thrust direction for this tick, each axis in
// [-1, 1].
type ThrustInput struct {
	X, Y float32
}

// Register adds the game's components to the world and the scene format.
func Register(registry *ecs.ComponentRegistry, codecs *scene.Codecs) {
	scene.Register[Ship](registry, codecs, "spaceminer.Ship")
	scene.Register[Velocity](registry, codecs, "spaceminer.Velocity")
}

// RegisterSystems adds the game systems in update order. cond gates all of
// them, nil runs them every tick.
func RegisterSystems(scheduler *ecs.Scheduler, cond ecs.RunCondition) {
	scheduler.RegisterIf(&KeyboardSystem{}, cond)
	scheduler.RegisterIf(&ThrustSystem{}, cond)
	scheduler.RegisterIf(&DragSystem{}, cond)
	scheduler.RegisterIf(&MovementSystem{}, cond)
	scheduler.RegisterIf(&CameraFollowSystem{}, cond)
}

var (
	ShipColor = engine.Color{R: 51, G: 153, B: 230, A: 255}
	StarColor = engine.Color{R: 255, G: 255, B: 255, A: 128}
)

const StarCount = 50

// Setup spawns the ship at the origin and a fixed field of background stars.
// Returns the ship.
func Setup(storage *ecs.Storage) ecs.EntityId {
	ship := storage.Spawn(
		Ship{},
		Velocity{},
		engine.Name("Ship"),
		engine.Sprite{Color: ShipColor, Width: 40, Height: 50},
		engine.NewTransform(0, 0),
	)

	for i := range StarCount {
		x := float32((i*137)%2000) - 1000
		y := float32((i*251)%2000) - 1000
		size := float32((i%3)+1) * 2

		star := engine.NewTransform(x, y)
		star.Z = -1
		storage.Spawn(
			engine.Sprite{Color: StarColor, Width: size, Height: size},
			star,
		)
	}
	return ship
}
