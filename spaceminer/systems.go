package spaceminer

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/engine"
)

// KeyboardSystem turns WASD into ThrustInput. Pressed defaults to
// ebiten.IsKeyPressed.
type KeyboardSystem struct {
	Pressed func(ebiten.Key) bool
}

func (s *KeyboardSystem) Execute(frame *ecs.UpdateFrame) {
	pressed := s.Pressed
	if pressed == nil {
		pressed = ebiten.IsKeyPressed
	}

	var in ThrustInput
	if pressed(ebiten.KeyW) {
		in.Y++
	}
	if pressed(ebiten.KeyS) {
		in.Y--
	}
	if pressed(ebiten.KeyA) {
		in.X--
	}
	if pressed(ebiten.KeyD) {
		in.X++
	}
	frame.Storage.AddSingleton(in)
}

// ThrustSystem accelerates ships toward ThrustInput and caps their speed.
type ThrustSystem struct {
	Input ecs.Singleton[ThrustInput]
	Ships ecs.Query[struct {
		*Ship
		*Velocity
	}]
}

func (s *ThrustSystem) Execute(frame *ecs.UpdateFrame) {
	var dx, dy float32
	if in := s.Input.Get(); in != nil {
		dx, dy = in.X, in.Y
	}
	dt := float32(frame.DeltaTime)

	for ship := range s.Ships.Values() {
		v := ship.Velocity
		if l := length(dx, dy); l > 0 {
			v.X += dx / l * Thrust * dt
			v.Y += dy / l * Thrust * dt
		}
		if l := length(v.X, v.Y); l > MaxSpeed {
			v.X = v.X / l * MaxSpeed
			v.Y = v.Y / l * MaxSpeed
		}
	}
}

// DragSystem slows every moving entity a little each tick.
type DragSystem struct {
	Moving ecs.Query[struct{ *Velocity }]
}

func (s *DragSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Moving.Values() {
		v := item.Velocity
		v.X *= Drag
		v.Y *= Drag
		if length(v.X, v.Y) < RestSpeed {
			*v = Velocity{}
		}
	}
}

type MovementSystem struct {
	Moving ecs.Query[struct {
		*Velocity
		*engine.Transform
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for item := range s.Moving.Values() {
		item.Transform.X += item.Velocity.X * dt
		item.Transform.Y += item.Velocity.Y * dt
	}
}

// CameraFollowSystem eases the camera toward the ship.
type CameraFollowSystem struct {
	Ships ecs.Query[struct {
		*Ship
		*engine.Transform
	}]
	Cameras ecs.Query[struct {
		*engine.Camera
		*engine.Transform
	}]
}

func (s *CameraFollowSystem) Execute(frame *ecs.UpdateFrame) {
	var target *engine.Transform
	for ship := range s.Ships.Values() {
		target = ship.Transform
		break
	}
	if target == nil {
		return
	}
	for cam := range s.Cameras.Values() {
		cam.Transform.X += (target.X - cam.Transform.X) * FollowRate
		cam.Transform.Y += (target.Y - cam.Transform.Y) * FollowRate
	}
}

func length(x, y float32) float32 {
	return float32(math.Hypot(float64(x), float64(y)))
}
