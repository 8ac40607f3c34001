package ecs_test

import (
	"fmt"
	"reflect"

	"github.com/plus3/sandbox/ecs"
)

// ExampleStorage spawns an entity, grows it by one component and shrinks it
// again. Each change moves the entity to the archetype for its new set.
func ExampleStorage() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	storage := ecs.NewStorage(registry)

	ship := storage.Spawn(Position{X: 10, Y: 20})
	ship = storage.AddComponent(ship, Velocity{DX: 5, DY: 3})

	pos := ecs.ReadComponent[Position](storage, ship)
	vel := ecs.ReadComponent[Velocity](storage, ship)
	fmt.Printf("at (%.0f, %.0f) moving (%.0f, %.0f)\n", pos.X, pos.Y, vel.DX, vel.DY)

	ship = storage.RemoveComponent(ship, reflect.TypeFor[Velocity]())
	fmt.Println("moving:", storage.HasComponent(ship, reflect.TypeFor[Velocity]()))

	storage.Delete(ship)
	fmt.Println("alive:", storage.Exists(ship))

	// Output:
	// at (10, 20) moving (5, 3)
	// moving: false
	// alive: false
}

// ExampleView reads entities through a struct of component pointers. Fields
// tagged optional are nil when the entity lacks them.
func ExampleView() {
	storage := ecs.NewStorage(newTestRegistry())
	miner := storage.Spawn(Position{X: 1}, Name{Value: "miner"})
	probe := storage.Spawn(Position{X: 2})

	view := ecs.NewView[struct {
		Position *Position
		Name     *Name `ecs:"optional"`
	}](storage)

	for _, id := range []ecs.EntityId{miner, probe} {
		item := view.Get(id)
		name := "(unnamed)"
		if item.Name != nil {
			name = item.Name.Value
		}
		fmt.Printf("%.0f %s\n", item.Position.X, name)
	}

	// Output:
	// 1 miner
	// 2 (unnamed)
}

type drift struct {
	Bodies ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *drift) Execute(frame *ecs.UpdateFrame) {
	for body := range s.Bodies.Values() {
		body.Position.X += body.Velocity.DX * float32(frame.DeltaTime)
	}
}

// ExampleScheduler_RegisterIf gates a system behind a run condition. The
// scheduler initializes Query fields on registration.
func ExampleScheduler_RegisterIf() {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{}, Velocity{DX: 2})

	running := false
	scheduler := ecs.NewScheduler(storage)
	scheduler.RegisterIf(&drift{}, func() bool { return running })

	scheduler.Once(1)
	fmt.Println("paused:", ecs.ReadComponent[Position](storage, id).X)

	running = true
	scheduler.Once(1)
	scheduler.Once(0.5)
	fmt.Println("running:", ecs.ReadComponent[Position](storage, id).X)

	stats := scheduler.GetStats().Systems[0]
	fmt.Printf("%s ran %d skipped %d\n", stats.Name, stats.ExecutionCount, stats.SkipCount)

	// Output:
	// paused: 0
	// running: 3
	// drift ran 2 skipped 1
}

type cargo struct {
	Ore int
}

// ExampleSingleton shares one value across every accessor of its type.
func ExampleSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	hold := ecs.NewSingleton[cargo](storage, cargo{Ore: 4})
	hold.Get().Ore += 3

	var read *cargo
	storage.ReadSingleton(&read)
	fmt.Println("ore:", read.Ore)

	storage.AddSingleton(cargo{Ore: 1})
	fmt.Println("after overwrite:", hold.Get().Ore)

	// Output:
	// ore: 7
	// after overwrite: 1
}

// ExampleStorage_BindEntityRef re-points an existing ref at a new entity,
// the way a restored world rebinds references held outside it.
func ExampleStorage_BindEntityRef() {
	storage := ecs.NewStorage(newTestRegistry())
	old := storage.Spawn(Name{Value: "old"})
	ref := storage.CreateEntityRef(old)

	storage.Delete(old)
	_, ok := storage.ResolveEntityRef(ref)
	fmt.Println("resolves after delete:", ok)

	fresh := storage.Spawn(Name{Value: "fresh"}, Position{})
	storage.BindEntityRef(ref, fresh)
	id, _ := storage.ResolveEntityRef(ref)
	fmt.Println("bound to:", ecs.ReadComponent[Name](storage, id).Value)

	// Output:
	// resolves after delete: false
	// bound to: fresh
}

type launcher struct{}

func (launcher) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(Position{X: 1}, Velocity{DX: 1})
	frame.Commands.Defer(func() { fmt.Println("launched") })
}

// ExampleCommands defers structural changes until every system has run.
func ExampleCommands() {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(launcher{})

	scheduler.Once(1)
	scheduler.Once(1)
	fmt.Println("entities:", len(storage.Entities()))

	// Output:
	// launched
	// launched
	// entities: 2
}
