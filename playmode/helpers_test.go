package playmode_test

import (
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/engine"
	"github.com/plus3/sandbox/playmode"
	"github.com/plus3/sandbox/scene"
	"github.com/plus3/sandbox/spaceminer"
)

// Scratch is registered with the world but has no codec, so any scene
// entity carrying it makes capture fail.
type Scratch struct {
	N int
}

func registerScratch(registry *ecs.ComponentRegistry, _ *scene.Codecs) {
	ecs.RegisterComponent[Scratch](registry)
}

// countingSnapshotter wraps a serializer, counting calls and optionally
// failing restores.
type countingSnapshotter struct {
	inner       playmode.Snapshotter
	captures    int
	restores    int
	failRestore error
}

func (c *countingSnapshotter) Capture(storage *ecs.Storage) (*scene.Snapshot, error) {
	c.captures++
	return c.inner.Capture(storage)
}

func (c *countingSnapshotter) Restore(storage *ecs.Storage, snap *scene.Snapshot) error {
	c.restores++
	if c.failRestore != nil {
		return c.failRestore
	}
	return c.inner.Restore(storage, snap)
}

var errDiskOnFire = errors.New("disk on fire")

type harness struct {
	app       *engine.App
	snapshots *countingSnapshotter
	machine   *playmode.Machine
	events    []playmode.Event
}

func newHarness(logger *zap.Logger) *harness {
	app := engine.NewApp(engine.Config{WindowWidth: 640, WindowHeight: 480, TickRate: 60}, nil,
		spaceminer.Register, registerScratch)
	snapshots := &countingSnapshotter{inner: app.Serializer()}
	h := &harness{
		app:       app,
		snapshots: snapshots,
		machine:   playmode.New(app.Storage, snapshots, logger),
	}
	h.machine.Subscribe(func(e playmode.Event) { h.events = append(h.events, e) })
	app.Systems.RegisterIf(&spaceminer.MovementSystem{}, h.machine.Gate())
	return h
}

func (h *harness) storage() *ecs.Storage {
	return h.app.Storage
}

func (h *harness) tick(n int) {
	for range n {
		h.app.Systems.Once(1)
	}
}

func (h *harness) ships() []ecs.EntityId {
	var ids []ecs.EntityId
	for _, id := range h.storage().Entities() {
		if ecs.ReadComponent[spaceminer.Ship](h.storage(), id) != nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func (h *harness) spawnShip() ecs.EntityId {
	return h.storage().Spawn(
		spaceminer.Ship{},
		spaceminer.Velocity{X: 10},
		engine.NewTransform(0, 0),
		engine.Name("Ship"),
	)
}

func (h *harness) named(name engine.Name) (ecs.EntityId, bool) {
	for _, id := range h.storage().Entities() {
		if n := ecs.ReadComponent[engine.Name](h.storage(), id); n != nil && *n == name {
			return id, true
		}
	}
	return 0, false
}

// contents lists every captured component as type and data, ignoring tokens
// and record order.
func contents(snap *scene.Snapshot) []string {
	var out []string
	for _, rec := range snap.Records {
		for _, c := range rec.Components {
			out = append(out, c.Type+" "+string(c.Data))
		}
	}
	slices.Sort(out)
	return out
}
