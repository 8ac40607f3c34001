package engine_test

import (
	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/engine"
)

func testConfig() engine.Config {
	return engine.Config{
		AssetsDir:    "testdata",
		WindowWidth:  640,
		WindowHeight: 480,
		TickRate:     60,
	}
}

func newApp() *engine.App {
	return engine.NewApp(testConfig(), nil)
}

func named(storage *ecs.Storage, name engine.Name) (ecs.EntityId, bool) {
	for _, id := range storage.Entities() {
		if n := ecs.ReadComponent[engine.Name](storage, id); n != nil && *n == name {
			return id, true
		}
	}
	return 0, false
}
