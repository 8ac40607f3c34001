// Command snapshot-bench measures play-mode capture and restore on a
// populated world.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/engine"
	"github.com/plus3/sandbox/internal/logging"
	"github.com/plus3/sandbox/playmode"
	"github.com/plus3/sandbox/spaceminer"
)

func main() {
	cfg, err := engine.ParseEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.BindFlags(flag.CommandLine)
	entityCount := flag.Int("entities", 5000, "number of scene entities to populate")
	cycles := flag.Int("cycles", 100, "play/stop cycles to run")
	ticks := flag.Int("ticks", 10, "simulation ticks per play session")
	seed := flag.Int64("seed", 1, "random seed for the populated world")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	app := engine.NewApp(cfg, logger, spaceminer.Register)
	machine := playmode.New(app.Storage, app.Serializer(), logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel)))
	app.Systems.Register(&playmode.TransitionSystem{Machine: machine})
	app.InstallEngineSystems(machine.Gate())
	app.Systems.RegisterIf(&spaceminer.MovementSystem{}, machine.Gate())
	app.Systems.RegisterIf(&spaceminer.DragSystem{}, machine.Gate())

	logger.Info("populating world", zap.Int("entities", *entityCount))
	populate(app.Storage, rand.New(rand.NewSource(*seed)), *entityCount)
	baseline := len(app.Storage.Entities())

	report := &Report{
		Entities:       *entityCount,
		Cycles:         *cycles,
		Ticks:          *ticks,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running play sessions", zap.Int("cycles", *cycles), zap.Int("ticks", *ticks))
	start := time.Now()
	for i := range *cycles {
		captureStart := time.Now()
		if err := machine.Play(); err != nil {
			logger.Fatal("play", zap.Int("cycle", i), zap.Error(err))
		}
		report.Capture.Samples = append(report.Capture.Samples, time.Since(captureStart))
		report.SnapshotBytes = machine.Snapshot().Size()
		report.SnapshotRecords = machine.Snapshot().Len()

		for range *ticks {
			app.Tick()
		}

		restoreStart := time.Now()
		if err := machine.Stop(); err != nil {
			logger.Fatal("stop", zap.Int("cycle", i), zap.Error(err))
		}
		report.Restore.Samples = append(report.Restore.Samples, time.Since(restoreStart))

		if n := len(app.Storage.Entities()); n != baseline {
			logger.Fatal("restore changed the entity count",
				zap.Int("cycle", i), zap.Int("want", baseline), zap.Int("got", n))
		}
	}
	report.TotalTime = time.Since(start)
	report.Capture.Finalize()
	report.Restore.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n\n--- Snapshot Benchmark Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

// populate spawns ships with velocity, static sprites, and small parent
// chains so restore has links to remap.
func populate(storage *ecs.Storage, rng *rand.Rand, n int) {
	var parent ecs.EntityId
	for i := range n {
		t := engine.NewTransform(rng.Float32()*2000-1000, rng.Float32()*2000-1000)
		sprite := engine.Sprite{Color: engine.Gray, Width: 8 + rng.Float32()*24, Height: 8 + rng.Float32()*24}

		var id ecs.EntityId
		switch i % 4 {
		case 0:
			id = storage.Spawn(t, sprite, engine.Name(fmt.Sprintf("Ship %d", i)), spaceminer.Ship{},
				spaceminer.Velocity{X: rng.Float32()*200 - 100, Y: rng.Float32()*200 - 100})
		case 1:
			id = storage.Spawn(t, sprite, engine.NewSpriteAnimation(engine.GridFrames(4, 1, 16, 16, 0.1)...))
		default:
			id = storage.Spawn(t, sprite)
		}

		if i%10 != 0 && parent != 0 {
			var err error
			if id, err = engine.SetParent(storage, id, parent); err != nil {
				log.Fatalf("parent: %v", err)
			}
		}
		if i%10 == 0 {
			parent = id
		}
	}
}
