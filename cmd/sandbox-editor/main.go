// Command sandbox-editor opens the scene editor with the spaceminer demo
// systems wired into play mode.
package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/plus3/sandbox/editor"
	"github.com/plus3/sandbox/engine"
	"github.com/plus3/sandbox/internal/logging"
	"github.com/plus3/sandbox/spaceminer"
)

const title = "Sandbox Editor"

func main() {
	cfg, err := engine.ParseEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.BindFlags(flag.CommandLine)
	scenePath := flag.String("scene", "", "scene file to open at startup")
	noAudio := flag.Bool("no-audio", false, "disable audio preview")
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
	opts := editor.Options{
		Backend: editor.NewBackend(title, cfg.WindowWidth, cfg.WindowHeight),
		Logger:  logger,
	}
	if !*noAudio {
		speaker, err := editor.OpenSpeaker()
		if err != nil {
			logger.Warn("audio preview disabled", zap.Error(err))
		} else {
			opts.Speaker = speaker
		}
	}

	ed := editor.New(app, opts)
	spaceminer.RegisterSystems(app.Systems, ed.Machine.Gate())

	if *scenePath != "" {
		if err := ed.Files.Load(*scenePath); err != nil {
			logger.Fatal("open scene", zap.String("path", *scenePath), zap.Error(err))
		}
	} else {
		spaceminer.Setup(app.Storage)
		ed.Scenes.MarkClean()
	}

	logger.Info("editor starting",
		zap.String("assets", cfg.AssetsDir),
		zap.String("scenes", cfg.ScenesDir),
		zap.Int("tps", cfg.TickRate),
	)
	if err := ed.Run(title); err != nil {
		logger.Fatal("editor exited", zap.Error(err))
	}
}
