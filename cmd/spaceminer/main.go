// Command spaceminer runs the demo game without the editor.
package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/plus3/sandbox/engine"
	"github.com/plus3/sandbox/internal/logging"
	"github.com/plus3/sandbox/spaceminer"
)

func main() {
	cfg, err := engine.ParseEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.BindFlags(flag.CommandLine)
	scenePath := flag.String("scene", "", "scene file to play instead of the default setup")
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
	app.InstallEngineSystems(nil)
	spaceminer.RegisterSystems(app.Systems, nil)

	if *scenePath != "" {
		if err := app.Serializer().Load(app.Storage, *scenePath); err != nil {
			logger.Fatal("load scene", zap.String("path", *scenePath), zap.Error(err))
		}
	} else {
		spaceminer.Setup(app.Storage)
	}

	if err := app.Run("Space Miner"); err != nil {
		logger.Fatal("game exited", zap.Error(err))
	}
}
