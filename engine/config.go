package engine

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds process settings. Values come from SANDBOX_* environment
// variables, then command-line flags.
type Config struct {
	AssetsDir    string `env:"SANDBOX_ASSETS_DIR" envDefault:"assets"`
	ScenesDir    string `env:"SANDBOX_SCENES_DIR" envDefault:"assets/scenes"`
	PrefabsDir   string `env:"SANDBOX_PREFABS_DIR" envDefault:"assets/prefabs"`
	LogLevel     string `env:"SANDBOX_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"SANDBOX_LOG_FORMAT" envDefault:"console"`
	WindowWidth  int    `env:"SANDBOX_WINDOW_WIDTH" envDefault:"1280"`
	WindowHeight int    `env:"SANDBOX_WINDOW_HEIGHT" envDefault:"720"`
	TickRate     int    `env:"SANDBOX_TICK_RATE" envDefault:"60"`
}

// ParseEnv reads Config from the environment.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// BindFlags registers flags on fs that override cfg's current values.
func (cfg *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&cfg.AssetsDir, "assets", cfg.AssetsDir, "assets directory")
	fs.StringVar(&cfg.ScenesDir, "scenes", cfg.ScenesDir, "scenes directory")
	fs.StringVar(&cfg.PrefabsDir, "prefabs", cfg.PrefabsDir, "prefabs directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console, json)")
	fs.IntVar(&cfg.WindowWidth, "width", cfg.WindowWidth, "window width")
	fs.IntVar(&cfg.WindowHeight, "height", cfg.WindowHeight, "window height")
	fs.IntVar(&cfg.TickRate, "tps", cfg.TickRate, "simulation ticks per second")
}

// LoadConfig parses the environment and then args.
func LoadConfig(name string, args []string) (Config, error) {
	cfg, err := ParseEnv()
	if err != nil {
		return Config{}, err
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (cfg Config) Validate() error {
	if cfg.WindowWidth <= 0 || cfg.WindowHeight <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", cfg.WindowWidth, cfg.WindowHeight)
	}
	if cfg.TickRate <= 0 {
		return fmt.Errorf("tick rate %d must be positive", cfg.TickRate)
	}
	return nil
}

// TickSeconds is the fixed simulation step.
func (cfg Config) TickSeconds() float64 {
	return 1 / float64(cfg.TickRate)
}
