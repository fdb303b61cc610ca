package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/knd/schedrec/internal/registry"
	"github.com/knd/schedrec/internal/schema"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	profile  *schema.Profile
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Result output goes to outW; log records go to logW.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg, logW)
	logger.Debug("Logger configured successfully.")

	profile, err := loadProfile(cfg.ProfilePath)
	if err != nil {
		// A failure to load the schema profile is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Schema profile resolved.", "path", cfg.ProfilePath)

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All operation modules registered.", "count", len(modules))

	return &App{
		outW:     outW,
		logW:     logW,
		logger:   logger,
		registry: reg,
		profile:  profile,
		config:   cfg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

func loadProfile(path string) (*schema.Profile, error) {
	if path == "" {
		return schema.Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("schema profile %s: %w", path, err)
	}
	return schema.Load(path)
}
