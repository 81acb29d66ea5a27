package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milk9111/glider/config"
	"github.com/milk9111/glider/logger"
)

type flags struct {
	configPath string
	level      string
	logFile    string
	db         string
	debug      bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "glider",
		Short:         "A side-scrolling platformer about gliding, spinning and swinging",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "path to config file")
	pf.StringVar(&f.level, "level", "", "level file (embedded name or path)")
	pf.StringVar(&f.logFile, "log-file", "", "write logs to this rotating file")
	pf.StringVar(&f.db, "db", "", "run history database path")
	pf.BoolVar(&f.debug, "debug", false, "debug logging and hitbox overlay")

	root.AddCommand(newPlayCmd(f), newSimCmd(f), newScoresCmd(f))
	return root
}

func newPlayCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Open the game window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(f)
		},
	}
}

// load resolves config (defaults < file < flags) and starts the logger.
// It returns the config file path, empty when running on defaults.
func (f *flags) load() (*config.Config, string, error) {
	path := config.Path(f.configPath)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	cfg.Apply(config.Overrides{
		Level:   f.level,
		Debug:   f.debug,
		LogFile: f.logFile,
		DB:      f.db,
	})
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, "", fmt.Errorf("init logger: %w", err)
	}
	if path != "" {
		logger.Info("config loaded", zap.String("path", path))
	}
	return cfg, path, nil
}
