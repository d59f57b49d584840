package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/pixfx"
	"github.com/gogpu/pixfx/effect"
	"github.com/gogpu/pixfx/internal/config"
)

// rootOptions are the persistent flags shared by all subcommands.
type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "pixfx",
		Short:        "Apply pixel effects to images",
		Long:         `pixfx loads raster images, runs a chain of pixel effects over them and writes the results.`,
		SilenceUsage: true,
	}
	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		level := slog.LevelInfo
		if opts.verbose {
			level = slog.LevelDebug
		}
		pixfx.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: level,
		})))
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (TOML), read after ~/.config/pixfx/config.toml and ./pixfx.toml")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newApplyCmd(opts), newListCmd(opts))
	return cmd
}

// load reads the configuration and builds the effect registry from it.
func (o *rootOptions) load() (*config.Config, *effect.Registry, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, effect.Builtin(cfg.EffectSettings()), nil
}
