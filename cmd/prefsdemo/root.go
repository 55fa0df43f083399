package main

import (
	"github.com/spf13/cobra"

	"github.com/nikmy/gameprefs/pkg/config"
	"github.com/nikmy/gameprefs/pkg/errors"
	"github.com/nikmy/gameprefs/pkg/logger"
)

type cli struct {
	configPath string

	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "prefsdemo",
		Short: "Demo game that persists its settings between runs",
		Long: `prefsdemo registers a few settings types (graphics, audio, session stats),
loads them from the platform preferences location at startup and saves them
whenever they change.

Settings can be inspected and changed over HTTP while "prefsdemo run" is active.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Configuration file path (default ./config.yaml if present)")
	flags.String("env", "", "Environment (dev, prod)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Log file, rotated by size ('-' for stderr)")
	flags.String("app", "", "Application name used for the preferences location")
	flags.String("org", "", "Organization name, prefixed to the application name")
	flags.String("storage", "", "Storage type (default, file, memory, none)")
	flags.String("storage-dir", "", "Parent directory for file storage")
	flags.String("format", "", "File format (toml, json, yaml)")

	root.AddCommand(
		newRunCmd(c),
		newShowCmd(c),
		newPathCmd(c),
		newResetCmd(c),
	)

	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath, cmd.Flags())
	if err != nil {
		return errors.WrapFail(err, "load config")
	}

	log, err := logger.New(
		cfg.Environment,
		logger.WithLevel(cfg.Log.Level),
		logger.WithFile(cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups),
	)
	if err != nil {
		return errors.WrapFail(err, "init logger")
	}

	c.cfg = cfg
	c.log = log
	return nil
}
