package main

import (
	"github.com/nikmy/gameprefs/pkg/builder"
	"github.com/nikmy/gameprefs/pkg/config"
	"github.com/nikmy/gameprefs/pkg/ecs"
	"github.com/nikmy/gameprefs/pkg/errors"
	"github.com/nikmy/gameprefs/pkg/logger"
	"github.com/nikmy/gameprefs/pkg/prefs"
)

func pluginFromConfig(cfg *config.Config) (prefs.Plugin, error) {
	p, err := builder.From(prefs.PersistedWithAppName(cfg.App.Name)).
		If(cfg.App.Org != "", func(p *prefs.Plugin) {
			*p = p.WithOrgName(cfg.App.Org)
		}).
		MaybeUse(func(p *prefs.Plugin) error {
			st, err := storageType(cfg.Storage)
			if err != nil {
				return err
			}
			*p = p.WithStorageType(st)
			return nil
		}).
		Get()
	if err != nil {
		return prefs.Plugin{}, errors.WrapFail(err, "build preferences plugin")
	}
	return *p, nil
}

func storageType(cfg config.StorageConfig) (prefs.StorageType, error) {
	format := cfg.Format
	if format == nil {
		format = prefs.TOML
	}

	switch cfg.Type {
	case config.StorageNone:
		return prefs.NoStorage(), nil
	case config.StorageMemory:
		return prefs.KeyValue(prefs.NewMemoryKeyValueStore()), nil
	case config.StorageFile:
		return prefs.FileSystemWithParentDirectoryAndFormat(cfg.Dir, format), nil
	case config.StorageDefault:
		if format == prefs.TOML {
			return prefs.DefaultStorage(), nil
		}
		return prefs.FileSystemWithFormat(format), nil
	default:
		return prefs.StorageType{}, errors.Errorf("unknown storage type %q", cfg.Type)
	}
}

// newDemoApp builds the app with persistence and the settings registered,
// but without any gameplay systems.
func newDemoApp(cfg *config.Config, log logger.Logger) (*ecs.App, error) {
	plugin, err := pluginFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	app := ecs.New(ecs.WithLogger(log))
	app.AddPlugins(plugin)

	if err := registerSettings(app); err != nil {
		return nil, errors.WrapFail(err, "register settings")
	}
	return app, nil
}
