package config

import (
	"time"

	"github.com/nikmy/gameprefs/internal/api"
	"github.com/nikmy/gameprefs/pkg/environment"
	"github.com/nikmy/gameprefs/pkg/prefs"
)

type Config struct {
	Environment environment.Env `mapstructure:"environment" yaml:"environment"`
	Log         LogConfig       `mapstructure:"log" yaml:"log"`
	App         AppConfig       `mapstructure:"app" yaml:"app"`
	Storage     StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Inspector   api.Config      `mapstructure:"inspector" yaml:"inspector"`
	Loop        LoopConfig      `mapstructure:"loop" yaml:"loop"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
}

type AppConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	Org  string `mapstructure:"org" yaml:"org"`
}

// StorageType values accepted in StorageConfig.Type.
const (
	StorageDefault = "default"
	StorageNone    = "none"
	StorageFile    = "file"
	StorageMemory  = "memory"
)

type StorageConfig struct {
	Type   string       `mapstructure:"type" yaml:"type"`
	Dir    string       `mapstructure:"dir" yaml:"dir"`
	Format prefs.Format `mapstructure:"format" yaml:"format"`
}

type LoopConfig struct {
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
}
