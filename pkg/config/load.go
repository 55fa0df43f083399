package config

import (
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nikmy/gameprefs/pkg/errors"
	"github.com/nikmy/gameprefs/pkg/prefs"
)

const EnvPrefix = "PREFSDEMO"

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"env":            "environment",
	"log-level":      "log.level",
	"log-file":       "log.file",
	"app":            "app.name",
	"org":            "app.org",
	"storage":        "storage.type",
	"storage-dir":    "storage.dir",
	"format":         "storage.format",
	"inspector-addr": "inspector.http.addr",
	"interval":       "loop.interval",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("app.name", "prefsdemo")
	v.SetDefault("app.org", "")
	v.SetDefault("storage.type", StorageDefault)
	v.SetDefault("storage.dir", "")
	v.SetDefault("storage.format", "toml")
	v.SetDefault("inspector.enabled", true)
	v.SetDefault("inspector.http.addr", "127.0.0.1:7878")
	v.SetDefault("inspector.http.read_timeout", 5*time.Second)
	v.SetDefault("inspector.http.write_timeout", 5*time.Second)
	v.SetDefault("inspector.http.idle_timeout", time.Minute)
	v.SetDefault("inspector.call_timeout", 2*time.Second)
	v.SetDefault("loop.interval", 100*time.Millisecond)
}

// Load reads the configuration from defaults, an optional YAML file, the
// PREFSDEMO_* environment and flags, in increasing priority. An empty path
// looks for config.yaml in the working directory and skips it when absent.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for flag, key := range flagKeys {
			f := flags.Lookup(flag)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.WrapFailf(err, "bind flag %q", flag)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.WrapFail(err, "read config file")
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
		StringToFormatHookFunc(),
	)))
	if err != nil {
		return nil, errors.WrapFail(err, "decode config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// StringToFormatHookFunc decodes "toml", "json" and "yaml" into prefs.Format.
func StringToFormatHookFunc() mapstructure.DecodeHookFuncType {
	formatType := reflect.TypeOf((*prefs.Format)(nil)).Elem()

	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != formatType {
			return data, nil
		}

		name := reflect.ValueOf(data).String()
		if name == "" {
			return prefs.TOML, nil
		}
		f, ok := prefs.FormatByName(name)
		if !ok {
			return nil, errors.Errorf("unknown preferences format %q", name)
		}
		return f, nil
	}
}

func (c *Config) validate() error {
	switch c.Storage.Type {
	case StorageDefault, StorageNone, StorageFile, StorageMemory:
	default:
		return errors.Errorf("unknown storage type %q", c.Storage.Type)
	}

	if c.Storage.Type == StorageFile && c.Storage.Dir == "" {
		return errors.Error("storage type \"file\" needs storage.dir")
	}
	if c.Storage.Type != StorageNone && c.App.Name == "" {
		return errors.Error("app.name is required to persist preferences")
	}
	if c.Loop.Interval <= 0 {
		return errors.Errorf("loop.interval must be positive, got %s", c.Loop.Interval)
	}
	return nil
}
