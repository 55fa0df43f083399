package api

import "time"

type Config struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	HTTP struct {
		Addr         string        `mapstructure:"addr" yaml:"addr"`
		ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
		WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
		IdleTimeout  time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	} `mapstructure:"http" yaml:"http"`

	// CallTimeout bounds how long a request waits for the update loop.
	CallTimeout time.Duration `mapstructure:"call_timeout" yaml:"call_timeout"`
}
