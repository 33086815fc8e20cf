// Package config loads runtime configuration from flags and an optional
// YAML file. The button→command bindings live here so remapping a pad never
// touches the edge-detection code.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soar/JoystickCommander/internal/command"
	"github.com/soar/JoystickCommander/internal/joystick"
)

const (
	defaultAddr            = ":8080"
	defaultControlInterval = 100 * time.Millisecond
)

type Config struct {
	// ListenAddr is the HTTP address of the embedded state viewer.
	ListenAddr string `mapstructure:"addr"`
	// NoHTTP disables the viewer entirely.
	NoHTTP bool `mapstructure:"no_http"`
	// Deadzone is the axis deadzone as a fraction of full deflection.
	Deadzone float64 `mapstructure:"deadzone"`

	PollInterval    time.Duration `mapstructure:"poll_interval"`
	RenderInterval  time.Duration `mapstructure:"render_interval"`
	ControlInterval time.Duration `mapstructure:"control_interval"`

	// Commands binds button indices to command ids.
	Commands []command.Binding `mapstructure:"commands"`
}

// Load parses command line arguments (excluding the program name) and the
// optional config file. A missing config file is fine; an unreadable or
// invalid one is a startup error.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("joystickcommander", pflag.ContinueOnError)
	cfgPath := fs.String("config", "", "path to a YAML config file")
	fs.String("addr", defaultAddr, "HTTP listen address for the state viewer")
	fs.Bool("no-http", false, "disable the embedded state viewer")
	fs.Float64("deadzone", joystick.DefaultDeadzone, "axis deadzone as a fraction of full deflection")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("addr", defaultAddr)
	v.SetDefault("no_http", false)
	v.SetDefault("deadzone", joystick.DefaultDeadzone)
	v.SetDefault("poll_interval", joystick.DefaultPollInterval)
	v.SetDefault("render_interval", command.DefaultRenderInterval)
	v.SetDefault("control_interval", defaultControlInterval)
	v.SetDefault("commands", command.DefaultBindings())

	for flag, key := range map[string]string{
		"addr":     "addr",
		"no-http":  "no_http",
		"deadzone": "deadzone",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, err
		}
	}

	if *cfgPath != "" {
		v.SetConfigFile(*cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("joystickcommander")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/joystickcommander")
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Deadzone < 0 || c.Deadzone >= 1 {
		return fmt.Errorf("deadzone %v out of range [0, 1)", c.Deadzone)
	}
	if c.PollInterval <= 0 || c.RenderInterval <= 0 || c.ControlInterval <= 0 {
		return errors.New("intervals must be positive")
	}
	for _, b := range c.Commands {
		if b.Button < 0 {
			return fmt.Errorf("command binding has negative button index %d", b.Button)
		}
	}
	return nil
}
