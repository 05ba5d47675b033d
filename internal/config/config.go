// Package config holds the wizard's fully-typed options, layered from
// defaults, an optional config file, environment variables, and flags, then
// validated once at the CLI boundary before any user interaction begins.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"sprout/internal/validate"
)

// Mode selects which generator the run drives.
type Mode int

const (
	Create Mode = iota
	Clone
)

func (m Mode) String() string {
	if m == Clone {
		return "clone"
	}
	return "create"
}

// Options stores all configuration of the application.
type Options struct {
	ProjectName     string `mapstructure:"project_name"`
	OutputDir       string `mapstructure:"output_dir"`
	GitRemoteURI    string `mapstructure:"git_remote_uri"`
	CloneDirName    string `mapstructure:"clone_dir_name"`
	HubAlias        string `mapstructure:"hub_alias"`
	NamespacePrefix string `mapstructure:"namespace_prefix"`

	// RemoteCheckDelaySeconds paces the remote reachability check so its
	// console line is readable before the next one starts.
	RemoteCheckDelaySeconds int `mapstructure:"remote_check_delay_seconds"`
}

// DefaultOptions returns Options with default values.
func DefaultOptions() *Options {
	return &Options{
		ProjectName: "my-project",
		OutputDir:   ".",
	}
}

// LoadOptions reads configuration from file or environment variables on top
// of the defaults.
func LoadOptions(configPath string) (*Options, error) {
	opts := DefaultOptions()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".sprout"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; defaults and env are enough.
	}

	v.SetEnvPrefix("SPROUT")
	v.AutomaticEnv()

	if err := v.Unmarshal(opts); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return opts, nil
}

// Validate fails fast on options the run cannot proceed without. A
// validation failure here is a contract violation surfaced before any
// interview question is asked.
func (o *Options) Validate(mode Mode) error {
	if o.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if err := validate.LocalPath(o.OutputDir); err != nil {
		return fmt.Errorf("invalid output directory: %w", err)
	}
	if mode == Clone {
		if o.GitRemoteURI == "" {
			return fmt.Errorf("git remote URI is required for clone")
		}
		if err := validate.GitRemoteURI(o.GitRemoteURI); err != nil {
			return fmt.Errorf("invalid git remote URI: %w", err)
		}
	}
	if o.ProjectName != "" {
		if err := validate.ProjectName(o.ProjectName); err != nil {
			return err
		}
	}
	return nil
}
