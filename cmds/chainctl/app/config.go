package app

import (
	"os"
	"path/filepath"

	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/goutils/generics"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/chaincomposer/pkg/generator"
)

const CONFIG_FILE = ".chainctl"

const (
	ENV_LOG_LEVEL = "CHAINCTL_LOG_LEVEL"
	ENV_OUTPUT    = "CHAINCTL_OUTPUT"
)

type Config struct {
	LogLevel  *string            `json:"logLevel,omitempty"`
	Output    *string            `json:"output,omitempty"`
	Generator *generator.Options `json:"generator,omitempty"`
}

// GetConfig reads the config files from the home directory, the
// user config directory and the current directory. An explicitly
// given config file must exist. Environment settings override
// file settings.
func GetConfig(fs vfs.FileSystem, file string) (*Config, error) {
	var cfg Config

	dir, err := os.UserHomeDir()
	if err == nil {
		MergeConfig(&cfg, ReadConfig(fs, filepath.Join(dir, CONFIG_FILE)))
	}
	dir, err = os.UserConfigDir()
	if err == nil {
		MergeConfig(&cfg, ReadConfig(fs, filepath.Join(dir, CONFIG_FILE)))
	}
	MergeConfig(&cfg, ReadConfig(fs, CONFIG_FILE))

	if file != "" {
		data, err := vfs.ReadFile(fs, file)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot read config file %q", file)
		}
		var add Config
		err = yaml.UnmarshalStrict(data, &add)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid config file %q", file)
		}
		MergeConfig(&cfg, &add)
	}

	if v := os.Getenv(ENV_LOG_LEVEL); v != "" {
		cfg.LogLevel = generics.Pointer(v)
	}
	if v := os.Getenv(ENV_OUTPUT); v != "" {
		cfg.Output = generics.Pointer(v)
	}
	return &cfg, nil
}

func ReadConfig(fs vfs.FileSystem, path string) *Config {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		log.Warn("ignoring invalid config file {{file}}: {{error}}", "file", path, "error", err)
		return nil
	}
	log.Debug("using config file {{file}}", "file", path)
	return &cfg
}

func MergeConfig(cfg *Config, add *Config) {
	if add == nil {
		return
	}
	if add.LogLevel != nil {
		cfg.LogLevel = add.LogLevel
	}
	if add.Output != nil {
		cfg.Output = add.Output
	}
	if add.Generator != nil {
		cfg.Generator = add.Generator
	}
}
