package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/vischart/pkg/errors"
)

// Config is the optional config file. Command-line flags override it.
//
//	formats   = ["svg", "png"]
//	png_scale = 2.0
//	data_dir  = "~/datasets"
//
//	[redis]
//	addr = "localhost:6379"
type Config struct {
	Formats  []string `toml:"formats"`
	PNGScale float64  `toml:"png_scale"`
	Listen   string   `toml:"listen"`

	CacheDir  string      `toml:"cache_dir"`
	NoCache   bool        `toml:"no_cache"`
	KeyPrefix string      `toml:"key_prefix"`
	Redis     RedisConfig `toml:"redis"`

	DataDir string      `toml:"data_dir"`
	DataURL string      `toml:"data_url"`
	Mongo   MongoConfig `toml:"mongo"`
}

// RedisConfig selects a shared Redis cache instead of the file cache.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig adds a MongoDB collection lookup for named data.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

const defaultListen = "localhost:8080"

func defaultConfig() Config {
	return Config{Listen: defaultListen}
}

// configPath returns the config file location using XDG standard
// (~/.config/vischart/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads path on top of the defaults. A missing file is only an
// error when the path was given explicitly. Unknown keys are rejected.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) && !explicit {
		return defaultConfig(), nil
	}
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.CacheDir = expandHome(cfg.CacheDir)
	return cfg, nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
