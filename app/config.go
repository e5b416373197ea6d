package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/timelock/errors"
	"github.com/joho/godotenv"
)

// Files expected in the home directory.
const (
	ConfigFile  = "config.toml"
	GenesisFile = "genesis.json"
)

// Environment variables overriding the configuration file.
const (
	EnvHTTP      = "TIMELOCK_HTTP"
	EnvLogLevel  = "TIMELOCK_LOG_LEVEL"
	EnvDBBackend = "TIMELOCK_DB_BACKEND"
)

// Config is the daemon configuration.
type Config struct {
	HTTP string    `toml:"http"`
	Log  LogConfig `toml:"log"`
	DB   DBConfig  `toml:"db"`
}

// LogConfig configures the logger.
type LogConfig struct {
	// Level is one of debug, info, error or none.
	Level string `toml:"level"`
	// Format is either plain or json.
	Format string `toml:"format"`
}

// DBConfig configures the ledger store.
type DBConfig struct {
	// Backend is a tendermint db backend name, for example goleveldb or
	// memdb.
	Backend string `toml:"backend"`
	// Dir is the database directory, relative to the home directory unless
	// absolute.
	Dir       string `toml:"dir"`
	Name      string `toml:"name"`
	CacheSize int    `toml:"cache_size"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		HTTP: "localhost:8000",
		Log: LogConfig{
			Level:  "info",
			Format: "plain",
		},
		DB: DBConfig{
			Backend:   "goleveldb",
			Dir:       "data",
			Name:      "timelock",
			CacheSize: 10000,
		},
	}
}

// LoadConfig reads the configuration from the home directory, starting with
// the defaults, and applies the environment overrides. A .env file in the
// working directory is loaded first if it exists. A missing configuration
// file is not an error.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig()
	_ = godotenv.Load()

	path := filepath.Join(home, ConfigFile)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, errors.Wrapf(errors.ErrInput, "config %s: %s", path, err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvHTTP); ok && v != "" {
		c.HTTP = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvDBBackend); ok && v != "" {
		c.DB.Backend = v
	}
}

// WriteConfig stores the configuration in the home directory.
func WriteConfig(home string, cfg Config) error {
	fd, err := os.OpenFile(filepath.Join(home, ConfigFile), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Wrap(err, "open config file")
	}
	defer fd.Close()
	if err := toml.NewEncoder(fd).Encode(cfg); err != nil {
		return errors.Wrap(err, "encode config")
	}
	return nil
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	if c.HTTP == "" {
		return errors.Wrap(errors.ErrEmpty, "http address")
	}
	switch c.Log.Level {
	case "debug", "info", "error", "none":
	default:
		return errors.Wrapf(errors.ErrInput, "log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "plain", "json":
	default:
		return errors.Wrapf(errors.ErrInput, "log format %q", c.Log.Format)
	}
	if c.DB.Backend == "" {
		return errors.Wrap(errors.ErrEmpty, "db backend")
	}
	if c.DB.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "db name")
	}
	if c.DB.CacheSize <= 0 {
		return errors.Wrapf(errors.ErrInput, "db cache size %d", c.DB.CacheSize)
	}
	return nil
}

// DBDir returns the absolute database directory.
func (c Config) DBDir(home string) string {
	if filepath.IsAbs(c.DB.Dir) {
		return c.DB.Dir
	}
	return filepath.Join(home, c.DB.Dir)
}
