package server

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/barter/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// ConfigFile is the name of the node configuration file, looked up in the
// home directory.
const ConfigFile = "barterd.toml"

// Config holds the node settings. Values are read from the configuration
// file and can be overridden by command line flags.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string `toml:"bind"`
	// Debug makes failed responses carry the full error information.
	Debug bool `toml:"debug"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `toml:"log_level"`
	// MetricsAddr if not empty is the address of the prometheus HTTP
	// endpoint.
	MetricsAddr string `toml:"metrics_addr"`
	// DBPath is the location of the state database. A relative path is
	// resolved against the home directory.
	DBPath string `toml:"db_path"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Bind:     "tcp://localhost:26658",
		LogLevel: "info",
		DBPath:   "barter.db",
	}
}

// LoadConfig reads the configuration file from the home directory. Missing
// file results in the default configuration. Values not set in the file
// keep their default.
func LoadConfig(home string) (Config, error) {
	conf := DefaultConfig()
	path := filepath.Join(home, ConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return conf, nil
	}
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "cannot decode %s: %s", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return conf, errors.Wrapf(errors.ErrInput, "unknown configuration key %q", undecoded[0].String())
	}
	return conf, nil
}

// DBFile returns the database location resolved against the home directory.
func (c Config) DBFile(home string) string {
	if c.DBPath == "" || filepath.IsAbs(c.DBPath) {
		return c.DBPath
	}
	return filepath.Join(home, c.DBPath)
}

// Logger filters given logger according to the configured level.
func (c Config) Logger(logger log.Logger) (log.Logger, error) {
	var opt log.Option
	switch c.LogLevel {
	case "debug":
		opt = log.AllowDebug()
	case "info", "":
		opt = log.AllowInfo()
	case "error":
		opt = log.AllowError()
	case "none":
		opt = log.AllowNone()
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown log level %q", c.LogLevel)
	}
	return log.NewFilter(logger, opt), nil
}
