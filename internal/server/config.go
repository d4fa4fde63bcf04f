package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config keys. Each can come from a flag, an ELVIRA_* environment variable
// or the YAML config file, in that order of precedence.
const (
	KeyAddr   = "addr"
	KeyDriver = "driver"
	KeyDSN    = "dsn"
	KeyAPIKey = "api_key"
	KeyLog    = "log_level"
)

const envPrefix = "ELVIRA"

// Config is the server's runtime configuration.
type Config struct {
	Addr     string
	Driver   string
	DSN      string
	APIKey   string
	LogLevel string
}

// LoadConfig resolves the configuration. path names an optional YAML file;
// a missing file is not an error when path is empty. flags may be nil.
func LoadConfig(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyDriver, DriverSQLite)
	v.SetDefault(KeyDSN, "elvira.db")
	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyLog, "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{KeyAddr, KeyDriver, KeyDSN, KeyAPIKey, KeyLog} {
			if f := flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", key, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		Addr:     v.GetString(KeyAddr),
		Driver:   v.GetString(KeyDriver),
		DSN:      v.GetString(KeyDSN),
		APIKey:   v.GetString(KeyAPIKey),
		LogLevel: v.GetString(KeyLog),
	}
	switch cfg.Driver {
	case DriverSQLite, DriverPostgres, "pgx":
	default:
		return Config{}, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
	return cfg, nil
}
