// Package config loads dashboard settings. Precedence: command flags, then
// STOCK_ATLAS_* environment variables (a .env file is loaded into the
// environment first), then the config file, then defaults.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "STOCK_ATLAS"

type Settings struct {
	DataSource DataSource `mapstructure:"datasource"`
	Files      Files      `mapstructure:"files"`
	Server     Server     `mapstructure:"server"`
	Log        Log        `mapstructure:"log"`
}

type DataSource struct {
	Driver       string        `mapstructure:"driver"`
	DSN          string        `mapstructure:"dsn"`
	MyCnf        string        `mapstructure:"mycnf"`
	Profile      string        `mapstructure:"profile"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	BootQueries  []string      `mapstructure:"boot_queries"`
}

type Files struct {
	SectorCSV         string `mapstructure:"sector_csv"`
	DatabricksProfile string `mapstructure:"databricks_profile"`
}

type Server struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// setDefaults registers every key so AutomaticEnv is consulted by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("datasource.driver", "mysql")
	v.SetDefault("datasource.dsn", "")
	v.SetDefault("datasource.mycnf", "")
	v.SetDefault("datasource.boot_queries", []string{})
	v.SetDefault("datasource.profile", "client")
	v.SetDefault("datasource.query_timeout", 30*time.Second)
	v.SetDefault("datasource.max_open_conns", 4)
	v.SetDefault("files.sector_csv", "data/sector_average_yearly_returns.csv")
	v.SetDefault("files.databricks_profile", "")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

// Load reads settings. configPath may be empty; flags may be nil. A missing
// .env file is not an error.
func Load(configPath string, flags *pflag.FlagSet) (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &settings, nil
}

// flagKeys maps command flags onto settings keys.
var flagKeys = map[string]string{
	"driver":        "datasource.driver",
	"dsn":           "datasource.dsn",
	"mycnf":         "datasource.mycnf",
	"profile":       "datasource.profile",
	"query-timeout": "datasource.query_timeout",
	"sector-csv":    "files.sector_csv",
	"host":          "server.host",
	"port":          "server.port",
	"log-level":     "log.level",
	"pretty":        "log.pretty",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// ResolveDSN returns the explicit DSN, or builds one from the MySQL option
// file profile when only mycnf is set.
func (s *Settings) ResolveDSN(ctx context.Context) (string, error) {
	if s.DataSource.DSN != "" {
		return s.DataSource.DSN, nil
	}
	if s.DataSource.MyCnf == "" {
		return "", errors.New("datasource.dsn or datasource.mycnf must be set")
	}
	if s.DataSource.Driver != "mysql" {
		return "", fmt.Errorf("datasource.mycnf only applies to the mysql driver, got %q", s.DataSource.Driver)
	}

	registry, err := NewRegistry(s.DataSource.MyCnf)
	if err != nil {
		return "", fmt.Errorf("failed to load option file: %w", err)
	}
	return registry.GetDSN(ctx, s.DataSource.Profile)
}

func (s *Settings) Addr() string {
	return net.JoinHostPort(s.Server.Host, s.Server.Port)
}

// Logger builds the process logger for the configured level and format.
func (s *Settings) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(s.Log.Level)
	if err != nil || s.Log.Level == "" {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if s.Log.Pretty {
		logger = zerolog.New(zerolog.NewConsoleWriter())
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
