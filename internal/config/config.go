package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "USERCRUD"

type Config struct {
	Port string

	DBDriver string
	DBPath   string

	LogLevel  string
	LogFormat string

	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration

	WSInterval time.Duration

	MetricsEnabled bool
	SwaggerEnabled bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("ws.interval", time.Second)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("swagger.enabled", true)
}

// Load resolves configuration from, in increasing priority: defaults,
// configs/config.yml (or --config), USERCRUD_* environment variables and flags.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("usercrud", flag.ContinueOnError)
	configFile := fs.String("config", "", "path to config file (default configs/config.yml)")
	fs.String("port", "", "port to listen on")
	fs.String("db-driver", "", "sqlite driver: sqlite (pure Go) or sqlite3 (cgo)")
	fs.String("db-path", "", "path to the SQLite database file")
	fs.String("log-level", "", "which log level to output")
	fs.String("log-format", "", "which log format to use: console or json")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, name := range map[string]string{
		"port":       "port",
		"db.driver":  "db-driver",
		"db.path":    "db-path",
		"log.level":  "log-level",
		"log.format": "log-format",
	} {
		f := fs.Lookup(name)
		if !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if *configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		Port:              v.GetString("port"),
		DBDriver:          v.GetString("db.driver"),
		DBPath:            v.GetString("db.path"),
		LogLevel:          v.GetString("log.level"),
		LogFormat:         v.GetString("log.format"),
		ReadHeaderTimeout: v.GetDuration("server.read_header_timeout"),
		WriteTimeout:      v.GetDuration("server.write_timeout"),
		IdleTimeout:       v.GetDuration("server.idle_timeout"),
		ShutdownTimeout:   v.GetDuration("server.shutdown_timeout"),
		WSInterval:        v.GetDuration("ws.interval"),
		MetricsEnabled:    v.GetBool("metrics.enabled"),
		SwaggerEnabled:    v.GetBool("swagger.enabled"),
	}, nil
}
