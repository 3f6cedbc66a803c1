package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GAWE_TICK_INTERVAL.
const EnvPrefix = "GAWE"

const (
	keyConfig           = "config"
	keyEnvFile          = "env-file"
	keyDebug            = "debug"
	keyLogFile          = "log-file"
	keyLogFormat        = "log-format"
	keyMetricsAddr      = "metrics-addr"
	keySession          = "session"
	keyTickInterval     = "tick-interval"
	keyIdlePollInterval = "idle-poll-interval"
)

// Options are the resolved process options.
type Options struct {
	Debug            bool
	LogFile          string
	LogFormat        string
	MetricsAddr      string
	SessionFile      string
	TickInterval     time.Duration
	IdlePollInterval time.Duration
}

// RegisterFlags declares the process flags on flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(keyConfig, "", "config file (yaml, toml or json)")
	flags.String(keyEnvFile, ".env", "dotenv file loaded before reading GAWE_ variables")
	flags.BoolP(keyDebug, "d", false, "enable debug logging")
	flags.String(keyLogFile, "", "also write JSON logs to this file")
	flags.String(keyLogFormat, "text", "console log format: text or json")
	flags.String(keyMetricsAddr, "", "serve Prometheus metrics on this address, e.g. 127.0.0.1:9464")
	flags.StringP(keySession, "s", "", "session YAML file to load at startup")
	flags.Duration(keyTickInterval, time.Second, "timer tick interval")
	flags.Duration(keyIdlePollInterval, 5*time.Second, "idle detection poll interval")
}

// Load resolves options with precedence flag > environment > config file > default.
func Load(flags *pflag.FlagSet) (Options, error) {
	if err := loadEnvFile(flags); err != nil {
		return Options{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return Options{}, fmt.Errorf("bind flags: %w", err)
	}

	if configFile := v.GetString(keyConfig); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Options{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	options := Options{
		Debug:            v.GetBool(keyDebug),
		LogFile:          v.GetString(keyLogFile),
		LogFormat:        v.GetString(keyLogFormat),
		MetricsAddr:      v.GetString(keyMetricsAddr),
		SessionFile:      v.GetString(keySession),
		TickInterval:     v.GetDuration(keyTickInterval),
		IdlePollInterval: v.GetDuration(keyIdlePollInterval),
	}
	if options.TickInterval <= 0 {
		return Options{}, fmt.Errorf("%s must be positive, got %s", keyTickInterval, options.TickInterval)
	}
	if options.IdlePollInterval <= 0 {
		return Options{}, fmt.Errorf("%s must be positive, got %s", keyIdlePollInterval, options.IdlePollInterval)
	}
	return options, nil
}

// loadEnvFile reads the dotenv file without overriding variables already set.
func loadEnvFile(flags *pflag.FlagSet) error {
	envFile, err := flags.GetString(keyEnvFile)
	if err != nil || envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	return nil
}
