// Package config loads the mailer configuration: a YAML file with shared
// keys plus one section per subcommand, environment overrides, and defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// defaultSignature closes every invoice message unless overridden.
const defaultSignature = "\n\nParhain terveisin,\n  Laskutus\n"

// Config wraps the viper instance backing one run.
type Config struct {
	v *viper.Viper
}

// New creates a configuration. When configFile is non-empty it is loaded
// verbatim; otherwise the usual locations are searched and a missing file
// just means defaults.
func New(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("csv-mailer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.csv-mailer")
		v.AddConfigPath("/etc/csv-mailer/")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvPrefix("CSV_MAILER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configFile == "" {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		// No config file, defaults apply.
	}

	return &Config{v: v}, nil
}

// setDefaults sets the default configuration values.
func setDefaults(v *viper.Viper) {
	// Shared mailing defaults
	v.SetDefault("smtp_server", "")
	v.SetDefault("from", "")
	v.SetDefault("subject_prefix", "")
	v.SetDefault("reminder_subject_prefix", "")
	v.SetDefault("log_dir", "logs")
	v.SetDefault("signature", defaultSignature)

	// Transport defaults
	v.SetDefault("transport.type", "smtp")
	v.SetDefault("transport.username", "")
	v.SetDefault("transport.password", "")
	v.SetDefault("transport.region", "eu-north-1")

	// Invoice details defaults
	v.SetDefault("invoice.payee", "Laskuttaja ry")
	v.SetDefault("invoice.bank", "Nordea")
	v.SetDefault("invoice.account", "FI00 0000 0000 0000 00")

	// Ingestion defaults
	v.SetDefault("ingest.encoding", "utf-8")

	// History defaults
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.type", "sqlite")
	v.SetDefault("history.sqlite_path", "csv-mailer-history.db")
	v.SetDefault("history.mysql_dsn", "user:password@tcp(localhost:3306)/csv_mailer")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// GetString gets a string value from the configuration.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetBool gets a boolean value from the configuration.
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// CommandString looks a key up in the subcommand's section first
// ("invoice.subject_prefix"), falling back to the shared top-level key.
func (c *Config) CommandString(command, key string) string {
	if v := c.v.GetString(command + "." + key); v != "" {
		return v
	}
	return c.v.GetString(key)
}

// GetViper returns the underlying viper instance.
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
