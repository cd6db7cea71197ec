// Package config loads the bridge configuration from an optional YAML file,
// a .env file and DSBRIDGE_* environment variables, in increasing order of
// precedence.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/Skyrin/go-dsbridge/catalogue"
	"github.com/Skyrin/go-dsbridge/e"
	"github.com/Skyrin/go-dsbridge/scheduler"
	"github.com/Skyrin/go-dsbridge/sql"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ECode0B0101 = e.Code0B01 + "01"
	ECode0B0102 = e.Code0B01 + "02"
	ECode0B0103 = e.Code0B01 + "03"
	ECode0B0104 = e.Code0B01 + "04"
	ECode0B0105 = e.Code0B01 + "05"
)

const (
	// EnvPrefix prefix of the environment variables, i.e. DSBRIDGE_SCHEDULER_URL
	EnvPrefix = "DSBRIDGE"
	// DefaultConfigName config file looked up in the working directory when no
	// path is given (dsbridge.yaml)
	DefaultConfigName = "dsbridge"
	// DefaultEventsTopic topic reconciliation events are published to
	DefaultEventsTopic = "dsbridge-events"
)

// Config the bridge configuration
type Config struct {
	Scheduler Scheduler `mapstructure:"scheduler"`
	Catalogue Catalogue `mapstructure:"catalogue"`
	Events    Events    `mapstructure:"events"`
	Log       Log       `mapstructure:"log"`
}

// Scheduler connection to the workflow scheduler
type Scheduler struct {
	URL         string        `mapstructure:"url" validate:"required,url"`
	Token       string        `mapstructure:"token" validate:"required"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	ProjectName string        `mapstructure:"projectname" validate:"required"`
	// PlatformURL the platform address the scheduler calls back to when it
	// runs a platform job task
	PlatformURL string `mapstructure:"platformurl" validate:"required"`
}

// Catalogue connection to the platform's catalogue database
type Catalogue struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	Table    string `mapstructure:"table"`
}

// Events reconciliation event publishing
type Events struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers" validate:"required_if=Enabled true"`
	Topic   string   `mapstructure:"topic" validate:"required_if=Enabled true"`
	// Region AWS region of an MSK cluster, IAM auth is used when set
	Region string `mapstructure:"region"`
	// AccessKeyID static IAM credentials of the cluster user, the ec2 role
	// credentials are used when empty
	AccessKeyID     string `mapstructure:"accesskeyid"`
	SecretAccessKey string `mapstructure:"secretaccesskey"`
	SessionToken    string `mapstructure:"sessiontoken"`
	NoTLS           bool   `mapstructure:"notls"`
}

// Log logging settings
type Log struct {
	Level   string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error fatal panic"`
	Console bool   `mapstructure:"console"`
}

// Load loads the configuration. If path is empty, dsbridge.yaml is read from
// the working directory if it exists
func Load(path string) (c *Config, err error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, e.WK(err, e.ErrConfiguration, ECode0B0101, "failed to load .env")
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, e.WK(err, e.ErrConfiguration, ECode0B0102, "failed to read config file")
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, e.WK(err, e.ErrConfiguration, ECode0B0102, "failed to read config file")
			}
		}
	}

	c = &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, e.WK(err, e.ErrConfiguration, ECode0B0103, "failed to parse config")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return e.WK(err, e.ErrConfiguration, ECode0B0104, err.Error())
	}
	// required_if passes a non-nil empty list
	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return e.NK(e.ErrConfiguration, ECode0B0105, "Events.Brokers is required when events are enabled")
	}

	return nil
}

// setDefaults registers every key, so AutomaticEnv can resolve keys that are
// absent from the config file
func setDefaults(v *viper.Viper) {
	v.SetDefault("scheduler.url", "")
	v.SetDefault("scheduler.token", "")
	v.SetDefault("scheduler.timeout", scheduler.DefaultTimeout)
	v.SetDefault("scheduler.projectname", "")
	v.SetDefault("scheduler.platformurl", "")

	v.SetDefault("catalogue.host", "localhost")
	v.SetDefault("catalogue.port", "5432")
	v.SetDefault("catalogue.user", "")
	v.SetDefault("catalogue.password", "")
	v.SetDefault("catalogue.dbname", "")
	v.SetDefault("catalogue.sslmode", "")
	v.SetDefault("catalogue.table", catalogue.DefaultTable)

	v.SetDefault("events.enabled", false)
	v.SetDefault("events.brokers", []string{})
	v.SetDefault("events.topic", DefaultEventsTopic)
	v.SetDefault("events.region", "")
	v.SetDefault("events.accesskeyid", "")
	v.SetDefault("events.secretaccesskey", "")
	v.SetDefault("events.sessiontoken", "")
	v.SetDefault("events.notls", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", false)
}

// ClientConfig returns the scheduler client configuration
func (s Scheduler) ClientConfig() scheduler.Config {
	return scheduler.Config{
		URL:     s.URL,
		Token:   s.Token,
		Timeout: s.Timeout,
	}
}

// ConnParam returns the catalogue database connection parameters
func (c Catalogue) ConnParam() *sql.ConnParam {
	return &sql.ConnParam{
		Host:     c.Host,
		Port:     c.Port,
		User:     c.User,
		Password: c.Password,
		DBName:   c.DBName,
		SSLMode:  c.SSLMode,
	}
}
