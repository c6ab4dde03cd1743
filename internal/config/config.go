package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

var (
	ErrMissingToken   = errors.New("slack command token is empty")
	ErrMissingPort    = errors.New("http port is empty")
	ErrUnknownDriver  = errors.New("unknown storage driver")
	ErrIncompleteTLS  = errors.New("tls needs both cert-file and key-file")
	ErrMissingSQLPath = errors.New("sqlite storage path is empty")
)

type Config struct {
	LogLevel          string  `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info"`
	HTTPPort          string  `yaml:"http-port" env:"TTT_HTTP_PORT" env-default:"9443"`
	TLS               TLS     `yaml:"tls"`
	Storage           Storage `yaml:"storage"`
	Redis             Redis   `yaml:"redis"`
	SQLiteStoragePath string  `yaml:"sqlite-storage-path" env:"TTT_SQLITE_PATH" env-default:"./data/ttt.db"`
	Slack             Slack   `yaml:"slack"`
}

type TLS struct {
	CertFile string `yaml:"cert-file" env:"TTT_TLS_CERT_FILE"`
	KeyFile  string `yaml:"key-file" env:"TTT_TLS_KEY_FILE"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"TTT_STORAGE_DRIVER" env-default:"redis"`
}

type Redis struct {
	Host     string `yaml:"host" env:"TTT_REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"TTT_REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"TTT_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"TTT_REDIS_DB" env-default:"0"`
}

type Slack struct {
	CommandToken string `yaml:"command-token" env:"TTT_SLACK_COMMAND_TOKEN"`
}

// MustLoad - loads config.yml when present, environment variables override it.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Slack.CommandToken == "" {
		return ErrMissingToken
	}

	if that.HTTPPort == "" {
		return ErrMissingPort
	}

	if (that.TLS.CertFile == "") != (that.TLS.KeyFile == "") {
		return ErrIncompleteTLS
	}

	switch that.Storage.Driver {
	case DriverRedis, DriverMemory:
	case DriverSQLite:
		if that.SQLiteStoragePath == "" {
			return ErrMissingSQLPath
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, that.Storage.Driver)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
