package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string  `yaml:"log-file" env:"LOG_FILE"`
	Storage  Storage `yaml:"storage"`
	Game     Game    `yaml:"game"`
}

type Storage struct {
	Driver   string   `yaml:"driver" env:"STORAGE_DRIVER" env-default:"file"`
	Key      string   `yaml:"key" env:"STORAGE_KEY" env-default:"gameSessions"`
	Dir      string   `yaml:"dir" env:"STORAGE_DIR" env-default:".tictactoe"`
	Redis    Redis    `yaml:"redis"`
	Postgres Postgres `yaml:"postgres"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Postgres struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN" env-default:""`
}

type Game struct {
	// Navigation is "freeze" (no undo/redo once a game has ended) or "free".
	Navigation string `yaml:"navigation" env:"GAME_NAVIGATION" env-default:"freeze"`
}

// Load - reads path when it exists, otherwise configures from the environment alone.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
