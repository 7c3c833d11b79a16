package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Difficulty string `yaml:"difficulty" env:"DIFFICULTY" env-default:"expert"`
	Seed       int64  `yaml:"seed" env:"SEED" env-default:"0"`
	SessionID  string `yaml:"session-id" env:"SESSION_ID" env-default:""`
	NoColor    bool   `yaml:"no-color" env:"NO_COLOR" env-default:"false"`
	Redis      Redis  `yaml:"redis"`
}

type Redis struct {
	Enabled    bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host       string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port       string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password   string        `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB         int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"REDIS_SESSION_TTL" env-default:"24h"`
}

// Load reads the yaml file at path with environment overrides. A missing file
// is not an error: the configuration then comes from the environment only.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from environment: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	default:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
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

func (that *Config) GetDifficulty() (tictactoe.DifficultyLevel, error) {
	level, err := tictactoe.ParseDifficultyLevel(that.Difficulty)
	if err != nil {
		return tictactoe.Expert, fmt.Errorf("invalid difficulty in config: %w", err)
	}

	return level, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
