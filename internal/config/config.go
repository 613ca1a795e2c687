package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env-default:"9090"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env-default:"othello.db"`
	JWTSecretKey      string `yaml:"jwt-secret-key"`
	Reaper            Reaper `yaml:"reaper"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// Reaper controls the stale-room sweep: how often it runs, how long a
// room may idle before being marked timed_out, and how long before it is
// deleted outright. DeleteAfter must exceed TimeoutAfter so pollers get a
// window to observe the timed_out status.
type Reaper struct {
	Interval     time.Duration `yaml:"interval" env-default:"60s"`
	TimeoutAfter time.Duration `yaml:"timeout-after" env-default:"10m"`
	DeleteAfter  time.Duration `yaml:"delete-after" env-default:"11m"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
