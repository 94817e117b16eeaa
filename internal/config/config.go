package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Server   Server  `yaml:"server"`
	Game     Game    `yaml:"game"`
	Profile  Profile `yaml:"profile"`
	Redis    Redis   `yaml:"redis"`
}

type Server struct {
	Endpoint    string        `yaml:"endpoint" env:"SERVER_ENDPOINT" env-default:"ws://localhost:8080/ws"`
	DialTimeout time.Duration `yaml:"dial-timeout" env:"SERVER_DIAL_TIMEOUT" env-default:"5s"`
	ShareBase   string        `yaml:"share-base" env:"SHARE_BASE" env-default:"http://localhost:8080"`
}

type Game struct {
	TurnSeconds int `yaml:"turn-seconds" env:"TURN_SECONDS" env-default:"30"`
}

type Profile struct {
	ID string `yaml:"id" env:"PROFILE_ID" env-default:"local"`
}

// Redis is optional; without a host, nicknames and history live in memory.
type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// MustLoadEnv - load configuration from the environment only, for running without a config file.
func MustLoadEnv() *Config {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		panic(fmt.Errorf("unable to load config from environment: %w", err))
	}

	return config
}

func (that *Redis) Enabled() bool {
	return that.Host != ""
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
