package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env-default:"local"`
	HTTPServer HttpServer `yaml:"http_server" env-required:"true"`
	Storage    Storage    `yaml:"storage"`
	Auth       Auth       `yaml:"auth"`
	Assignment Assignment `yaml:"assignment"`
}

type HttpServer struct {
	Address      string        `yaml:"address" env-default:"localhost:8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Storage struct {
	// "memory" or "postgres"; postgres reads DSN from DATABASE_URL
	Type string `yaml:"type" env:"STORAGE_TYPE" env-default:"memory"`
}

type Auth struct {
	AdminAPIKey string `yaml:"admin_api_key" env:"ADMIN_API_KEY" env-default:"admin-key"`
	UserAPIKey  string `yaml:"user_api_key" env:"USER_API_KEY" env-default:"user-key"`
}

type Assignment struct {
	// MinReviewers is the smallest candidate pool create accepts,
	// MaxReviewers caps how many reviewers are assigned on create.
	MinReviewers int `yaml:"min_reviewers" env-default:"1"`
	MaxReviewers int `yaml:"max_reviewers" env-default:"2"`
}

// MustLoad panics if config can not be found.
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is required")
	}

	if _, err := os.Stat(configPath); err != nil {
		panic("config file does not exist:" + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}

	return &cfg
}

// fetchConfigPath fetches config path from cmd flag or environment variable.
// flag > env > default.
// default = "".
func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "Path to the configuration file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	return path
}
