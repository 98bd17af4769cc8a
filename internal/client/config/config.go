package config

import (
	"log"

	"gopkg.in/yaml.v3"

	"projectboard/pkg/config"
)

type Config struct {
	API     config.APIConfig     `yaml:"api"`
	Session config.SessionConfig `yaml:"session"`
	Redis   config.RedisConfig   `yaml:"redis"`
}

func Load() *Config {
	env := config.GetConfigEnv()
	configDir := config.GetEnv("CONFIG_DIR", "config")

	cfgMap, err := config.LoadConfig(env, configDir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var cfg Config
	cfgData, err := yaml.Marshal(cfgMap)
	if err != nil {
		log.Fatalf("failed to marshal config: %v", err)
	}
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	config.OverrideAPIFromEnv(&cfg.API)
	config.OverrideSessionFromEnv(&cfg.Session)
	config.OverrideRedisFromEnv(&cfg.Redis)

	return &cfg
}
