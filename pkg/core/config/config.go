package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Config is the application configuration. Values come from
// config/app.yaml, with environment variables taking precedence.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Appraisal AppraisalConfig `yaml:"appraisal"`
	Cache     CacheConfig     `yaml:"cache"`
	Advisor   AdvisorConfig   `yaml:"advisor"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type AppraisalConfig struct {
	DefaultVariationPercent float64 `yaml:"default_variation_percent"`
}

type CacheConfig struct {
	RedisAddr  string `yaml:"redis_addr"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

type AdvisorConfig struct {
	Model string `yaml:"model"`
}

// Addr formats the listen address for http.ListenAndServe.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Default returns the baseline configuration used when no config file
// is present.
func Default() Config {
	return Config{
		Server:    ServerConfig{Port: 8080},
		Appraisal: AppraisalConfig{DefaultVariationPercent: 20},
		Cache:     CacheConfig{TTLMinutes: 60},
		Advisor:   AdvisorConfig{Model: "gemini-2.0-flash"},
	}
}

// Load reads the YAML file at path on top of the defaults. A missing
// file is not an error; the server runs fine on defaults alone.
// DATABASE_URL and GEMINI_API_KEY stay environment-only and are read
// by the store and advisor packages directly.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("ADVISOR_MODEL"); v != "" {
		cfg.Advisor.Model = v
	}
}
