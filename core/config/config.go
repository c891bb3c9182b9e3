package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type GoogleAPIConfig struct {
	ClientID     string `mapstructure:"CLIENT_ID"`
	ClientSecret string `mapstructure:"CLIENT_SECRET"`
	RedirectURI  string `mapstructure:"REDIRECT_URI"`
}

type LLMConfig struct {
	APIKey  string `mapstructure:"LLM_API_KEY"`
	BaseURL string `mapstructure:"LLM_BASE_URL"`
	Model   string `mapstructure:"LLM_MODEL"`
}

type ServerConfig struct {
	Port string `mapstructure:"PORT"`
}

type Config struct {
	GoogleAPI GoogleAPIConfig `mapstructure:",squash"`
	LLM       LLMConfig       `mapstructure:",squash"`
	Server    ServerConfig    `mapstructure:",squash"`
}

var (
	instance *Config
	mu       sync.RWMutex
)

var envs = []string{
	"CLIENT_ID", "CLIENT_SECRET", "REDIRECT_URI",
	"LLM_API_KEY", "LLM_BASE_URL", "LLM_MODEL",
	"PORT",
}

// Load reads .env (if present) and the process environment into the
// package singleton. Missing values stay empty; endpoints that need them
// fail with a config error instead of a silent default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for _, env := range envs {
		if err := v.BindEnv(env); err != nil {
			return nil, err
		}
	}

	v.SetDefault("LLM_BASE_URL", "https://openrouter.ai/api/v1")
	v.SetDefault("LLM_MODEL", "deepseek/deepseek-r1-0528:free")
	v.SetDefault("PORT", "7070")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	mu.Lock()
	instance = &cfg
	mu.Unlock()
	return &cfg, nil
}

// GetSafe returns the loaded config, reporting whether Load has run.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return nil, false
	}
	return instance, true
}

// Set replaces the singleton. Used by tests.
func Set(cfg *Config) {
	mu.Lock()
	instance = cfg
	mu.Unlock()
}
