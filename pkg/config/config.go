package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Storage struct {
		Backend string `yaml:"backend"` // file, sqlite, redis, memory
		Path    string `yaml:"path"`
		Prefix  string `yaml:"prefix"`
	} `yaml:"storage"`
	Gateway struct {
		Provider       string `yaml:"provider"` // gemini, openai, anthropic
		Model          string `yaml:"model"`
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"gateway"`
	Logging struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"logging"`
}

func defaults() *Config {
	config := &Config{}
	config.Server.Addr = "127.0.0.1:3000"
	config.Storage.Backend = "file"
	config.Storage.Path = "vidsum-storage.json"
	config.Gateway.Provider = "gemini"
	config.Gateway.TimeoutSeconds = 90
	config.Logging.Level = "info"
	return config
}

// LoadConfig reads path, falling back to defaults when the file does not exist.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	config := defaults()

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
