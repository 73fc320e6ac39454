package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
// The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/gymstack/config.yaml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces the environment variables consumed by the server.
// Only the first underscore separates the namespace from the key, so
// GYMSTACK_SECURITY_TOKEN_SECRET maps to security.token_secret.
const envPrefix = "GYMSTACK_"

var defaults = map[string]interface{}{
	"server.port":        "8080",
	"server.app_name":    "GymStack",
	"server.data_folder": "./data",
	"server.env":         "DEV",
}

// load builds the koanf instance: defaults, then an optional yaml file, then
// environment variables, each layer overriding the previous one.
func load() (*koanf.Koanf, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("config defaults: %w", err)
		}
	}

	if path := configFilePath(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}

	return k, nil
}

func configFilePath() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

type EnvVars struct {
	k *koanf.Koanf
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.k.String("server.port")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.k.String("server.app_name")
}

func (e EnvVars) GetDataFolder() string {
	return e.k.String("server.data_folder")
}

func (e EnvVars) GetEnv() string {
	return strings.ToUpper(e.k.String("server.env"))
}

func (e EnvVars) IsProduction() bool {
	return e.GetEnv() == "PRODUCTION"
}
