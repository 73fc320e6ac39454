package config

// Config is the full configuration surface of the server. It is constructed
// once in cmd/server and handed to every component that needs it; nothing
// reads ambient environment state after startup.
type Config interface {
	EnvConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
	IsProduction() bool
}

type mainConfig struct {
	EnvVars
	Security
}

func New() (Config, error) {
	k, err := load()
	if err != nil {
		return nil, err
	}
	return mainConfig{
		EnvVars:  EnvVars{k: k},
		Security: Security{k: k},
	}, nil
}
