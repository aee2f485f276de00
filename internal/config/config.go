package config

import "time"

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetHost() string
	GetListenAddr() string
	GetAppName() string
	GetDataFolder() string
	GetLogLevel() string
	GetEnv() string
}

type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
}

type StorageConfig interface {
	GetStorageBackend() StorageBackend
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	API
	Storage
	Cors
}

// New builds the configuration from defaults, the YAML file at path (optional) and the
// environment, in increasing order of precedence. An empty path falls back to
// <data folder>/config.yaml when that file exists.
func New(path string) (Config, error) {
	file, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	return mainConfig{
		EnvVars: EnvVars{file: file},
		API:     API{file: file},
		Storage: Storage{file: file},
		Cors:    Cors{file: file},
	}, nil
}

// Default returns a configuration backed by the environment only.
func Default() Config {
	file := &fileValues{}
	return mainConfig{
		EnvVars: EnvVars{file: file},
		API:     API{file: file},
		Storage: Storage{file: file},
		Cors:    Cors{file: file},
	}
}
