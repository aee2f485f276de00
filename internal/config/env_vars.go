package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
)

const (
	portEnvVar     = "PORT"
	hostEnvVar     = "HOST"
	appNameVar     = "APP_NAME"
	folderEnvVar   = "FOLDER"
	logLevelEnvVar = "LOG_LEVEL"
	envEnvVar      = "ENV"
)

type EnvVars struct {
	file *fileValues
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := lookup(portEnvVar, e.file.Port, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

// GetHost is the interface the dashboard binds to. Loopback unless configured otherwise.
func (e EnvVars) GetHost() string {
	return lookup(hostEnvVar, e.file.Host, "127.0.0.1")
}

func (e EnvVars) GetListenAddr() string {
	return net.JoinHostPort(e.GetHost(), strings.TrimPrefix(e.GetPort(), ":"))
}

func (e EnvVars) GetAppName() string {
	return lookup(appNameVar, e.file.AppName, "Starose Admin")
}

func (e EnvVars) GetDataFolder() string {
	return lookup(folderEnvVar, e.file.DataFolder, defaultDataFolder())
}

func (e EnvVars) GetLogLevel() string {
	return strings.ToLower(lookup(logLevelEnvVar, e.file.LogLevel, "info"))
}

func (e EnvVars) GetEnv() string {
	return strings.ToUpper(lookup(envEnvVar, e.file.Env, "DEV"))
}

func defaultDataFolder() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "./data"
	}
	return filepath.Join(home, ".starose")
}

// lookup resolves a setting: environment first, then the config file, then the default.
func lookup(envVar, fileValue, defaultValue string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}
