package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the data folder when no path is given.
const FileName = "config.yaml"

type fileValues struct {
	AppName    string `yaml:"app_name"`
	Env        string `yaml:"env"`
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	DataFolder string `yaml:"data_folder"`
	LogLevel   string `yaml:"log_level"`
	API        struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Storage struct {
		Backend string `yaml:"backend"`
	} `yaml:"storage"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func loadFile(path string) (*fileValues, error) {
	values := &fileValues{}
	explicit := path != ""
	if !explicit {
		path = filepath.Join(lookup(folderEnvVar, "", defaultDataFolder()), FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return values, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, values); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return values, nil
}
