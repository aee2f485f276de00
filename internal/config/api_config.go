package config

import (
	"strings"
	"time"
)

const (
	apiBaseURLEnvVar = "API_BASE_URL"
	apiTimeoutEnvVar = "API_TIMEOUT"
)

type API struct {
	file *fileValues
}

var _ APIConfig = API{}

func (a API) GetAPIBaseURL() string {
	return strings.TrimRight(lookup(apiBaseURLEnvVar, a.file.API.BaseURL, "http://localhost:5000/api"), "/")
}

func (a API) GetRequestTimeout() time.Duration {
	timeout, err := time.ParseDuration(lookup(apiTimeoutEnvVar, a.file.API.Timeout, "15s"))
	if err != nil || timeout <= 0 {
		return 15 * time.Second
	}
	return timeout
}
