package config

import (
	"os"
	"strings"
)

const allowedOriginsEnvVar = "ALLOWED_ORIGINS"

type Cors struct {
	file *fileValues
}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	return strings.Join(origins, ", ")
}

// GetAllowedOrigins reads a comma separated ALLOWED_ORIGINS list, falling back to the
// config file. The local dashboard only answers same-origin requests by default. The
// wildcard is ignored: every extra origin must be listed.
func (c Cors) GetAllowedOrigins() AllowedOrigins {
	origins := c.file.AllowedOrigins
	if env := os.Getenv(allowedOriginsEnvVar); env != "" {
		origins = strings.Split(env, ",")
	}
	allowed := AllowedOrigins{}
	for _, origin := range origins {
		if origin = strings.TrimSpace(origin); origin != "" && origin != "*" {
			allowed[origin] = nullValue{}
		}
	}
	return allowed
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST, PUT, DELETE"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}
