package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix namespaces every setting read from the environment.
const EnvPrefix = "UNIVERSIDADES"

// EnvSettings resolves dotted setting keys from the process environment:
// "log.max_size_mb" is read from UNIVERSIDADES_LOG_MAX_SIZE_MB.
type EnvSettings struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnvSettings creates an environment-backed SettingsGetter
func NewEnvSettings(prefix string) *EnvSettings {
	return &EnvSettings{prefix: prefix, lookup: os.LookupEnv}
}

// GetSetting returns the value for key, or "" when the variable is unset
func (e *EnvSettings) GetSetting(key string) (string, error) {
	val, _ := e.lookup(EnvName(e.prefix, key))
	return strings.TrimSpace(val), nil
}

// EnvName maps a dotted setting key to its environment variable name
func EnvName(prefix, key string) string {
	name := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

// LoadDotEnv loads each file into the environment without overriding variables that
// are already set. Missing files are skipped; the names of loaded files are returned.
func LoadDotEnv(files ...string) ([]string, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var loaded []string
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, err
		}
		loaded = append(loaded, file)
	}
	return loaded, nil
}

// Getenv returns the first non-empty value among the given environment variables
func Getenv(keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val
		}
	}
	return ""
}
