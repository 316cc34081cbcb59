package util

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cast"
)

// LoadEnv loads environment variables from .env files for the given
// environment. ".env" is loaded first, then ".env.<env>" overrides it.
// Variables already present in the process environment always win.
func LoadEnv(env string) error {
	files := []string{".env"}
	if env != "" {
		files = append(files, ".env."+env)
	}
	for _, file := range files {
		if err := loadEnvFile(file); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func loadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
	return scanner.Err()
}

// GetEnv returns the value of the environment variable, or the first
// fallback when unset or empty.
func GetEnv(key string, fallback ...string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return ""
}

func GetIntEnv(key string, fallback ...int64) int64 {
	if v := os.Getenv(key); v != "" {
		return cast.ToInt64(v)
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return 0
}

func GetFloatEnv(key string, fallback ...float64) float64 {
	if v := os.Getenv(key); v != "" {
		return cast.ToFloat64(v)
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return 0
}

func GetBoolEnv(key string, fallback ...bool) bool {
	if v := os.Getenv(key); v != "" {
		return cast.ToBool(v)
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return false
}

// GetSliceEnv returns a comma separated environment variable as a slice.
func GetSliceEnv(key string, fallback ...[]string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return nil
}
