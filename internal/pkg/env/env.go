package env

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given). Files that do not exist are skipped and variables that are already
// set are left alone.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}

	return nil
}

func RequireString(key string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		panic(fmt.Sprintf("environment variable %q is required", key))
	}

	return val
}

func String(key, def string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	return val
}

func Int(key string, def int) int {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	val, err := strconv.Atoi(strings.TrimSpace(valStr))
	if err != nil {
		return def
	}

	return val
}

func Int64(key string, def int64) int64 {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	val, err := strconv.ParseInt(strings.TrimSpace(valStr), 10, 64)
	if err != nil {
		return def
	}

	return val
}

func Bool(key string, def bool) bool {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	switch strings.ToLower(valStr) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}

	return def
}

func Duration(key string, def time.Duration) time.Duration {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return def
	}

	return val
}

func URL(key string, def *url.URL) *url.URL {
	val, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	parsed, err := url.Parse(val)
	if err != nil {
		return def
	}

	return parsed
}

// List splits a comma separated variable, dropping empty items.
func List(key string, def []string) []string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
