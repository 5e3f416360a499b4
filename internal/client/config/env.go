package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/tsheets/internal/filex"
	"github.com/joho/godotenv"
)

// Environment variables. A variable set in the process environment wins over
// the same key in the dotenv file.
const (
	EnvFile      = "TSHEETS_ENV_FILE"
	EnvAPIBase   = "TSHEETS_API_BASE"
	EnvTokenFile = "TSHEETS_TOKEN_FILE"
	EnvToken     = "TSHEETS_TOKEN"
	EnvTimeout   = "TSHEETS_TIMEOUT"
	EnvLogLevel  = "TSHEETS_LOG_LEVEL"
	EnvLogFormat = "TSHEETS_LOG_FORMAT"
	EnvEditor    = "TSHEETS_EDITOR"
)

// DefaultEnvFile is read when TSHEETS_ENV_FILE is unset and it exists.
const DefaultEnvFile = "env"

func parseEnv(cfg *Config) error {
	dotenv, err := readDotenv()
	if err != nil {
		return err
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}

	setString(&cfg.APIBase, lookup(EnvAPIBase))
	setString(&cfg.TokenFile, lookup(EnvTokenFile))
	setString(&cfg.Token, lookup(EnvToken))
	setString(&cfg.LogLevel, lookup(EnvLogLevel))
	setString(&cfg.LogFormat, lookup(EnvLogFormat))
	setString(&cfg.Editor, lookup(EnvEditor))

	if v := lookup(EnvTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	return nil
}

func readDotenv() (map[string]string, error) {
	path := os.Getenv(EnvFile)
	explicit := path != ""
	if !explicit {
		path = filex.ConfigPath(DefaultEnvFile)
	}
	path, err := filex.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	vals, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading env file: %w", err)
	}
	return vals, nil
}

// parseTimeout accepts a Go duration ("45s") or whole seconds ("45").
func parseTimeout(v string) (time.Duration, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q", v)
	}
	return time.Duration(secs) * time.Second, nil
}
