package config

import (
	"github.com/spf13/pflag"
)

// BindFlags registers the global flags on fs with cfg's current values as
// defaults, so parsed flags override every earlier source.
//
// Supported flags:
//
//	-c, --config string      JSON config file (read earlier by LoadConfig)
//	-a, --api string         base URL of the REST API
//	-t, --token-file string  file holding the API token
//	-l, --log-level string   debug, info, warn or error
//	-f, --log-format string  text, json or console
//	    --timeout duration   per-request timeout
//	-v, --verbose            shorthand for --log-level debug
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringP("config", "c", "", "JSON config file")
	fs.StringVarP(&cfg.APIBase, "api", "a", cfg.APIBase, "base URL of the REST API")
	fs.StringVarP(&cfg.TokenFile, "token-file", "t", cfg.TokenFile, "file holding the API token")
	fs.StringVarP(&cfg.LogLevel, "log-level", "l", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVarP(&cfg.LogFormat, "log-format", "f", cfg.LogFormat, "log format: text, json or console")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "debug logging")
}
