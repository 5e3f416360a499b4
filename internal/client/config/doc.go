// Package config loads runtime configuration for the tsheets CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file with comments (see parseJson), selected with -c or
//     --config, else ~/.config/tsheets/config.json when present.
//  3. Optional dotenv file (TSHEETS_ENV_FILE, else ~/.config/tsheets/env)
//     and TSHEETS_* environment variables (see parseEnv).
//  4. Command-line flags bound with BindFlags, which override earlier values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  // comments are allowed
//	  "api_base": "https://rest.tsheets.com/api/v1",
//	  "token_file": "~/.config/tsheets/token",
//	  "timeout": "30s",
//	  "log_level": "warn",
//	  "log_format": "text",
//	  "editor": "vim",
//	}
//
// Primary API
//
//   - type Config                         holds the settings
//   - func LoadConfig(args) (*Config, error)  defaults, JSON, then environment
//   - func BindFlags(fs, cfg)             command-line overrides
//   - func (*Config) Validate() error     checks the final values
package config
