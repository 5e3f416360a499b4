package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/tsheets/internal/filex"
	"github.com/dmitrijs2005/tsheets/internal/flagx"
	"github.com/dmitrijs2005/tsheets/internal/timex"
	"github.com/tidwall/jsonc"
)

// DefaultConfigFile is read when no -c/--config flag is given and it exists.
const DefaultConfigFile = "config.json"

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The file may
// carry comments and trailing commas. Timeout accepts "30s" or integer
// nanoseconds.
type JsonConfig struct {
	APIBase   string         `json:"api_base"`
	TokenFile string         `json:"token_file"`
	Timeout   timex.Duration `json:"timeout"`
	LogLevel  string         `json:"log_level"`
	LogFormat string         `json:"log_format"`
	Editor    string         `json:"editor"`
}

// parseJson overlays cfg with the non-empty values of the JSON file.
//
// Lookup order for the file path:
//  1. -c / --config in args.
//  2. DefaultConfigFile in the config directory, when it exists.
//
// A file named on the command line must exist.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		path = filex.ConfigPath(DefaultConfigFile)
		if !filex.Exists(path) {
			return nil
		}
	}
	path, err := filex.ExpandHome(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	setString(&cfg.APIBase, jc.APIBase)
	setString(&cfg.TokenFile, jc.TokenFile)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.Editor, jc.Editor)
	if jc.Timeout.Duration != 0 {
		cfg.Timeout = jc.Timeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
