package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/tsheets/internal/common"
	"github.com/dmitrijs2005/tsheets/internal/filex"
	"github.com/dmitrijs2005/tsheets/internal/logging"
	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the tsheets CLI.
//
// Fields:
//   - APIBase: base URL of the REST API.
//   - TokenFile: file holding the bearer token.
//   - Token: the token itself; when set the token file is not read.
//   - Timeout: per-request HTTP timeout.
//   - LogLevel, LogFormat: see logging.New.
//   - Editor: command used by edit; empty means $VISUAL, then $EDITOR.
//   - Verbose: forces the debug log level.
type Config struct {
	APIBase   string        `validate:"required,url"`
	TokenFile string        `validate:"required"`
	Token     string        `validate:"-"`
	Timeout   time.Duration `validate:"gt=0"`
	LogLevel  string        `validate:"oneof=debug info warn warning error"`
	LogFormat string        `validate:"oneof=text json console"`
	Editor    string
	Verbose   bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBase = common.DefaultAPIBase
	c.TokenFile = filex.ConfigPath("token")
	c.Timeout = 30 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = logging.FormatText
}

// LoadConfig constructs a Config from defaults, then the JSON file named by
// -c/--config in args (or the default config file when it exists), then
// the dotenv file and environment variables. Command-line flags are bound
// afterwards with BindFlags; call Validate once they are parsed.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks the final configuration. Verbose raises the log level to
// debug first.
func (c *Config) Validate() error {
	if c.Verbose {
		c.LogLevel = "debug"
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
