package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/tsheets/internal/client/cache"
	"github.com/dmitrijs2005/tsheets/internal/client/client"
	"github.com/dmitrijs2005/tsheets/internal/client/config"
	"github.com/dmitrijs2005/tsheets/internal/client/services"
	"github.com/dmitrijs2005/tsheets/internal/logging"
	"github.com/spf13/cobra"
)

// App carries the state shared by every command of one process: the
// configuration, the logger, and the services built once a token is known.
type App struct {
	config *config.Config
	log    logging.Logger
	reader *bufio.Reader

	authService      services.AuthService
	timesheetService services.TimesheetService
	totalsService    services.TotalsService
	referenceService services.ReferenceService

	// dial builds the API client for a token. Tests replace it.
	dial      func(token string) client.Client
	connected bool
	inShell   bool
}

func NewApp(c *config.Config) *App {
	a := &App{config: c}
	a.dial = a.dialHTTP
	return a
}

func (a *App) dialHTTP(token string) client.Client {
	transport := client.NewHTTPTransport(a.config.APIBase, token, a.config.Timeout, a.log)
	return client.NewAPIClient(transport)
}

// init validates the configuration and builds what needs no token. It runs
// before every command and is idempotent.
func (a *App) init(cmd *cobra.Command) error {
	if err := a.config.Validate(); err != nil {
		return err
	}
	if a.log == nil {
		log, err := logging.New(a.config.LogFormat, a.config.LogLevel, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		a.log = log
	}
	if a.reader == nil {
		a.reader = bufio.NewReader(cmd.InOrStdin())
	}
	if a.authService == nil {
		a.authService = services.NewAuthService(a.config.TokenFile, a.log)
	}
	return nil
}

// connect builds the API services on first use.
func (a *App) connect(ctx context.Context) error {
	if a.connected {
		return nil
	}
	token := a.config.Token
	if token == "" {
		t, err := a.authService.LoadToken(ctx)
		if err != nil {
			return fmt.Errorf("%w (run `tsheets login`)", err)
		}
		token = t
	}
	a.useClient(a.dial(token))
	return nil
}

// resetClient forgets the API services; the next command reconnects with
// whatever token is then configured or stored.
func (a *App) resetClient() {
	a.connected = false
}

func (a *App) useClient(c client.Client) {
	refs := cache.New(c, a.log)
	a.timesheetService = services.NewTimesheetService(c, refs, a.log)
	a.totalsService = services.NewTotalsService(c, refs, a.log)
	a.referenceService = services.NewReferenceService(refs)
	a.connected = true
}

// withClient wraps a RunE so that it runs with the API services available.
func (a *App) withClient(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.connect(cmd.Context()); err != nil {
			return err
		}
		return run(cmd, args)
	}
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
