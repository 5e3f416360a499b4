package cli

import (
	"strings"

	"github.com/dmitrijs2005/tsheets/internal/client/config"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the tsheets command tree around cfg.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	return newRootCmd(NewApp(cfg))
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tsheets",
		Short:        "Clock in and out of TSheets from the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Store the API token
  tsheets login

  # Clock in to a job code by name, with a custom field
  tsheets in -j "Client : Project" -F Ticket=ABC-12 -n "code review"

  # See what is running and how long you have worked
  tsheets status

  # Fix the current entry in $EDITOR, then clock out
  tsheets edit
  tsheets out
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
	}

	config.BindFlags(cmd.PersistentFlags(), app.config)

	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newInCmd(app))
	cmd.AddCommand(newOutCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newUpdateCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newTotalsCmd(app))
	cmd.AddCommand(newJobCodesCmd(app))
	cmd.AddCommand(newFieldsCmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoAmICmd(app))
	cmd.AddCommand(newShellCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
