package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTotalsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Show shift, day and week totals",
		Args:  cobra.NoArgs,
		RunE: app.withClient(func(cmd *cobra.Command, args []string) error {
			totals, err := app.totalsService.Totals(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), renderTotals(totals))
			return nil
		}),
	}
}

func newJobCodesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "jobcodes",
		Aliases: []string{"jc"},
		Short:   "List the job codes you can clock in to",
		Args:    cobra.NoArgs,
		RunE: app.withClient(func(cmd *cobra.Command, args []string) error {
			codes, err := app.referenceService.JobCodes(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), renderJobCodes(codes))
			return nil
		}),
	}
}

func newFieldsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the active custom fields and their items",
		Args:  cobra.NoArgs,
		RunE: app.withClient(func(cmd *cobra.Command, args []string) error {
			fields, err := app.referenceService.Fields(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), renderFields(fields))
			return nil
		}),
	}
}
