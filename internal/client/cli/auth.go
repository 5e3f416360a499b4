package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// getSecret is an indirection used to facilitate testing.
var getSecret = GetSecret

func newLoginCmd(app *App) *cobra.Command {
	var (
		token    string
		noVerify bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the API access token",
		Long: `Store the API access token in the token file with owner-only
permissions. The token is checked against the API first unless --no-verify
is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := out(cmd)

			if token == "" {
				t, err := getSecret("API token", w)
				if err != nil {
					return err
				}
				token = t
			}

			if noVerify {
				if err := app.authService.SaveToken(ctx, token); err != nil {
					return err
				}
				app.resetClient()
				fmt.Fprintln(w, "Token saved.")
				return nil
			}

			user, err := app.authService.Verify(ctx, app.dial(token))
			if err != nil {
				return err
			}
			if err := app.authService.SaveToken(ctx, token); err != nil {
				return err
			}
			app.resetClient()
			fmt.Fprintf(w, "Logged in as %s.\n", renderTitle(user.DisplayName()))
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "token to store instead of prompting")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "store the token without checking it")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.authService.Logout(cmd.Context()); err != nil {
				return err
			}
			app.resetClient()
			fmt.Fprintln(out(cmd), "Token removed.")
			return nil
		},
	}
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user the token belongs to",
		Args:  cobra.NoArgs,
		RunE: app.withClient(func(cmd *cobra.Command, args []string) error {
			user, err := app.referenceService.User(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "%s (%s, id %d)\n", renderTitle(user.DisplayName()), user.Username, user.ID)
			return nil
		}),
	}
}
