package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/tsheets/internal/client/models"
	"github.com/dmitrijs2005/tsheets/internal/client/services"
	"github.com/dmitrijs2005/tsheets/internal/client/textform"
	"github.com/dmitrijs2005/tsheets/internal/common"
	"github.com/dmitrijs2005/tsheets/internal/timex"
	"github.com/spf13/cobra"
)

var errNoTimesheet = fmt.Errorf("no timesheet in the last week: %w", common.ErrInvalidState)
var errNotOnTheClock = fmt.Errorf("not on the clock: %w", common.ErrInvalidState)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current timesheet and totals",
		Args:  cobra.NoArgs,
		RunE: app.withClient(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := out(cmd)

			cur, err := app.timesheetService.Current(ctx)
			if err != nil {
				return err
			}
			if cur == nil {
				fmt.Fprintln(w, renderTitle("Not on the clock"))
			} else {
				fmt.Fprintf(w, "%s %s %s\n", renderTitle(fmt.Sprintf("Timesheet %d", cur.ID())),
					renderClock(true), timex.FormatDuration(cur.Elapsed()))
				if err := app.printForm(ctx, w, cur); err != nil {
					return err
				}
			}

			totals, err := app.totalsService.Totals(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(w)
			fmt.Fprint(w, renderTotals(totals))
			return nil
		}),
	}
}

func newInCmd(app *App) *cobra.Command {
	var (
		jobCode, notes, start, file string
		fields                      []string
		switchCurrent               bool
	)

	cmd := &cobra.Command{
		Use:   "in",
		Short: "Clock in",
		Long: `Clock in to a job code. The job code and custom fields may be given by
name or id. With --file the entry is read from a text form ("-" for stdin);
flags override its values. A text form with an end creates a closed entry.`,
		Args: cobra.NoArgs,
		RunE: app.withClient(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := out(cmd)

			var form models.TextForm
			if file != "" {
				r, closeFn, err := openInput(cmd, file)
				if err != nil {
					return err
				}
				form, err = textform.Decode(r)
				closeFn()
				if err != nil {
					return err
				}
				if form.ID != nil {
					return fmt.Errorf("the text form already has an id (%d); use `tsheets update`", *form.ID)
				}
			}

			if jobCode != "" {
				form.JobCode = jobCode
			}
			if cmd.Flags().Changed("notes") {
				form.Notes = notes
			}
			if start != "" {
				form.Start = start
			}
			if len(fields) > 0 {
				kv, err := ParseKeyValues(fields)
				if err != nil {
					return err
				}
				if form.Fields == nil {
					form.Fields = models.FieldMap{}
				}
				for k, v := range kv {
					form.Fields[k] = v
				}
			}
			if form.JobCode == "" {
				jc, err := GetSimpleText(app.reader, "Job code (name or id)", w)
				if err != nil && !errors.Is(err, io.EOF) {
					return err
				}
				if jc == "" {
					return errors.New("a job code is required (-j)")
				}
				form.JobCode = jc
			}

			ts, err := app.timesheetService.FromTextForm(ctx, form)
			if err != nil {
				return err
			}

			cur, err := app.timesheetService.Current(ctx)
			if err != nil {
				return err
			}
			if cur != nil {
				if !switchCurrent {
					return fmt.Errorf("already on the clock (timesheet %d); use --switch to clock out first: %w",
						cur.ID(), common.ErrInvalidState)
				}
				if err := cur.ClockOut(ctx); err != nil {
					return err
				}
				fmt.Fprintf(w, "Clocked out of timesheet %d after %s\n", cur.ID(), timex.FormatDuration(cur.Elapsed()))
			}

			if err := ts.ClockIn(ctx); err != nil {
				return err
			}
			if ts.OnTheClock() {
				fmt.Fprintf(w, "%s %s\n", renderTitle(fmt.Sprintf("Timesheet %d", ts.ID())), renderClock(true))
			} else {
				fmt.Fprintf(w, "%s created\n", renderTitle(fmt.Sprintf("Timesheet %d", ts.ID())))
			}
			return app.printForm(ctx, w, ts)
		}),
	}

	cmd.Flags().StringVarP(&jobCode, "jobcode", "j", "", "job code name or id")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "notes")
	cmd.Flags().StringArrayVarP(&fields, "field", "F", nil, "custom field as name=value (repeatable)")
	cmd.Flags().StringVar(&start, "start", "", "start time (default now)")
	cmd.Flags().StringVar(&file, "file", "", "read the entry from a text form file")
	cmd.Flags().BoolVar(&switchCurrent, "switch", false, "clock out of the current timesheet first")
	return cmd
}

func newOutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "out",
		Short: "Clock out of the current timesheet",
		Args:  cobra.NoArgs,
		RunE: app.withClient(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cur, err := app.timesheetService.Current(ctx)
			if err != nil {
				return err
			}
			if cur == nil {
				return errNotOnTheClock
			}
			if err := cur.ClockOut(ctx); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Clocked out of timesheet %d after %s\n", cur.ID(), timex.FormatDuration(cur.Elapsed()))
			return nil
		}),
	}
}

func newEditCmd(app *App) *cobra.Command {
	var last bool
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the current timesheet in $EDITOR",
		Long: `Open the text form of the current (or, with --last, the most recent)
timesheet in an editor and apply the saved document as an update. Clearing
or garbling the end reopens the entry.`,
		Args: cobra.NoArgs,
		RunE: app.withClient(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := out(cmd)

			ts, err := app.target(ctx, last)
			if err != nil {
				return err
			}
			form, err := ts.TextForm(ctx)
			if err != nil {
				return err
			}
			var before bytes.Buffer
			if err := textform.Encode(&before, form); err != nil {
				return err
			}

			after, err := app.editText(ctx, before.Bytes())
			if err != nil {
				return err
			}
			if bytes.Equal(before.Bytes(), after) {
				fmt.Fprintln(w, "No changes.")
				return nil
			}

			patch, err := textform.DecodePatch(bytes.NewReader(after))
			if err != nil {
				return err
			}
			return app.applyPatch(ctx, w, ts, patch)
		}),
	}
	cmd.Flags().BoolVar(&last, "last", false, "edit the most recent timesheet instead of the current one")
	return cmd
}

func newUpdateCmd(app *App) *cobra.Command {
	var (
		file string
		last bool
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Apply a patch file to the current timesheet",
		Long: `Apply a YAML patch ("-" for stdin) to the current (or, with --last, the
most recent) timesheet. Keys left out keep their values; a fields mapping
replaces all custom fields.`,
		Args: cobra.NoArgs,
		RunE: app.withClient(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, closeFn, err := openInput(cmd, file)
			if err != nil {
				return err
			}
			patch, err := textform.DecodePatch(r)
			closeFn()
			if err != nil {
				return err
			}

			ts, err := app.target(ctx, last)
			if err != nil {
				return err
			}
			return app.applyPatch(ctx, out(cmd), ts, patch)
		}),
	}
	cmd.Flags().StringVar(&file, "file", "-", "patch file")
	cmd.Flags().BoolVar(&last, "last", false, "update the most recent timesheet instead of the current one")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	var last, yes bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the current timesheet",
		Args:  cobra.NoArgs,
		RunE: app.withClient(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := out(cmd)

			ts, err := app.target(ctx, last)
			if err != nil {
				return err
			}
			id := ts.ID()
			if !yes {
				ok, err := Confirm(app.reader, fmt.Sprintf("Delete timesheet %d?", id), w)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(w, "Aborted.")
					return nil
				}
			}
			if err := ts.Delete(ctx); err != nil {
				return err
			}
			fmt.Fprintf(w, "Deleted timesheet %d\n", id)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&last, "last", false, "delete the most recent timesheet instead of the current one")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// target returns the current timesheet, or the latest one when last is set.
func (a *App) target(ctx context.Context, last bool) (*services.Timesheet, error) {
	var (
		ts  *services.Timesheet
		err error
	)
	if last {
		ts, err = a.timesheetService.Last(ctx)
	} else {
		ts, err = a.timesheetService.Current(ctx)
	}
	if err != nil {
		return nil, err
	}
	if ts == nil {
		if last {
			return nil, errNoTimesheet
		}
		return nil, fmt.Errorf("%w (use --last for the most recent entry)", errNotOnTheClock)
	}
	return ts, nil
}

func (a *App) applyPatch(ctx context.Context, w io.Writer, ts *services.Timesheet, patch models.Patch) error {
	if patch.IsEmpty() {
		fmt.Fprintln(w, "Nothing to update.")
		return nil
	}
	if err := ts.Update(ctx, patch); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s updated, %s\n", renderTitle(fmt.Sprintf("Timesheet %d", ts.ID())), renderClock(ts.OnTheClock()))
	return a.printForm(ctx, w, ts)
}

func (a *App) printForm(ctx context.Context, w io.Writer, ts *services.Timesheet) error {
	form, err := ts.TextForm(ctx)
	if err != nil {
		return err
	}
	return textform.Encode(w, form)
}

// openInput opens path for reading; "-" is the command's stdin.
func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
