package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
)

// execIface is the command surface the REPL drives. The real App satisfies
// it by running the command tree; tests provide a lightweight stub.
type execIface interface {
	Exec(ctx context.Context, args []string, w io.Writer) error
}

// runREPL reads lines from reader and runs each one as a tsheets command
// line. It returns on EOF or when the user types "exit" or "quit".
//
// Command errors are printed by the command tree itself, so a failing
// command does not end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "tsheets %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}

		args, err := splitArgs(line)
		if err != nil {
			fmt.Fprintln(w, "Error:", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "help", "?":
			_ = a.Exec(ctx, []string{"--help"}, w)
		case "shell":
			fmt.Fprintln(w, "Already in the shell.")
		default:
			_ = a.Exec(ctx, args, w)
		}
	}
}

// splitArgs splits line on whitespace. Single and double quotes group words
// and a backslash escapes the next character outside single quotes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped, inWord = true, true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote, inWord = r, true
		case unicode.IsSpace(r):
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 || escaped {
		return nil, errors.New("unterminated quote or escape")
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}

// Exec runs one command line against a fresh command tree sharing this App.
func (a *App) Exec(ctx context.Context, args []string, w io.Writer) error {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(w)
	cmd.SetErr(w)
	return cmd.ExecuteContext(ctx)
}

// shellStatus shows whether the user is on the clock and on which job code.
func (a *App) shellStatus(ctx context.Context) string {
	if err := a.connect(ctx); err != nil {
		return "no token"
	}
	cur, err := a.timesheetService.Current(ctx)
	switch {
	case err != nil:
		return "?"
	case cur == nil:
		return "off"
	}
	form, err := cur.TextForm(ctx)
	if err != nil {
		return "on " + cur.JobCode().String()
	}
	return "on " + form.JobCode
}

func newShellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively",
		Long: `Start an interactive shell. Each line is a tsheets command line; reference
data is fetched once and reused for the whole session.`,
		Args: cobra.NoArgs,
		RunE: app.withClient(func(cmd *cobra.Command, args []string) error {
			if app.inShell {
				return errors.New("already in the shell")
			}
			app.inShell = true
			defer func() { app.inShell = false }()

			ctx := cmd.Context()
			fmt.Fprintln(out(cmd), "Type help for commands, exit to leave.")
			runREPL(ctx, app, func() string { return app.shellStatus(ctx) }, app.reader, out(cmd))
			return nil
		}),
	}
}
