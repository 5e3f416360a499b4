package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// runEditor is a test seam; it opens path in editor and waits for it to exit.
var runEditor = func(ctx context.Context, editor, path string) error {
	parts := strings.Fields(editor)
	c := exec.CommandContext(ctx, parts[0], append(parts[1:], path)...)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	return c.Run()
}

// editorCommand picks the configured editor, then $VISUAL, then $EDITOR.
func (a *App) editorCommand() string {
	for _, e := range []string{a.config.Editor, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(e) != "" {
			return e
		}
	}
	return "vi"
}

// editText lets the user edit text in a temporary YAML file and returns the
// saved contents.
func (a *App) editText(ctx context.Context, text []byte) ([]byte, error) {
	f, err := os.CreateTemp("", "tsheets-*.yaml")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(text); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	editor := a.editorCommand()
	a.log.Debug(ctx, "starting editor", "editor", editor, "path", path)
	if err := runEditor(ctx, editor, path); err != nil {
		return nil, fmt.Errorf("running editor %q: %w", editor, err)
	}
	return os.ReadFile(path)
}
