package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls [][]string
}

func (f *fakeExec) Exec(ctx context.Context, args []string, w io.Writer) error {
	f.calls = append(f.calls, args)
	return nil
}

func TestRunREPL_DispatchesLines(t *testing.T) {
	input := strings.Join([]string{
		"status",
		"",
		"in -j Admin -n \"x\"",
		"help",
		"in \"unterminated",
		"shell",
		"exit",
		"out",
	}, "\n")

	exec := &fakeExec{}
	var buf strings.Builder
	runREPL(context.Background(), exec, func() string { return "off" }, bufio.NewReader(strings.NewReader(input)), &buf)

	assert.Equal(t, [][]string{
		{"status"},
		{"in", "-j", "Admin", "-n", "x"},
		{"--help"},
	}, exec.calls)
	assert.Contains(t, buf.String(), "tsheets off> ")
	assert.Contains(t, buf.String(), "Already in the shell.")
	assert.Contains(t, buf.String(), "Bye!")
	assert.Contains(t, buf.String(), "unterminated")
}

func TestRunREPL_EOF(t *testing.T) {
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("totals")), io.Discard)

	assert.Equal(t, [][]string{{"totals"}}, exec.calls)
}

func TestRunREPL_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("status\n")), io.Discard)
	assert.Empty(t, exec.calls)
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  status  ", []string{"status"}},
		{`in -n "code review" -F 'Ticket=A B'`, []string{"in", "-n", "code review", "-F", "Ticket=A B"}},
		{`in -n ""`, []string{"in", "-n", ""}},
		{`a\ b c`, []string{"a b", "c"}},
		{`'it\s' "say \"hi\""`, []string{`it\s`, `say "hi"`}},
	}
	for _, tt := range tests {
		got, err := splitArgs(tt.in)
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := splitArgs(`in -n "open`)
	assert.Error(t, err)
}
