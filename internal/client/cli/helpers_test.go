package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/tsheets/internal/client/client"
	"github.com/dmitrijs2005/tsheets/internal/client/client/clienttest"
	"github.com/dmitrijs2005/tsheets/internal/client/config"
	"github.com/dmitrijs2005/tsheets/internal/client/models"
	"github.com/dmitrijs2005/tsheets/internal/logging"
	"github.com/dmitrijs2005/tsheets/internal/timex"
)

func newFakeClient() *clienttest.Fake {
	f := clienttest.New()
	f.User = models.User{ID: 1, FirstName: "Ada", LastName: "Lovelace", Username: "ada"}
	f.JobCodePages = []map[int64]models.RawJobCode{
		{
			1: {ID: 1, Name: "Client", Active: true},
			2: {ID: 2, ParentID: 1, Name: "Project", Active: true},
			3: {ID: 3, ParentID: 2, Name: "Task", Active: true},
			4: {ID: 4, Name: "Admin", Active: true},
		},
	}
	f.Assignments = []models.JobCodeAssignment{
		{ID: 10, UserID: 1, JobCodeID: 3, Active: true},
		{ID: 11, UserID: 1, JobCodeID: 4, Active: true},
	}
	f.Fields = map[int64]models.RawCustomField{
		7: {ID: 7, Name: "Ticket", Active: true},
	}
	f.FieldItems = map[int64]map[int64]models.RawCustomFieldItem{
		7: {
			100: {ID: 100, CustomFieldID: 7, Name: "Alpha", Active: true},
			101: {ID: 101, CustomFieldID: 7, Name: "Beta", Active: true},
		},
	}
	return f
}

// newTestApp returns an App whose API client is an in-memory fake.
func newTestApp(t *testing.T) (*App, *clienttest.Fake) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Token = "test-token"
	cfg.TokenFile = filepath.Join(t.TempDir(), "token")

	f := newFakeClient()
	app := NewApp(cfg)
	app.log = logging.Discard()
	app.dial = func(string) client.Client { return f }
	return app, f
}

func runCLI(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(app)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// addOpenSheet stores a timesheet on job code 3 that started an hour ago.
func addOpenSheet(f *clienttest.Fake, id int64) {
	f.AddSheet(models.WireTimesheet{
		ID:         id,
		UserID:     1,
		JobCodeID:  3,
		Start:      timex.FormatTimestamp(time.Now().Add(-time.Hour)),
		Notes:      "morning",
		OnTheClock: true,
		Type:       "regular",
	})
}
