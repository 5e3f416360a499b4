package services

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/tsheets/internal/client/cache"
	"github.com/dmitrijs2005/tsheets/internal/client/client/clienttest"
	"github.com/dmitrijs2005/tsheets/internal/client/models"
	"github.com/dmitrijs2005/tsheets/internal/logging"
)

var (
	pst = time.FixedZone("PST", -8*3600)
	// a Wednesday
	fixedNow = time.Date(2024, 3, 6, 12, 0, 0, 0, pst)
)

func newFakeClient() *clienttest.Fake {
	f := clienttest.New()
	f.User = models.User{ID: 1, FirstName: "Ada", LastName: "Lovelace", Username: "ada"}
	f.JobCodePages = []map[int64]models.RawJobCode{
		{
			1: {ID: 1, Name: "Client", Active: true},
			2: {ID: 2, ParentID: 1, Name: "Project", Active: true},
			3: {ID: 3, ParentID: 2, Name: "Task", Active: true},
		},
		{4: {ID: 4, Name: "Admin", Active: true}},
	}
	f.Assignments = []models.JobCodeAssignment{
		{ID: 10, UserID: 1, JobCodeID: 3, Active: true},
		{ID: 11, UserID: 1, JobCodeID: 4, Active: true},
	}
	f.Fields = map[int64]models.RawCustomField{
		7: {ID: 7, Name: "Ticket", Active: true},
		9: {ID: 9, Name: "Comment", Active: true},
	}
	f.FieldItems = map[int64]map[int64]models.RawCustomFieldItem{
		7: {
			100: {ID: 100, CustomFieldID: 7, Name: "Alpha", Active: true},
			101: {ID: 101, CustomFieldID: 7, Name: "Beta", Active: true},
		},
	}
	return f
}

func newTestTimesheetService(t *testing.T) (*clienttest.Fake, *timesheetService) {
	t.Helper()
	f := newFakeClient()
	refs := cache.New(f, logging.Discard())
	svc := NewTimesheetService(f, refs, logging.Discard()).(*timesheetService)
	svc.now = func() time.Time { return fixedNow }
	return f, svc
}

func ptr[T any](v T) *T { return &v }
