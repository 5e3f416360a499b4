package client

import (
	"context"

	"github.com/dmitrijs2005/tsheets/internal/client/models"
)

// Client is the typed endpoint surface of the time-tracking service.
type Client interface {
	CurrentUser(ctx context.Context) (models.User, error)
	CustomFields(ctx context.Context) (map[int64]models.RawCustomField, error)
	CustomFieldItems(ctx context.Context, fieldID int64) (map[int64]models.RawCustomFieldItem, error)
	// JobCodes returns one page of job codes and whether more pages follow.
	JobCodes(ctx context.Context, page int) (map[int64]models.RawJobCode, bool, error)
	JobCodeAssignments(ctx context.Context, userID int64) ([]models.JobCodeAssignment, error)
	CreateTimesheets(ctx context.Context, items []models.TimesheetCreate) ([]models.WireTimesheet, error)
	UpdateTimesheets(ctx context.Context, items []models.TimesheetUpdate) ([]models.WireTimesheet, error)
	DeleteTimesheets(ctx context.Context, ids []int64) error
	Timesheets(ctx context.Context, filter models.TimesheetFilter) ([]models.WireTimesheet, error)
	CurrentTotals(ctx context.Context, userID int64) (models.CurrentTotals, error)
	PayrollReport(ctx context.Context, filter models.PayrollFilter) (models.PayrollReport, error)
}
