// Package clienttest provides an in-memory client.Client for tests.
package clienttest

import (
	"context"
	"net/http"
	"sort"
	"strconv"

	"github.com/dmitrijs2005/tsheets/internal/client/client"
	"github.com/dmitrijs2005/tsheets/internal/client/models"
)

// Method names used as keys of Fake.Calls and Fake.Errs.
const (
	MethodCurrentUser        = "CurrentUser"
	MethodCustomFields       = "CustomFields"
	MethodCustomFieldItems   = "CustomFieldItems"
	MethodJobCodes           = "JobCodes"
	MethodJobCodeAssignments = "JobCodeAssignments"
	MethodCreateTimesheets   = "CreateTimesheets"
	MethodUpdateTimesheets   = "UpdateTimesheets"
	MethodDeleteTimesheets   = "DeleteTimesheets"
	MethodTimesheets         = "Timesheets"
	MethodCurrentTotals      = "CurrentTotals"
	MethodPayrollReport      = "PayrollReport"
)

// Fake keeps timesheets in memory and serves canned reference data. Errs
// injects an error per method name.
type Fake struct {
	User         models.User
	JobCodePages []map[int64]models.RawJobCode
	Assignments  []models.JobCodeAssignment
	Fields       map[int64]models.RawCustomField
	FieldItems   map[int64]map[int64]models.RawCustomFieldItem
	Sheets       map[int64]models.WireTimesheet
	Totals       models.CurrentTotals
	Payroll      models.PayrollReport

	Errs  map[string]error
	Calls map[string]int

	Created        []models.TimesheetCreate
	Updated        []models.TimesheetUpdate
	Deleted        []int64
	PayrollFilters []models.PayrollFilter
	Filters        []models.TimesheetFilter

	nextID int64
}

var _ client.Client = (*Fake)(nil)

func New() *Fake {
	return &Fake{
		Sheets: map[int64]models.WireTimesheet{},
		Errs:   map[string]error{},
		Calls:  map[string]int{},
		nextID: 1000,
	}
}

func (f *Fake) hit(method string) error {
	f.Calls[method]++
	return f.Errs[method]
}

func (f *Fake) CurrentUser(ctx context.Context) (models.User, error) {
	if err := f.hit(MethodCurrentUser); err != nil {
		return models.User{}, err
	}
	return f.User, nil
}

func (f *Fake) CustomFields(ctx context.Context) (map[int64]models.RawCustomField, error) {
	if err := f.hit(MethodCustomFields); err != nil {
		return nil, err
	}
	return f.Fields, nil
}

func (f *Fake) CustomFieldItems(ctx context.Context, fieldID int64) (map[int64]models.RawCustomFieldItem, error) {
	if err := f.hit(MethodCustomFieldItems); err != nil {
		return nil, err
	}
	items := f.FieldItems[fieldID]
	if items == nil {
		items = map[int64]models.RawCustomFieldItem{}
	}
	return items, nil
}

// JobCodes serves JobCodePages, page 1 first.
func (f *Fake) JobCodes(ctx context.Context, page int) (map[int64]models.RawJobCode, bool, error) {
	if err := f.hit(MethodJobCodes); err != nil {
		return nil, false, err
	}
	if page < 1 || page > len(f.JobCodePages) {
		return map[int64]models.RawJobCode{}, false, nil
	}
	return f.JobCodePages[page-1], page < len(f.JobCodePages), nil
}

func (f *Fake) JobCodeAssignments(ctx context.Context, userID int64) ([]models.JobCodeAssignment, error) {
	if err := f.hit(MethodJobCodeAssignments); err != nil {
		return nil, err
	}
	var out []models.JobCodeAssignment
	for _, a := range f.Assignments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *Fake) CreateTimesheets(ctx context.Context, items []models.TimesheetCreate) ([]models.WireTimesheet, error) {
	if err := f.hit(MethodCreateTimesheets); err != nil {
		return nil, err
	}
	out := make([]models.WireTimesheet, 0, len(items))
	for _, item := range items {
		f.Created = append(f.Created, item)
		f.nextID++
		jobCodeID, _ := strconv.ParseInt(item.JobCodeID, 10, 64)
		ts := models.WireTimesheet{
			ID:           f.nextID,
			UserID:       item.UserID,
			JobCodeID:    jobCodeID,
			Start:        item.Start,
			End:          item.End,
			Date:         datePart(item.Start),
			Notes:        item.Notes,
			CustomFields: item.CustomFields.Clone(),
			OnTheClock:   item.End == "",
			Type:         item.Type,
		}
		f.Sheets[ts.ID] = ts
		out = append(out, ts)
	}
	return out, nil
}

func (f *Fake) UpdateTimesheets(ctx context.Context, items []models.TimesheetUpdate) ([]models.WireTimesheet, error) {
	if err := f.hit(MethodUpdateTimesheets); err != nil {
		return nil, err
	}
	out := make([]models.WireTimesheet, 0, len(items))
	for _, item := range items {
		f.Updated = append(f.Updated, item)
		ts, ok := f.Sheets[item.ID]
		if !ok {
			return nil, &client.TransportError{Endpoint: "timesheets", Method: http.MethodPut, StatusCode: http.StatusNotFound}
		}
		if item.Start != nil {
			ts.Start = *item.Start
			ts.Date = datePart(ts.Start)
		}
		if item.End != nil {
			ts.End = *item.End
		}
		if item.JobCodeID != nil {
			ts.JobCodeID, _ = strconv.ParseInt(*item.JobCodeID, 10, 64)
		}
		if item.Notes != nil {
			ts.Notes = *item.Notes
		}
		if item.CustomFields != nil {
			ts.CustomFields = item.CustomFields.Clone()
		}
		ts.OnTheClock = ts.End == ""
		f.Sheets[ts.ID] = ts
		out = append(out, ts)
	}
	return out, nil
}

func (f *Fake) DeleteTimesheets(ctx context.Context, ids []int64) error {
	if err := f.hit(MethodDeleteTimesheets); err != nil {
		return err
	}
	for _, id := range ids {
		f.Deleted = append(f.Deleted, id)
		delete(f.Sheets, id)
	}
	return nil
}

// Timesheets honours the on_the_clock and start_date filters.
func (f *Fake) Timesheets(ctx context.Context, filter models.TimesheetFilter) ([]models.WireTimesheet, error) {
	if err := f.hit(MethodTimesheets); err != nil {
		return nil, err
	}
	f.Filters = append(f.Filters, filter)

	out := []models.WireTimesheet{}
	for _, ts := range f.Sheets {
		switch filter.OnTheClock {
		case "yes":
			if !ts.OnTheClock {
				continue
			}
		case "no":
			if ts.OnTheClock {
				continue
			}
		}
		if filter.StartDate != "" && ts.Date != "" && ts.Date < filter.StartDate {
			continue
		}
		ts.CustomFields = ts.CustomFields.Clone()
		out = append(out, ts)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *Fake) CurrentTotals(ctx context.Context, userID int64) (models.CurrentTotals, error) {
	if err := f.hit(MethodCurrentTotals); err != nil {
		return models.CurrentTotals{}, err
	}
	return f.Totals, nil
}

func (f *Fake) PayrollReport(ctx context.Context, filter models.PayrollFilter) (models.PayrollReport, error) {
	if err := f.hit(MethodPayrollReport); err != nil {
		return models.PayrollReport{}, err
	}
	f.PayrollFilters = append(f.PayrollFilters, filter)
	return f.Payroll, nil
}

// AddSheet stores ts as if it had been created remotely.
func (f *Fake) AddSheet(ts models.WireTimesheet) {
	if ts.Date == "" {
		ts.Date = datePart(ts.Start)
	}
	f.Sheets[ts.ID] = ts
}

func datePart(ts string) string {
	if len(ts) < 10 {
		return ""
	}
	return ts[:10]
}
