package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tsheets/internal/client/models"
)

const (
	endpointCurrentUser        = "current_user"
	endpointCustomFields       = "customfields"
	endpointCustomFieldItems   = "customfielditems"
	endpointJobCodes           = "jobcodes"
	endpointJobCodeAssignments = "jobcode_assignments"
	endpointTimesheets         = "timesheets"
	endpointCurrentTotals      = "reports/current_totals"
	endpointPayroll            = "reports/payroll"
)

// APIClient implements Client over a Transport.
type APIClient struct {
	transport Transport
}

func NewAPIClient(transport Transport) *APIClient {
	return &APIClient{transport: transport}
}

type dataPayload struct {
	Data any `json:"data"`
}

type batchTimesheet struct {
	models.WireTimesheet
	itemStatus
}

func (c *APIClient) CurrentUser(ctx context.Context) (models.User, error) {
	body, err := c.transport.Request(ctx, endpointCurrentUser, http.MethodGet, nil, nil)
	if err != nil {
		return models.User{}, err
	}
	users, _, err := decodeRecords[models.User](endpointCurrentUser, "users", body)
	if err != nil {
		return models.User{}, err
	}
	if len(users) == 0 {
		return models.User{}, &DecodeError{Endpoint: endpointCurrentUser, Err: errors.New("no user record")}
	}
	return first(endpointCurrentUser, users)
}

func (c *APIClient) CustomFields(ctx context.Context) (map[int64]models.RawCustomField, error) {
	body, err := c.transport.Request(ctx, endpointCustomFields, http.MethodGet, nil, nil)
	if err != nil {
		return nil, err
	}
	records, _, err := decodeRecords[models.RawCustomField](endpointCustomFields, "customfields", body)
	if err != nil {
		return nil, err
	}
	return byID(endpointCustomFields, records)
}

func (c *APIClient) CustomFieldItems(ctx context.Context, fieldID int64) (map[int64]models.RawCustomFieldItem, error) {
	params := url.Values{"customfield_id": {strconv.FormatInt(fieldID, 10)}}
	body, err := c.transport.Request(ctx, endpointCustomFieldItems, http.MethodGet, nil, params)
	if err != nil {
		return nil, err
	}
	records, _, err := decodeRecords[models.RawCustomFieldItem](endpointCustomFieldItems, "customfielditems", body)
	if err != nil {
		return nil, err
	}
	return byID(endpointCustomFieldItems, records)
}

func (c *APIClient) JobCodes(ctx context.Context, page int) (map[int64]models.RawJobCode, bool, error) {
	params := url.Values{"page": {strconv.Itoa(page)}}
	body, err := c.transport.Request(ctx, endpointJobCodes, http.MethodGet, nil, params)
	if err != nil {
		return nil, false, err
	}
	records, more, err := decodeRecords[models.RawJobCode](endpointJobCodes, "jobcodes", body)
	if err != nil {
		return nil, false, err
	}
	codes, err := byID(endpointJobCodes, records)
	if err != nil {
		return nil, false, err
	}
	return codes, more, nil
}

func (c *APIClient) JobCodeAssignments(ctx context.Context, userID int64) ([]models.JobCodeAssignment, error) {
	params := url.Values{"user_ids": {strconv.FormatInt(userID, 10)}}
	body, err := c.transport.Request(ctx, endpointJobCodeAssignments, http.MethodGet, nil, params)
	if err != nil {
		return nil, err
	}
	records, _, err := decodeRecords[models.JobCodeAssignment](endpointJobCodeAssignments, "jobcode_assignments", body)
	if err != nil {
		return nil, err
	}
	return ordered(endpointJobCodeAssignments, records)
}

// CreateTimesheets posts a batch and returns the created records in request
// order.
func (c *APIClient) CreateTimesheets(ctx context.Context, items []models.TimesheetCreate) ([]models.WireTimesheet, error) {
	return c.writeTimesheets(ctx, http.MethodPost, items)
}

func (c *APIClient) UpdateTimesheets(ctx context.Context, items []models.TimesheetUpdate) ([]models.WireTimesheet, error) {
	return c.writeTimesheets(ctx, http.MethodPut, items)
}

func (c *APIClient) writeTimesheets(ctx context.Context, method string, items any) ([]models.WireTimesheet, error) {
	body, err := c.transport.Request(ctx, endpointTimesheets, method, dataPayload{Data: items}, nil)
	if err != nil {
		return nil, err
	}
	records, _, err := decodeRecords[batchTimesheet](endpointTimesheets, "timesheets", body)
	if err != nil {
		return nil, err
	}
	list, err := ordered(endpointTimesheets, records)
	if err != nil {
		return nil, err
	}

	out := make([]models.WireTimesheet, 0, len(list))
	for _, rec := range list {
		if err := rec.check(method); err != nil {
			return nil, err
		}
		out = append(out, rec.WireTimesheet)
	}
	return out, nil
}

func (c *APIClient) DeleteTimesheets(ctx context.Context, ids []int64) error {
	params := url.Values{"ids": {joinIDs(ids)}}
	body, err := c.transport.Request(ctx, endpointTimesheets, http.MethodDelete, nil, params)
	if err != nil {
		return err
	}
	records, _, err := decodeRecords[itemStatus](endpointTimesheets, "timesheets", body)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := rec.check(http.MethodDelete); err != nil {
			return err
		}
	}
	return nil
}

// Timesheets lists timesheets matching filter ordered by id.
func (c *APIClient) Timesheets(ctx context.Context, filter models.TimesheetFilter) ([]models.WireTimesheet, error) {
	params := url.Values{}
	if filter.OnTheClock != "" {
		params.Set("on_the_clock", filter.OnTheClock)
	}
	if filter.StartDate != "" {
		params.Set("start_date", filter.StartDate)
	}
	if len(filter.UserIDs) > 0 {
		params.Set("user_ids", joinIDs(filter.UserIDs))
	}

	body, err := c.transport.Request(ctx, endpointTimesheets, http.MethodGet, nil, params)
	if err != nil {
		return nil, err
	}
	records, _, err := decodeRecords[models.WireTimesheet](endpointTimesheets, "timesheets", body)
	if err != nil {
		return nil, err
	}
	return ordered(endpointTimesheets, records)
}

func (c *APIClient) CurrentTotals(ctx context.Context, userID int64) (models.CurrentTotals, error) {
	payload := dataPayload{Data: map[string]string{
		"on_the_clock": "both",
		"user_ids":     strconv.FormatInt(userID, 10),
	}}
	body, err := c.transport.Request(ctx, endpointCurrentTotals, http.MethodPost, payload, nil)
	if err != nil {
		return models.CurrentTotals{}, err
	}
	records, _, err := decodeRecords[models.CurrentTotals](endpointCurrentTotals, "current_totals", body)
	if err != nil {
		return models.CurrentTotals{}, err
	}
	return first(endpointCurrentTotals, records)
}

func (c *APIClient) PayrollReport(ctx context.Context, filter models.PayrollFilter) (models.PayrollReport, error) {
	body, err := c.transport.Request(ctx, endpointPayroll, http.MethodPost, dataPayload{Data: filter}, nil)
	if err != nil {
		return models.PayrollReport{}, err
	}
	records, _, err := decodeRecords[models.PayrollReport](endpointPayroll, "payroll_report", body)
	if err != nil {
		return models.PayrollReport{}, err
	}
	return first(endpointPayroll, records)
}

func (s itemStatus) check(method string) error {
	if s.StatusCode == 0 || s.StatusCode == http.StatusOK {
		return nil
	}
	return &TransportError{
		Endpoint:   endpointTimesheets,
		Method:     method,
		StatusCode: s.StatusCode,
		Body:       s.StatusMessage,
	}
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
