package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tsheets/internal/client/customfields"
	"github.com/dmitrijs2005/tsheets/internal/client/jobcodes"
	"github.com/dmitrijs2005/tsheets/internal/client/models"
	"github.com/dmitrijs2005/tsheets/internal/common"
	"github.com/dmitrijs2005/tsheets/internal/timex"
)

// Timesheet is one time entry. A Timesheet that does not exist remotely
// can only be clocked in; the other mutations require an existing entry.
// A deleted Timesheet rejects every mutation.
//
// Invariant after every successful remote mutation:
// OnTheClock() == Exists() && end is unset.
type Timesheet struct {
	svc *timesheetService

	id           int64
	userID       int64
	jobCode      models.Ref
	start        time.Time
	end          *time.Time
	date         string
	notes        string
	customFields models.CustomFieldValues

	exists     bool
	onTheClock bool
	deleted    bool
}

func (t *Timesheet) ID() int64           { return t.id }
func (t *Timesheet) UserID() int64       { return t.userID }
func (t *Timesheet) JobCode() models.Ref { return t.jobCode }
func (t *Timesheet) Start() time.Time    { return t.start }
func (t *Timesheet) Date() string        { return t.date }
func (t *Timesheet) Notes() string       { return t.notes }
func (t *Timesheet) Exists() bool        { return t.exists }
func (t *Timesheet) OnTheClock() bool    { return t.onTheClock }
func (t *Timesheet) Deleted() bool       { return t.deleted }

func (t *Timesheet) checkDeleted(op string) error {
	if t.deleted {
		return fmt.Errorf("%s: timesheet was deleted: %w", op, common.ErrInvalidState)
	}
	return nil
}

// End returns the end time and whether it is set.
func (t *Timesheet) End() (time.Time, bool) {
	if t.end == nil {
		return time.Time{}, false
	}
	return *t.end, true
}

// CustomFields returns a copy of the stored values keyed by field id.
func (t *Timesheet) CustomFields() models.CustomFieldValues {
	return t.customFields.Clone()
}

// Elapsed is the time between start and end, or now while on the clock.
func (t *Timesheet) Elapsed() time.Duration {
	if t.end != nil {
		return t.end.Sub(t.start)
	}
	return t.svc.now().Sub(t.start)
}

// ClockIn creates the entry remotely and adopts the assigned id.
func (t *Timesheet) ClockIn(ctx context.Context) error {
	if err := t.checkDeleted("clock in"); err != nil {
		return err
	}
	if t.exists {
		return fmt.Errorf("clock in: timesheet %d already exists: %w", t.id, common.ErrInvalidState)
	}

	if t.userID == 0 {
		user, err := t.svc.cache.User(ctx)
		if err != nil {
			return err
		}
		t.userID = user.ID
	}

	created, err := t.svc.client.CreateTimesheets(ctx, []models.TimesheetCreate{{
		UserID:       t.userID,
		Type:         common.TimesheetTypeRegular,
		Start:        timex.FormatTimestamp(t.start),
		End:          formatEnd(t.end),
		JobCodeID:    t.jobCode.String(),
		Notes:        t.notes,
		CustomFields: nonNil(t.customFields),
	}})
	if err != nil {
		return fmt.Errorf("clock in: %w", err)
	}
	if len(created) == 0 {
		return fmt.Errorf("clock in: no timesheet in response: %w", common.ErrInvalidState)
	}

	t.id = created[0].ID
	if created[0].Date != "" {
		t.date = created[0].Date
	}
	t.exists = true
	t.onTheClock = t.end == nil
	t.svc.log.Info(ctx, "clocked in", "timesheet_id", t.id, "jobcode", t.jobCode.String())
	return nil
}

// ClockOut ends an open entry now. Only the end is sent.
func (t *Timesheet) ClockOut(ctx context.Context) error {
	if err := t.checkDeleted("clock out"); err != nil {
		return err
	}
	if !t.exists || !t.onTheClock {
		return fmt.Errorf("clock out: timesheet is not on the clock: %w", common.ErrInvalidState)
	}

	end := t.svc.now()
	endStr := timex.FormatTimestamp(end)
	if _, err := t.svc.client.UpdateTimesheets(ctx, []models.TimesheetUpdate{{ID: t.id, End: &endStr}}); err != nil {
		return fmt.Errorf("clock out: %w", err)
	}

	t.end = &end
	t.onTheClock = false
	t.svc.log.Info(ctx, "clocked out", "timesheet_id", t.id, "elapsed", t.Elapsed())
	return nil
}

// Update merges patch into the entry and sends the full record. Job code
// and custom fields resolve names to ids. An invalid start fails before
// any request; an end that does not parse clears the end.
func (t *Timesheet) Update(ctx context.Context, patch models.Patch) error {
	if err := t.checkDeleted("update"); err != nil {
		return err
	}
	if !t.exists {
		return fmt.Errorf("update: timesheet does not exist: %w", common.ErrInvalidState)
	}

	next := *t
	if err := next.apply(ctx, patch); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	startStr := timex.FormatTimestamp(next.start)
	endStr := formatEnd(next.end)
	jobCodeStr := next.jobCode.String()
	notes := next.notes
	_, err := t.svc.client.UpdateTimesheets(ctx, []models.TimesheetUpdate{{
		ID:           next.id,
		Start:        &startStr,
		End:          &endStr,
		JobCodeID:    &jobCodeStr,
		Notes:        &notes,
		CustomFields: nonNil(next.customFields),
	}})
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	next.onTheClock = next.end == nil
	*t = next
	t.svc.log.Info(ctx, "updated timesheet", "timesheet_id", t.id, "on_the_clock", t.onTheClock)
	return nil
}

// apply merges patch into t without any remote call.
func (t *Timesheet) apply(ctx context.Context, patch models.Patch) error {
	if patch.JobCode.Set {
		available, err := t.svc.cache.AvailableJobCodes(ctx)
		if err != nil {
			return err
		}
		t.jobCode = jobcodes.Resolve(available, models.ParseRef(patch.JobCode.Value)).Ref()
	}
	if patch.Notes.Set {
		t.notes = patch.Notes.Value
	}
	if patch.Fields.Set {
		fields, err := t.svc.cache.CustomFields(ctx)
		if err != nil {
			return err
		}
		t.customFields = customfields.Normalize(fields, patch.Fields.Value)
	}
	if patch.Start.Set {
		start, err := timex.ParseTimestamp(patch.Start.Value)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		t.start = start
	}
	if patch.End.Set {
		t.end = nil
		if end, err := timex.ParseTimestamp(patch.End.Value); err == nil {
			t.end = &end
		}
	}
	return nil
}

// Delete removes the entry remotely. Every later mutation fails with
// common.ErrInvalidState.
func (t *Timesheet) Delete(ctx context.Context) error {
	if err := t.checkDeleted("delete"); err != nil {
		return err
	}
	if !t.exists {
		return fmt.Errorf("delete: timesheet does not exist: %w", common.ErrInvalidState)
	}
	if err := t.svc.client.DeleteTimesheets(ctx, []int64{t.id}); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	t.svc.log.Info(ctx, "deleted timesheet", "timesheet_id", t.id)
	t.id = 0
	t.exists = false
	t.onTheClock = false
	t.deleted = true
	return nil
}

// TextForm projects the entry to its editable form with the job code and
// custom fields named.
func (t *Timesheet) TextForm(ctx context.Context) (models.TextForm, error) {
	available, err := t.svc.cache.AvailableJobCodes(ctx)
	if err != nil {
		return models.TextForm{}, err
	}
	fields, err := t.svc.cache.CustomFields(ctx)
	if err != nil {
		return models.TextForm{}, err
	}

	form := models.TextForm{
		UserID: t.userID,
		Start:  timex.FormatTimestamp(t.start),
		Fields: customfields.Render(fields, t.customFields),
		Notes:  t.notes,
	}
	if t.exists {
		id := t.id
		form.ID = &id
	}
	if id, ok := t.jobCode.ID(); ok {
		form.JobCode = jobcodes.Name(available, id)
	} else {
		form.JobCode = t.jobCode.String()
	}
	if t.end != nil {
		end := timex.FormatTimestamp(*t.end)
		form.End = &end
	}
	return form, nil
}

func formatEnd(end *time.Time) string {
	if end == nil {
		return ""
	}
	return timex.FormatTimestamp(*end)
}

func nonNil(values models.CustomFieldValues) models.CustomFieldValues {
	if values == nil {
		return models.CustomFieldValues{}
	}
	return values.Clone()
}
