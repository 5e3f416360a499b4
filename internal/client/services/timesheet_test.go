package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/tsheets/internal/client/client/clienttest"
	"github.com/dmitrijs2005/tsheets/internal/client/models"
	"github.com/dmitrijs2005/tsheets/internal/common"
	"github.com/dmitrijs2005/tsheets/internal/timex"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSheet(f *clienttest.Fake) models.WireTimesheet {
	w := models.WireTimesheet{
		ID:           500,
		UserID:       1,
		JobCodeID:    3,
		Start:        "2024-03-06T09:00:00-08:00",
		Notes:        "standup",
		CustomFields: models.CustomFieldValues{"7": "100", "9": "free"},
		OnTheClock:   true,
		Type:         "regular",
	}
	f.AddSheet(w)
	return w
}

func TestNew_Blank(t *testing.T) {
	_, svc := newTestTimesheetService(t)

	ts, err := svc.New(context.Background())
	require.NoError(t, err)
	assert.False(t, ts.Exists())
	assert.False(t, ts.OnTheClock())
	assert.Equal(t, int64(1), ts.UserID())
	assert.True(t, ts.Start().Equal(fixedNow))
	assert.Equal(t, "2024-03-06", ts.Date())
	_, hasEnd := ts.End()
	assert.False(t, hasEnd)
}

func TestClockIn(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	ts, err := svc.FromTextForm(ctx, models.TextForm{
		JobCode: "Client : Project : Task",
		Fields:  models.FieldMap{"Ticket": "Beta"},
		Notes:   "pairing",
	})
	require.NoError(t, err)
	require.NoError(t, ts.ClockIn(ctx))

	assert.True(t, ts.Exists())
	assert.True(t, ts.OnTheClock())
	assert.Equal(t, int64(1001), ts.ID())

	require.Len(t, f.Created, 1)
	want := models.TimesheetCreate{
		UserID:       1,
		Type:         "regular",
		Start:        "2024-03-06T12:00:00-08:00",
		End:          "",
		JobCodeID:    "3",
		Notes:        "pairing",
		CustomFields: models.CustomFieldValues{"7": "Beta"},
	}
	if diff := cmp.Diff(want, f.Created[0]); diff != "" {
		t.Errorf("create payload mismatch (-want +got):\n%s", diff)
	}
}

func TestClockIn_Twice(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	ts, err := svc.New(ctx)
	require.NoError(t, err)
	require.NoError(t, ts.ClockIn(ctx))

	err = ts.ClockIn(ctx)
	assert.ErrorIs(t, err, common.ErrInvalidState)
	assert.Equal(t, 1, f.Calls[clienttest.MethodCreateTimesheets])
}

func TestClockIn_UnresolvedJobCodePassesThrough(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	ts, err := svc.FromTextForm(ctx, models.TextForm{JobCode: "Nowhere"})
	require.NoError(t, err)
	require.NoError(t, ts.ClockIn(ctx))
	assert.Equal(t, "Nowhere", f.Created[0].JobCodeID)
}

func TestClockIn_ErrorKeepsBlank(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()
	boom := errors.New("boom")
	f.Errs[clienttest.MethodCreateTimesheets] = boom

	ts, err := svc.New(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, ts.ClockIn(ctx), boom)
	assert.False(t, ts.Exists())
	assert.False(t, ts.OnTheClock())
}

func TestClockOut(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	ts, err := svc.FromWire(openSheet(f))
	require.NoError(t, err)
	require.True(t, ts.OnTheClock())

	require.NoError(t, ts.ClockOut(ctx))
	assert.False(t, ts.OnTheClock())
	end, ok := ts.End()
	require.True(t, ok)
	assert.True(t, end.Equal(fixedNow))
	assert.Equal(t, 3*time.Hour, ts.Elapsed())

	require.Len(t, f.Updated, 1)
	upd := f.Updated[0]
	assert.Equal(t, int64(500), upd.ID)
	require.NotNil(t, upd.End)
	assert.Equal(t, "2024-03-06T12:00:00-08:00", *upd.End)
	assert.Nil(t, upd.Start)
	assert.Nil(t, upd.JobCodeID)
	assert.Nil(t, upd.Notes)
	assert.Nil(t, upd.CustomFields)
}

func TestClockOut_NotOnTheClock(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	blank, err := svc.New(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, blank.ClockOut(ctx), common.ErrInvalidState)

	ts, err := svc.FromWire(openSheet(f))
	require.NoError(t, err)
	require.NoError(t, ts.ClockOut(ctx))
	assert.ErrorIs(t, ts.ClockOut(ctx), common.ErrInvalidState)
	assert.Equal(t, 1, f.Calls[clienttest.MethodUpdateTimesheets])
}

func TestUpdate_SendsFullRecord(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	ts, err := svc.FromWire(openSheet(f))
	require.NoError(t, err)
	require.NoError(t, ts.Update(ctx, models.Patch{Notes: models.Some("retro")}))

	require.Len(t, f.Updated, 1)
	upd := f.Updated[0]
	assert.Equal(t, "2024-03-06T09:00:00-08:00", *upd.Start)
	assert.Equal(t, "", *upd.End)
	assert.Equal(t, "3", *upd.JobCodeID)
	assert.Equal(t, "retro", *upd.Notes)
	assert.Equal(t, models.CustomFieldValues{"7": "100", "9": "free"}, upd.CustomFields)
	assert.True(t, ts.OnTheClock())
}

func TestUpdate_ResolvesNamesAndNormalizesKeys(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	ts, err := svc.FromWire(openSheet(f))
	require.NoError(t, err)
	err = ts.Update(ctx, models.Patch{
		JobCode: models.Some("Admin"),
		Fields:  models.Some(map[string]string{"7": "Alpha", "Comment": "x"}),
	})
	require.NoError(t, err)

	id, ok := ts.JobCode().ID()
	require.True(t, ok)
	assert.Equal(t, int64(4), id)
	assert.Equal(t, models.CustomFieldValues{"7": "Alpha", "9": "x"}, ts.CustomFields())
	assert.Equal(t, "4", *f.Updated[0].JobCodeID)
}

func TestUpdate_UnparseableEndClearsEnd(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	w := openSheet(f)
	w.End = "2024-03-06T11:00:00-08:00"
	w.OnTheClock = false
	f.AddSheet(w)

	ts, err := svc.FromWire(w)
	require.NoError(t, err)
	require.False(t, ts.OnTheClock())

	require.NoError(t, ts.Update(ctx, models.Patch{End: models.Some("whenever")}))
	_, hasEnd := ts.End()
	assert.False(t, hasEnd)
	assert.True(t, ts.OnTheClock())
	assert.Equal(t, "", *f.Updated[0].End)
}

func TestUpdate_DateOnlyEndKeepsEntryClosed(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	w := openSheet(f)
	w.End = "2024-03-06T11:00:00-08:00"
	w.OnTheClock = false
	f.AddSheet(w)

	ts, err := svc.FromWire(w)
	require.NoError(t, err)
	require.NoError(t, ts.Update(ctx, models.Patch{End: models.Some("2024-03-07")}))

	end, hasEnd := ts.End()
	require.True(t, hasEnd)
	assert.False(t, ts.OnTheClock())
	midnight := time.Date(2024, 3, 7, 0, 0, 0, 0, time.Local)
	assert.True(t, midnight.Equal(end))
	assert.Equal(t, timex.FormatTimestamp(midnight), *f.Updated[0].End)
}

func TestUpdate_EndClosesEntry(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	ts, err := svc.FromWire(openSheet(f))
	require.NoError(t, err)
	require.NoError(t, ts.Update(ctx, models.Patch{End: models.Some("2024-03-06T10:30:00-08:00")}))

	assert.False(t, ts.OnTheClock())
	assert.Equal(t, 90*time.Minute, ts.Elapsed())
}

func TestUpdate_InvalidStartFailsBeforeRequest(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	ts, err := svc.FromWire(openSheet(f))
	require.NoError(t, err)

	err = ts.Update(ctx, models.Patch{Start: models.Some("noon"), Notes: models.Some("changed")})
	assert.ErrorIs(t, err, common.ErrInvalidTimestamp)
	assert.Equal(t, 0, f.Calls[clienttest.MethodUpdateTimesheets])
	assert.Equal(t, "standup", ts.Notes(), "failed update leaves the entry untouched")
}

func TestUpdate_RemoteFailureLeavesEntry(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()
	boom := errors.New("boom")

	ts, err := svc.FromWire(openSheet(f))
	require.NoError(t, err)
	f.Errs[clienttest.MethodUpdateTimesheets] = boom

	assert.ErrorIs(t, ts.Update(ctx, models.Patch{Notes: models.Some("changed")}), boom)
	assert.Equal(t, "standup", ts.Notes())
}

func TestUpdate_RequiresExisting(t *testing.T) {
	_, svc := newTestTimesheetService(t)
	ctx := context.Background()

	ts, err := svc.New(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, ts.Update(ctx, models.Patch{Notes: models.Some("x")}), common.ErrInvalidState)
}

func TestDelete(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	ts, err := svc.FromWire(openSheet(f))
	require.NoError(t, err)
	require.NoError(t, ts.Delete(ctx))

	assert.Equal(t, []int64{500}, f.Deleted)
	assert.False(t, ts.Exists())
	assert.False(t, ts.OnTheClock())
	assert.Zero(t, ts.ID())
	assert.ErrorIs(t, ts.Delete(ctx), common.ErrInvalidState)
	assert.True(t, ts.Deleted())
}

func TestClockIn_AfterDelete(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	ts, err := svc.FromWire(openSheet(f))
	require.NoError(t, err)
	require.NoError(t, ts.Delete(ctx))

	require.ErrorIs(t, ts.ClockIn(ctx), common.ErrInvalidState)
	assert.Empty(t, f.Created)
	assert.False(t, ts.Exists())
	assert.Zero(t, ts.ID())
}

func TestMutations_AfterDelete(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	ts, err := svc.FromWire(openSheet(f))
	require.NoError(t, err)
	require.NoError(t, ts.Delete(ctx))

	assert.ErrorIs(t, ts.ClockOut(ctx), common.ErrInvalidState)
	assert.ErrorIs(t, ts.Update(ctx, models.Patch{Notes: models.Some("x")}), common.ErrInvalidState)
	assert.ErrorIs(t, ts.Delete(ctx), common.ErrInvalidState)
	assert.Zero(t, f.Calls[clienttest.MethodUpdateTimesheets])
	assert.Equal(t, 1, f.Calls[clienttest.MethodDeleteTimesheets])
}

func TestTextForm_RoundTrip(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	w := openSheet(f)
	w.End = "2024-03-06T17:30:00-08:00"
	orig, err := svc.FromWire(w)
	require.NoError(t, err)

	form, err := orig.TextForm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Client : Project : Task", form.JobCode)
	assert.Equal(t, models.FieldMap{"Ticket": "100", "Comment": "free"}, form.Fields)
	require.NotNil(t, form.ID)
	assert.Equal(t, int64(500), *form.ID)

	back, err := svc.FromTextForm(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, orig.JobCode(), back.JobCode())
	assert.Equal(t, orig.CustomFields(), back.CustomFields())
	assert.True(t, orig.Start().Equal(back.Start()))
	origEnd, _ := orig.End()
	backEnd, ok := back.End()
	require.True(t, ok)
	assert.True(t, origEnd.Equal(backEnd))
	assert.Equal(t, orig.Notes(), back.Notes())
	assert.True(t, back.Exists())
}

func TestTextForm_OpenEntry(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	ts, err := svc.FromWire(openSheet(f))
	require.NoError(t, err)
	form, err := ts.TextForm(ctx)
	require.NoError(t, err)
	assert.Nil(t, form.End)

	back, err := svc.FromTextForm(ctx, form)
	require.NoError(t, err)
	assert.True(t, back.Exists())
	assert.True(t, back.OnTheClock())
}

func TestTextForm_UnavailableJobCodeRendersID(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	w := openSheet(f)
	w.JobCodeID = 2
	ts, err := svc.FromWire(w)
	require.NoError(t, err)

	form, err := ts.TextForm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", form.JobCode)
}

func TestFromTextForm_Errors(t *testing.T) {
	_, svc := newTestTimesheetService(t)
	ctx := context.Background()

	_, err := svc.FromTextForm(ctx, models.TextForm{JobCode: "Admin", Start: "tuesday"})
	assert.ErrorIs(t, err, common.ErrInvalidTimestamp)

	_, err = svc.FromTextForm(ctx, models.TextForm{JobCode: "Admin", End: ptr("later")})
	assert.ErrorIs(t, err, common.ErrInvalidTimestamp)
}

func TestFromWire_BadStart(t *testing.T) {
	_, svc := newTestTimesheetService(t)
	_, err := svc.FromWire(models.WireTimesheet{ID: 1, Start: "garbage"})
	assert.ErrorIs(t, err, common.ErrInvalidTimestamp)
}

func TestCurrent(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	openSheet(f)
	cur, err = svc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, int64(500), cur.ID())

	require.NotEmpty(t, f.Filters)
	filter := f.Filters[len(f.Filters)-1]
	assert.Equal(t, "yes", filter.OnTheClock)
	assert.Equal(t, "2024-02-28", filter.StartDate)
	assert.Equal(t, []int64{1}, filter.UserIDs)
}

func TestCurrent_MoreThanOne(t *testing.T) {
	f, svc := newTestTimesheetService(t)

	w := openSheet(f)
	w.ID = 501
	f.AddSheet(w)

	_, err := svc.Current(context.Background())
	assert.ErrorIs(t, err, common.ErrInvalidState)
}

func TestLast(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	last, err := svc.Last(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	f.AddSheet(models.WireTimesheet{ID: 900, UserID: 1, JobCodeID: 4, Start: "2024-03-04T09:00:00-08:00", End: "2024-03-04T17:00:00-08:00"})
	f.AddSheet(models.WireTimesheet{ID: 800, UserID: 1, JobCodeID: 4, Start: "2024-03-05T09:00:00-08:00", End: "2024-03-05T17:00:00-08:00"})
	f.AddSheet(models.WireTimesheet{ID: 700, UserID: 1, JobCodeID: 4, Start: "2024-03-05T09:00:00-08:00", End: "2024-03-05T10:00:00-08:00"})

	last, err = svc.Last(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, int64(800), last.ID())
	assert.Equal(t, "both", f.Filters[len(f.Filters)-1].OnTheClock)
}

func TestTextForm_RoundTripKeepsItemNameValues(t *testing.T) {
	f, svc := newTestTimesheetService(t)
	ctx := context.Background()

	w := openSheet(f)
	w.CustomFields = models.CustomFieldValues{"7": "Beta"}
	orig, err := svc.FromWire(w)
	require.NoError(t, err)

	form, err := orig.TextForm(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.FieldMap{"Ticket": "Beta"}, form.Fields)

	back, err := svc.FromTextForm(ctx, form)
	require.NoError(t, err)
	if diff := cmp.Diff(orig.CustomFields(), back.CustomFields()); diff != "" {
		t.Errorf("custom fields changed across round trip (-orig +back):\n%s", diff)
	}
}
