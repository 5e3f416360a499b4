package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/tsheets/internal/client/cache"
	"github.com/dmitrijs2005/tsheets/internal/client/client"
	"github.com/dmitrijs2005/tsheets/internal/client/customfields"
	"github.com/dmitrijs2005/tsheets/internal/client/jobcodes"
	"github.com/dmitrijs2005/tsheets/internal/client/models"
	"github.com/dmitrijs2005/tsheets/internal/common"
	"github.com/dmitrijs2005/tsheets/internal/logging"
	"github.com/dmitrijs2005/tsheets/internal/timex"
)

// how far back Current and Last look
const lookback = 7 * 24 * time.Hour

// TimesheetService builds Timesheets and finds the user's recent ones.
//
// Contract:
//   - New: a blank entry for the current user starting now.
//   - FromWire: an existing entry from its remote record.
//   - FromTextForm: an entry from its editable form; an id marks it as
//     existing.
//   - Current: the open entry of the last week, nil when there is none.
//   - Last: the latest entry of the last week by start time, nil when
//     there is none.
type TimesheetService interface {
	New(ctx context.Context) (*Timesheet, error)
	FromWire(w models.WireTimesheet) (*Timesheet, error)
	FromTextForm(ctx context.Context, form models.TextForm) (*Timesheet, error)
	Current(ctx context.Context) (*Timesheet, error)
	Last(ctx context.Context) (*Timesheet, error)
}

type timesheetService struct {
	client client.Client
	cache  *cache.Cache
	log    logging.Logger
	now    func() time.Time
}

func NewTimesheetService(c client.Client, refs *cache.Cache, log logging.Logger) TimesheetService {
	return &timesheetService{client: c, cache: refs, log: log, now: timex.Now}
}

func (s *timesheetService) New(ctx context.Context) (*Timesheet, error) {
	user, err := s.cache.User(ctx)
	if err != nil {
		return nil, err
	}
	start := s.now()
	return &Timesheet{
		svc:          s,
		userID:       user.ID,
		start:        start,
		date:         timex.FormatDate(start),
		customFields: models.CustomFieldValues{},
	}, nil
}

func (s *timesheetService) FromWire(w models.WireTimesheet) (*Timesheet, error) {
	start, err := timex.ParseTimestamp(w.Start)
	if err != nil {
		return nil, fmt.Errorf("timesheet %d start: %w", w.ID, err)
	}
	var end *time.Time
	if w.End != "" {
		e, err := timex.ParseTimestamp(w.End)
		if err != nil {
			return nil, fmt.Errorf("timesheet %d end: %w", w.ID, err)
		}
		end = &e
	}

	fields := w.CustomFields.Clone()
	if fields == nil {
		fields = models.CustomFieldValues{}
	}
	return &Timesheet{
		svc:          s,
		id:           w.ID,
		userID:       w.UserID,
		jobCode:      models.ByID(w.JobCodeID),
		start:        start,
		end:          end,
		date:         w.Date,
		notes:        w.Notes,
		customFields: fields,
		exists:       true,
		onTheClock:   end == nil,
	}, nil
}

// FromTextForm resolves the job code and custom fields of form by name.
// A blank start means now; a start or end that does not parse is an error.
func (s *timesheetService) FromTextForm(ctx context.Context, form models.TextForm) (*Timesheet, error) {
	available, err := s.cache.AvailableJobCodes(ctx)
	if err != nil {
		return nil, err
	}
	fields, err := s.cache.CustomFields(ctx)
	if err != nil {
		return nil, err
	}

	t := &Timesheet{
		svc:          s,
		userID:       form.UserID,
		jobCode:      jobcodes.Resolve(available, models.ParseRef(form.JobCode)).Ref(),
		notes:        form.Notes,
		customFields: customfields.Normalize(fields, form.Fields),
	}
	if t.userID == 0 {
		user, err := s.cache.User(ctx)
		if err != nil {
			return nil, err
		}
		t.userID = user.ID
	}

	if form.Start == "" {
		t.start = s.now()
	} else if t.start, err = timex.ParseTimestamp(form.Start); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	t.date = timex.FormatDate(t.start)

	if form.End != nil && *form.End != "" {
		end, err := timex.ParseTimestamp(*form.End)
		if err != nil {
			return nil, fmt.Errorf("end: %w", err)
		}
		t.end = &end
	}

	if form.ID != nil {
		t.id = *form.ID
		t.exists = true
		t.onTheClock = t.end == nil
	}
	return t, nil
}

func (s *timesheetService) Current(ctx context.Context) (*Timesheet, error) {
	list, err := s.recent(ctx, "yes")
	if err != nil {
		return nil, err
	}
	switch len(list) {
	case 0:
		return nil, nil
	case 1:
		return s.FromWire(list[0])
	default:
		return nil, fmt.Errorf("more than one current timesheet (%d): %w", len(list), common.ErrInvalidState)
	}
}

func (s *timesheetService) Last(ctx context.Context) (*Timesheet, error) {
	list, err := s.recent(ctx, "both")
	if err != nil {
		return nil, err
	}

	sheets := make([]*Timesheet, 0, len(list))
	for _, w := range list {
		t, err := s.FromWire(w)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, t)
	}
	if len(sheets) == 0 {
		return nil, nil
	}

	sort.Slice(sheets, func(i, j int) bool {
		if !sheets[i].start.Equal(sheets[j].start) {
			return sheets[i].start.Before(sheets[j].start)
		}
		return sheets[i].id < sheets[j].id
	})
	return sheets[len(sheets)-1], nil
}

func (s *timesheetService) recent(ctx context.Context, onTheClock string) ([]models.WireTimesheet, error) {
	user, err := s.cache.User(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.client.Timesheets(ctx, models.TimesheetFilter{
		OnTheClock: onTheClock,
		StartDate:  timex.FormatDate(s.now().Add(-lookback)),
		UserIDs:    []int64{user.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("fetching timesheets: %w", err)
	}
	return list, nil
}
