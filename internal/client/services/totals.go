package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/tsheets/internal/client/cache"
	"github.com/dmitrijs2005/tsheets/internal/client/client"
	"github.com/dmitrijs2005/tsheets/internal/client/models"
	"github.com/dmitrijs2005/tsheets/internal/logging"
	"github.com/dmitrijs2005/tsheets/internal/timex"
)

// TotalsService reports the time worked in the current shift, day and week.
type TotalsService interface {
	Totals(ctx context.Context) (models.Totals, error)
}

type totalsService struct {
	client client.Client
	cache  *cache.Cache
	log    logging.Logger
	now    func() time.Time
}

func NewTotalsService(c client.Client, refs *cache.Cache, log logging.Logger) TotalsService {
	return &totalsService{client: c, cache: refs, log: log, now: timex.Now}
}

// Totals combines the current-totals report with the payroll report of the
// Sunday to Saturday week containing today. The payroll report leaves out
// the open shift, so the shift is added to the week.
func (s *totalsService) Totals(ctx context.Context) (models.Totals, error) {
	user, err := s.cache.User(ctx)
	if err != nil {
		return models.Totals{}, err
	}

	current, err := s.client.CurrentTotals(ctx, user.ID)
	if err != nil {
		return models.Totals{}, fmt.Errorf("current totals: %w", err)
	}

	weekStart, weekEnd := timex.WeekWindow(s.now())
	payroll, err := s.client.PayrollReport(ctx, models.PayrollFilter{
		StartDate:       timex.FormatDate(weekStart),
		EndDate:         timex.FormatDate(weekEnd),
		IncludeZeroTime: "yes",
		UserIDs:         strconv.FormatInt(user.ID, 10),
	})
	if err != nil {
		return models.Totals{}, fmt.Errorf("payroll report: %w", err)
	}

	totals := models.Totals{
		Item: seconds(current.ShiftSeconds),
		Day:  seconds(current.DaySeconds),
		Week: seconds(payroll.TotalWorkSeconds + current.ShiftSeconds),
	}
	s.log.Debug(ctx, "totals", "item", totals.Item, "day", totals.Day, "week", totals.Week)
	return totals, nil
}

func seconds(n int64) time.Duration {
	return time.Duration(n) * time.Second
}
