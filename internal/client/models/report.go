package models

import "time"

// CurrentTotals is one record of reports/current_totals.
type CurrentTotals struct {
	UserID       int64 `json:"user_id"`
	OnTheClock   bool  `json:"on_the_clock"`
	TimesheetID  int64 `json:"timesheet_id"`
	JobCodeID    int64 `json:"jobcode_id"`
	ShiftSeconds int64 `json:"shift_seconds"`
	DaySeconds   int64 `json:"day_seconds"`
}

// PayrollReport is one record of reports/payroll. Only closed timesheets are
// counted by the service.
type PayrollReport struct {
	UserID           int64 `json:"user_id"`
	TotalWorkSeconds int64 `json:"total_work_seconds"`
	TotalPTOSeconds  int64 `json:"total_pto_seconds"`
}

// PayrollFilter selects the payroll report window.
type PayrollFilter struct {
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	IncludeZeroTime string `json:"include_zero_time"`
	UserIDs         string `json:"user_ids"`
}

// Totals is the elapsed time of the current shift, today and this week.
type Totals struct {
	Item time.Duration
	Day  time.Duration
	Week time.Duration
}
