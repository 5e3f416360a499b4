// Package models defines the records exchanged with the time-tracking
// service and the human-editable text form of a timesheet.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// WireTimesheet is a timesheet as the service returns it.
type WireTimesheet struct {
	ID           int64             `json:"id"`
	UserID       int64             `json:"user_id"`
	JobCodeID    int64             `json:"jobcode_id"`
	Start        string            `json:"start"`
	End          string            `json:"end"`
	Date         string            `json:"date"`
	Notes        string            `json:"notes"`
	CustomFields CustomFieldValues `json:"customfields"`
	OnTheClock   bool              `json:"on_the_clock"`
	Type         string            `json:"type"`
}

// CustomFieldValues maps a custom-field id, as a decimal string, to its
// value string. Decoding tolerates the service's empty forms ("" and [])
// and numeric values, which are rendered in decimal.
type CustomFieldValues map[string]string

func (c *CustomFieldValues) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte(`""`)) || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		*c = CustomFieldValues{}
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("customfields: %w", err)
	}

	out := make(CustomFieldValues, len(raw))
	for key, value := range raw {
		s, err := scalarString(value)
		if err != nil {
			return fmt.Errorf("customfields[%s]: %w", key, err)
		}
		out[key] = s
	}
	*c = out
	return nil
}

func scalarString(b json.RawMessage) (string, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch value := v.(type) {
	case nil:
		return "", nil
	case string:
		return value, nil
	case json.Number:
		return value.String(), nil
	case bool:
		return strconv.FormatBool(value), nil
	default:
		return "", fmt.Errorf("unsupported value %s", b)
	}
}

// Clone returns an independent copy; nil stays nil.
func (c CustomFieldValues) Clone() CustomFieldValues {
	if c == nil {
		return nil
	}
	out := make(CustomFieldValues, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// TimesheetCreate is one element of a create-timesheets batch. End is "" for
// an entry that stays on the clock.
type TimesheetCreate struct {
	UserID       int64             `json:"user_id"`
	Type         string            `json:"type"`
	Start        string            `json:"start"`
	End          string            `json:"end"`
	JobCodeID    string            `json:"jobcode_id"`
	Notes        string            `json:"notes"`
	CustomFields CustomFieldValues `json:"customfields"`
}

// TimesheetUpdate is one element of an update-timesheets batch. Nil fields
// are not sent, so the same type carries both the full record and the
// clock-out form {id, end}.
type TimesheetUpdate struct {
	ID           int64             `json:"id"`
	Start        *string           `json:"start,omitempty"`
	End          *string           `json:"end,omitempty"`
	JobCodeID    *string           `json:"jobcode_id,omitempty"`
	Notes        *string           `json:"notes,omitempty"`
	CustomFields CustomFieldValues `json:"customfields,omitzero"`
}

// TimesheetFilter holds the query parameters of the timesheets listing.
type TimesheetFilter struct {
	OnTheClock string // "yes", "no" or "both"
	StartDate  string
	UserIDs    []int64
}
