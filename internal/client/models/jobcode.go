package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// RawJobCode is one record of the paginated jobcodes endpoint.
type RawJobCode struct {
	ID                       int64         `json:"id"`
	ParentID                 int64         `json:"parent_id"`
	Name                     string        `json:"name"`
	Active                   bool          `json:"active"`
	HasChildren              bool          `json:"has_children"`
	FilteredCustomFieldItems FilteredItems `json:"filtered_customfielditems"`
}

// FilteredItems maps a custom-field id to the item ids allowed for a job
// code. The service sends an empty string instead of an object when there
// are none; that decodes to an empty map.
type FilteredItems map[int64][]int64

func (f *FilteredItems) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte(`""`)) || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		*f = FilteredItems{}
		return nil
	}

	var raw map[string][]json.Number
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("filtered_customfielditems: %w", err)
	}

	out := make(FilteredItems, len(raw))
	for key, values := range raw {
		fieldID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("filtered_customfielditems: field id %q: %w", key, err)
		}
		ids := make([]int64, 0, len(values))
		for _, v := range values {
			id, err := v.Int64()
			if err != nil {
				return fmt.Errorf("filtered_customfielditems: item id %q: %w", v, err)
			}
			ids = append(ids, id)
		}
		out[fieldID] = ids
	}
	*f = out
	return nil
}

// JobCode is a resolved job code: Name carries the full ancestor chain,
// e.g. "Client : Project : Task".
type JobCode struct {
	ID               int64
	ParentID         int64
	Name             string
	Active           bool
	CustomFieldItems map[int64][]int64
}

// JobCodeAssignment links a user to a job code.
type JobCodeAssignment struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	JobCodeID int64 `json:"jobcode_id"`
	Active    bool  `json:"active"`
}
