package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

type envelope struct {
	Results map[string]json.RawMessage `json:"results"`
	More    bool                       `json:"more"`
}

// itemStatus is carried by every record of a batch write response.
type itemStatus struct {
	StatusCode    int    `json:"_status_code"`
	StatusMessage string `json:"_status_message"`
}

// decodeRecords extracts results.<key> as a map of records keyed by the
// service's string keys. An empty list or null in place of the object means
// no records.
func decodeRecords[T any](endpoint, key string, body json.RawMessage) (map[string]T, bool, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, false, &DecodeError{Endpoint: endpoint, Err: err}
	}
	raw, ok := env.Results[key]
	if !ok {
		return nil, false, &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("missing results.%s", key)}
	}

	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		return map[string]T{}, env.More, nil
	}

	var records map[string]T
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, false, &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("results.%s: %w", key, err)}
	}
	if records == nil {
		records = map[string]T{}
	}
	return records, env.More, nil
}

// byID re-keys records by their decimal id key.
func byID[T any](endpoint string, records map[string]T) (map[int64]T, error) {
	out := make(map[int64]T, len(records))
	for key, rec := range records {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("record key %q: %w", key, err)}
		}
		out[id] = rec
	}
	return out, nil
}

// ordered returns records sorted by their numeric keys.
func ordered[T any](endpoint string, records map[string]T) ([]T, error) {
	keyed, err := byID(endpoint, records)
	if err != nil {
		return nil, err
	}
	keys := make([]int64, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, keyed[k])
	}
	return out, nil
}

// first returns the record with the lowest key, or the zero value when
// there are none.
func first[T any](endpoint string, records map[string]T) (T, error) {
	var zero T
	list, err := ordered(endpoint, records)
	if err != nil || len(list) == 0 {
		return zero, err
	}
	return list[0], nil
}
