// Package customfields resolves custom-field names to the ids the service
// keys values by, and renders stored ids back to names. Values are kept as
// typed; item lists only document the permitted options.
package customfields

import (
	"sort"
	"strconv"

	"github.com/dmitrijs2005/tsheets/internal/client/models"
)

// Build keeps active fields and, within each, active items.
func Build(defs map[int64]models.RawCustomField, items map[int64]map[int64]models.RawCustomFieldItem) map[int64]models.CustomField {
	out := make(map[int64]models.CustomField, len(defs))
	for id, def := range defs {
		if !def.Active {
			continue
		}
		field := models.CustomField{
			ID:       id,
			Name:     def.Name,
			Required: def.Required,
			Items:    map[int64]string{},
		}
		for itemID, item := range items[id] {
			if item.Active {
				field.Items[itemID] = item.Name
			}
		}
		out[id] = field
	}
	return out
}

// ResolveKey maps a field key to a field id: a numeric key naming a known
// field wins, then an exact name match in ascending id order.
func ResolveKey(fields map[int64]models.CustomField, key string) models.Resolution {
	ref := models.ParseRef(key)
	if id, ok := ref.ID(); ok {
		if _, found := fields[id]; found {
			return models.Resolution{ID: id, Literal: key, Resolved: true}
		}
	}
	for _, f := range Sorted(fields) {
		if f.Name == key {
			return models.Resolution{ID: f.ID, Literal: key, Resolved: true}
		}
	}
	return models.Resolution{Literal: key}
}

// Normalize rewrites user-entered field keys to field-id strings where they
// resolve. Values pass through unchanged.
func Normalize(fields map[int64]models.CustomField, values map[string]string) models.CustomFieldValues {
	out := make(models.CustomFieldValues, len(values))
	for key, value := range values {
		out[ResolveKey(fields, key).Key()] = value
	}
	return out
}

// DisplayKey names a stored field key; unknown keys pass through.
func DisplayKey(fields map[int64]models.CustomField, key string) string {
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		if f, ok := fields[id]; ok {
			return f.Name
		}
	}
	return key
}

// Render is the inverse of Normalize: known field ids become names.
func Render(fields map[int64]models.CustomField, values models.CustomFieldValues) models.FieldMap {
	out := make(models.FieldMap, len(values))
	for key, value := range values {
		if id, err := strconv.ParseInt(key, 10, 64); err == nil {
			if f, ok := fields[id]; ok {
				out[f.Name] = value
				continue
			}
		}
		out[key] = value
	}
	return out
}

// Sorted lists fields in ascending id order.
func Sorted(fields map[int64]models.CustomField) []models.CustomField {
	out := make([]models.CustomField, 0, len(fields))
	for _, f := range fields {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ItemNames lists the item names of field in ascending id order.
func ItemNames(field models.CustomField) []string {
	ids := itemIDs(field)
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = field.Items[id]
	}
	return names
}

func itemIDs(field models.CustomField) []int64 {
	ids := make([]int64, 0, len(field.Items))
	for id := range field.Items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
