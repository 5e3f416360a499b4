package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TextForm is the human-editable view of a timesheet. Job code and custom
// fields are referenced by name. Field order is the rendering order.
type TextForm struct {
	ID      *int64   `yaml:"id"`
	UserID  int64    `yaml:"user_id,omitempty"`
	JobCode string   `yaml:"jobcode" validate:"required"`
	Start   string   `yaml:"start,omitempty" validate:"omitempty,timestamp"`
	End     *string  `yaml:"end" validate:"omitempty,timestamp"`
	Fields  FieldMap `yaml:"fields"`
	Notes   string   `yaml:"notes"`
}

// FieldMap maps custom-field names (or ids) to values. It decodes keys and
// values as raw scalars so that `12: 34` arrives as {"12": "34"}.
type FieldMap map[string]string

func (f *FieldMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*f = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fields must be a mapping", node.Line)
	}

	out := make(FieldMap, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: field name must be a scalar", key.Line)
		}
		switch {
		case value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null":
			out[key.Value] = ""
		case value.Kind == yaml.ScalarNode:
			out[key.Value] = value.Value
		default:
			return fmt.Errorf("line %d: value of field %q must be a scalar", value.Line, key.Value)
		}
	}
	*f = out
	return nil
}

// Optional marks whether a patch carries a value for a field.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Patch is a sparse update of a timesheet. Unset fields keep their value.
// End set to "" (or to anything that is not a timestamp) clears the end.
type Patch struct {
	JobCode Optional[string]
	Notes   Optional[string]
	Fields  Optional[map[string]string]
	Start   Optional[string]
	End     Optional[string]
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return !p.JobCode.Set && !p.Notes.Set && !p.Fields.Set && !p.Start.Set && !p.End.Set
}
