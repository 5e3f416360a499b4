// Package textform reads and writes the YAML text form of a timesheet and
// of the sparse patches applied by edit and update.
package textform

import (
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/tsheets/internal/client/models"
	"github.com/dmitrijs2005/tsheets/internal/timex"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var ErrEmptyDocument = errors.New("empty document")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, err := timex.ParseTimestamp(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(fmt.Sprintf("textform: registering timestamp validation: %v", err))
	}
	return v
}

// Encode writes form as a YAML document.
func Encode(w io.Writer, form models.TextForm) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(form); err != nil {
		return fmt.Errorf("encoding text form: %w", err)
	}
	return enc.Close()
}

// Decode reads a complete text form. Unknown keys are rejected.
func Decode(r io.Reader) (models.TextForm, error) {
	var form models.TextForm
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&form); err != nil {
		if errors.Is(err, io.EOF) {
			return models.TextForm{}, ErrEmptyDocument
		}
		return models.TextForm{}, fmt.Errorf("decoding text form: %w", err)
	}
	if err := validate.Struct(form); err != nil {
		return models.TextForm{}, fmt.Errorf("invalid text form: %w", err)
	}
	return form, nil
}

// DecodePatch reads a sparse update. Keys left out stay unset; id and
// user_id are accepted and ignored so an edited text form is a valid patch.
// A null or unparseable end is kept as given and later clears the end.
func DecodePatch(r io.Reader) (models.Patch, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return models.Patch{}, nil
		}
		return models.Patch{}, fmt.Errorf("decoding patch: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return models.Patch{}, nil
		}
		root = root.Content[0]
	}
	if isNull(root) {
		return models.Patch{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return models.Patch{}, fmt.Errorf("line %d: patch must be a mapping", root.Line)
	}

	var p models.Patch
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "id", "user_id":
		case "jobcode":
			s, err := scalar(key.Value, value)
			if err != nil {
				return models.Patch{}, err
			}
			if !isNull(value) {
				p.JobCode = models.Some(s)
			}
		case "notes":
			s, err := scalar(key.Value, value)
			if err != nil {
				return models.Patch{}, err
			}
			p.Notes = models.Some(s)
		case "start":
			s, err := scalar(key.Value, value)
			if err != nil {
				return models.Patch{}, err
			}
			p.Start = models.Some(s)
		case "end":
			s, err := scalar(key.Value, value)
			if err != nil {
				return models.Patch{}, err
			}
			p.End = models.Some(s)
		case "fields":
			var fields models.FieldMap
			if err := fields.UnmarshalYAML(value); err != nil {
				return models.Patch{}, err
			}
			if fields == nil {
				fields = models.FieldMap{}
			}
			p.Fields = models.Some(map[string]string(fields))
		default:
			return models.Patch{}, fmt.Errorf("line %d: unknown key %q", key.Line, key.Value)
		}
	}
	return p, nil
}

func scalar(name string, n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: %s must be a scalar", n.Line, name)
	}
	if isNull(n) {
		return "", nil
	}
	return n.Value, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
