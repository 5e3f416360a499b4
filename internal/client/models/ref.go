package models

import (
	"strconv"
	"strings"
)

// RefKind tells how a Ref identifies its target.
type RefKind int

const (
	RefNone RefKind = iota
	RefByID
	RefByName
)

// Ref identifies a job code (or custom field) either by numeric id or by
// display name. The zero value refers to nothing.
type Ref struct {
	kind RefKind
	id   int64
	name string
}

func ByID(id int64) Ref { return Ref{kind: RefByID, id: id} }

func ByName(name string) Ref { return Ref{kind: RefByName, name: name} }

// ParseRef reads user input: a decimal integer becomes ByID, any other
// non-blank text ByName (trimmed), blank input the zero Ref.
func ParseRef(s string) Ref {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ByID(id)
	}
	return ByName(s)
}

func (r Ref) Kind() RefKind { return r.kind }

func (r Ref) IsZero() bool { return r.kind == RefNone }

// ID returns the numeric id of a ByID ref.
func (r Ref) ID() (int64, bool) {
	return r.id, r.kind == RefByID
}

// Name returns the name of a ByName ref.
func (r Ref) Name() (string, bool) {
	return r.name, r.kind == RefByName
}

// String is the literal sent on the wire: the decimal id or the name.
func (r Ref) String() string {
	switch r.kind {
	case RefByID:
		return strconv.FormatInt(r.id, 10)
	case RefByName:
		return r.name
	default:
		return ""
	}
}

// Resolution is the outcome of resolving a Ref against reference data.
// When Resolved is false, Literal carries the input unchanged.
type Resolution struct {
	ID       int64
	Literal  string
	Resolved bool
}

// Ref converts the resolution back into a Ref: ByID when resolved,
// otherwise the parsed literal.
func (r Resolution) Ref() Ref {
	if r.Resolved {
		return ByID(r.ID)
	}
	return ParseRef(r.Literal)
}

// Key renders the resolution as a string map key: the decimal id when
// resolved, the literal otherwise.
func (r Resolution) Key() string {
	if r.Resolved {
		return strconv.FormatInt(r.ID, 10)
	}
	return r.Literal
}
