// Package jobcodes turns raw job-code pages into the flattened,
// human-named tree and resolves user input against the codes assigned to
// the current user.
package jobcodes

import (
	"sort"

	"github.com/dmitrijs2005/tsheets/internal/client/models"
)

// Separator joins ancestor names in a job code's full name.
const Separator = " : "

// BuildTree names every job code after its ancestor chain, for example
// "Client : Project : Task". A parent missing from raw ends the chain.
func BuildTree(raw map[int64]models.RawJobCode) map[int64]models.JobCode {
	n := namer{raw: raw, memo: make(map[int64]string, len(raw)), visiting: map[int64]bool{}}

	tree := make(map[int64]models.JobCode, len(raw))
	for id, rec := range raw {
		items := make(map[int64][]int64, len(rec.FilteredCustomFieldItems))
		for field, ids := range rec.FilteredCustomFieldItems {
			items[field] = append([]int64(nil), ids...)
		}
		tree[id] = models.JobCode{
			ID:               id,
			ParentID:         rec.ParentID,
			Name:             n.name(id),
			Active:           rec.Active,
			CustomFieldItems: items,
		}
	}
	return tree
}

type namer struct {
	raw      map[int64]models.RawJobCode
	memo     map[int64]string
	visiting map[int64]bool
}

func (n *namer) name(id int64) string {
	if name, ok := n.memo[id]; ok {
		return name
	}
	rec := n.raw[id]
	// a cycle back to a node being named stops at that node
	if n.visiting[id] {
		return rec.Name
	}

	n.visiting[id] = true
	name := rec.Name
	if _, ok := n.raw[rec.ParentID]; ok && rec.ParentID != 0 {
		name = n.name(rec.ParentID) + Separator + rec.Name
	}
	delete(n.visiting, id)

	n.memo[id] = name
	return name
}

// Available keeps the job codes targeted by active assignments. Assignments
// to codes missing from tree are dropped.
func Available(tree map[int64]models.JobCode, asns []models.JobCodeAssignment) map[int64]models.JobCode {
	out := make(map[int64]models.JobCode)
	for _, asn := range asns {
		if !asn.Active {
			continue
		}
		if code, ok := tree[asn.JobCodeID]; ok {
			out[code.ID] = code
		}
	}
	return out
}

// Resolve maps ref to an available job code id: an id in the set wins,
// then the first exact name match in ascending id order. Anything else
// comes back unresolved with the input as the literal.
func Resolve(available map[int64]models.JobCode, ref models.Ref) models.Resolution {
	literal := ref.String()
	if ref.IsZero() {
		return models.Resolution{Literal: literal}
	}
	if id, ok := ref.ID(); ok {
		if _, found := available[id]; found {
			return models.Resolution{ID: id, Literal: literal, Resolved: true}
		}
	}
	for _, code := range Sorted(available) {
		if code.Name == literal {
			return models.Resolution{ID: code.ID, Literal: literal, Resolved: true}
		}
	}
	return models.Resolution{Literal: literal}
}

// Name returns the display name of id, or its decimal form when id is not
// in codes.
func Name(codes map[int64]models.JobCode, id int64) string {
	if code, ok := codes[id]; ok {
		return code.Name
	}
	return models.ByID(id).String()
}

// Sorted lists codes in ascending id order.
func Sorted(codes map[int64]models.JobCode) []models.JobCode {
	out := make([]models.JobCode, 0, len(codes))
	for _, code := range codes {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SortedByName lists codes alphabetically by full name, ties by id.
func SortedByName(codes map[int64]models.JobCode) []models.JobCode {
	out := Sorted(codes)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
