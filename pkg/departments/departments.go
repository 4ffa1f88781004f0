// Package departments defines the record types reconciled by deptmerge:
// rows of the primary (AO) department list, rows of the secondary (MVDR)
// list, and the normalized key both sides are matched on.
package departments

import (
	"github.com/agentstation/deptmerge/internal/utils/ptr"
	"github.com/agentstation/deptmerge/pkg/normalize"
)

// Origin tags where a merged row came from. It is never written to output.
type Origin int

const (
	// OriginPrimary marks rows loaded from the primary list.
	OriginPrimary Origin = iota
	// OriginSecondary marks unmatched secondary rows reshaped into the primary schema.
	OriginSecondary
)

// String returns the string representation of an Origin.
func (o Origin) String() string {
	switch o {
	case OriginPrimary:
		return "primary"
	case OriginSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Key is the normalized (name, code) pair rows are matched on.
type Key struct {
	Name string `json:"name" yaml:"name"`
	Code string `json:"code" yaml:"code"`
}

// Primary is one row of the primary list, and the row type of the merged dataset.
type Primary struct {
	ID       string  // opaque, possibly empty or non-numeric
	Name     string  // working name; normalized during matching, restored afterwards
	NameAlt  *string // optional secondary-language name
	Code     string  // working code; normalized during matching, restored afterwards
	AuxCode  *string // optional unrelated code
	Assigned *string // secondary record id, set at most once by the matcher

	Origin       Origin
	OriginalCode *string // raw code captured before normalization
}

// Key returns the row's key built from its current working fields.
func (p *Primary) Key() Key {
	return Key{Name: p.Name, Code: p.Code}
}

// HasID reports whether the row carries a non-empty primary id.
func (p *Primary) HasID() bool {
	return p.ID != ""
}

// IsAssigned reports whether a secondary record id was attached.
func (p *Primary) IsAssigned() bool {
	return ptr.NonEmpty(p.Assigned)
}

// Normalize captures the raw code and rewrites Name and Code under policy.
// Calling it twice keeps the first captured original.
func (p *Primary) Normalize(policy normalize.Policy) {
	if p.OriginalCode == nil {
		p.OriginalCode = ptr.String(p.Code)
	}
	p.Name = policy.Name(p.Name)
	p.Code = policy.Code(p.Code)
}

// Secondary is one row of the secondary list.
type Secondary struct {
	RecordID string
	Name     string
	Code     string

	OriginalName string
	OriginalCode string
	normalized   bool
}

// NewSecondary builds a secondary row, capturing its raw name and code.
func NewSecondary(recordID, name, code string) Secondary {
	return Secondary{
		RecordID:     recordID,
		Name:         name,
		Code:         code,
		OriginalName: name,
		OriginalCode: code,
	}
}

// Key returns the row's key built from its current working fields.
func (s *Secondary) Key() Key {
	return Key{Name: s.Name, Code: s.Code}
}

// Normalize rewrites Name and Code under policy. Originals captured by
// NewSecondary are kept.
func (s *Secondary) Normalize(policy normalize.Policy) {
	if !s.normalized {
		s.OriginalName = s.Name
		s.OriginalCode = s.Code
		s.normalized = true
	}
	s.Name = policy.Name(s.Name)
	s.Code = policy.Code(s.Code)
}

// NormalizePrimary normalizes every primary row in place.
func NormalizePrimary(rows []Primary, policy normalize.Policy) {
	for i := range rows {
		rows[i].Normalize(policy)
	}
}

// NormalizeSecondary normalizes every secondary row in place.
func NormalizeSecondary(rows []Secondary, policy normalize.Policy) {
	for i := range rows {
		rows[i].Normalize(policy)
	}
}
