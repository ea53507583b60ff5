package entity

import "time"

// StructureFilterAll disables the structure refinement
const StructureFilterAll = "all"

// DateRange is an inclusive enrollment window. Both bounds are optional.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero reports whether no bound is set
func (r DateRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

// PatientFilter is a domain-level filter applied after role scoping.
// Used by the scoping engine to avoid coupling with delivery DTOs.
type PatientFilter struct {
	StructureID string // district_responsible only; "" or "all" disables it
	Enrollment  DateRange
}

// StructureRefinement returns the structure id to narrow to, if any
func (f PatientFilter) StructureRefinement() (string, bool) {
	if f.StructureID == "" || f.StructureID == StructureFilterAll {
		return "", false
	}
	return f.StructureID, true
}
