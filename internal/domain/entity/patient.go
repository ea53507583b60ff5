package entity

import "time"

// CoverageStatus is the CSU (universal health coverage) enrollment status
type CoverageStatus string

const (
	CoverageActive  CoverageStatus = "active"
	CoveragePending CoverageStatus = "pending"
	CoverageToRenew CoverageStatus = "to_renew"
)

// Patient represents a followed pregnant woman or young mother.
// Optional clinical fields are pointers: nil means "not collected".
type Patient struct {
	ID              string         `json:"id"`
	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	Phone           string         `json:"phone,omitempty"`
	QRCode          string         `json:"qr_code,omitempty"`
	Age             *int           `json:"age,omitempty"`
	GestationalWeek *int           `json:"gestational_week,omitempty"`
	LastPeriodDate  *time.Time     `json:"last_period_date,omitempty"`
	ExpectedTerm    *time.Time     `json:"expected_term,omitempty"`
	StructureID     string         `json:"structure_id"`
	AgentID         string         `json:"agent_id"`
	EnrollmentDate  *time.Time     `json:"enrollment_date,omitempty"`
	CoverageStatus  CoverageStatus `json:"coverage_status"`
}

// FullName returns the display name of the patient
func (p *Patient) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// AgeBand groups patient ages for anonymized breakdowns
type AgeBand string

const (
	AgeBandUnder18 AgeBand = "<18"
	AgeBand18To25  AgeBand = "18-25"
	AgeBand26To35  AgeBand = "26-35"
	AgeBandOver35  AgeBand = ">35"
	AgeBandUnknown AgeBand = "unknown"
)

// AgeBands lists the bands in ascending order, unknown excluded
var AgeBands = []AgeBand{AgeBandUnder18, AgeBand18To25, AgeBand26To35, AgeBandOver35}

// AgeBandOf returns the band for an age. Upper bounds are inclusive,
// so 25 falls in 18-25 and 35 in 26-35.
func AgeBandOf(age *int) AgeBand {
	if age == nil || *age < 0 {
		return AgeBandUnknown
	}
	switch a := *age; {
	case a < 18:
		return AgeBandUnder18
	case a <= 25:
		return AgeBand18To25
	case a <= 35:
		return AgeBand26To35
	default:
		return AgeBandOver35
	}
}
