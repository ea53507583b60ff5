package entity

import "time"

// VisitType identifies an antenatal (CPN) or postnatal (CPoN) consultation
type VisitType string

const (
	VisitCPN1  VisitType = "CPN1"
	VisitCPN2  VisitType = "CPN2"
	VisitCPN3  VisitType = "CPN3"
	VisitCPN4  VisitType = "CPN4"
	VisitCPoN1 VisitType = "CPoN1"
	VisitCPoN2 VisitType = "CPoN2"
	VisitCPoN3 VisitType = "CPoN3"
)

// IsPostnatal reports whether t is a CPoN visit
func (t VisitType) IsPostnatal() bool {
	return t == VisitCPoN1 || t == VisitCPoN2 || t == VisitCPoN3
}

// VisitStatus represents the status of a visit
type VisitStatus string

const (
	VisitStatusDone    VisitStatus = "done"
	VisitStatusPlanned VisitStatus = "planned"
	VisitStatusToPlan  VisitStatus = "to_plan"
)

// Vitals collected during a visit. Every reading is optional.
type Vitals struct {
	WeightKg      *float64 `json:"weight_kg,omitempty"`
	BloodPressure string   `json:"blood_pressure,omitempty"` // "systolic/diastolic" in mmHg
	MUACcm        *float64 `json:"muac_cm,omitempty"`
	BMI           *float64 `json:"bmi,omitempty"`
	Hemoglobin    *float64 `json:"hemoglobin,omitempty"`
}

// Visit represents an antenatal or postnatal consultation
type Visit struct {
	ID        string      `json:"id"`
	PatientID string      `json:"patient_id"`
	Type      VisitType   `json:"type"`
	Status    VisitStatus `json:"status"`
	Date      *time.Time  `json:"date,omitempty"`
	AgentID   string      `json:"agent_id,omitempty"`
	Vitals    Vitals      `json:"vitals"`
}

// IsDone checks if the visit counts toward coverage
func (v *Visit) IsDone() bool {
	return v.Status == VisitStatusDone
}
