package entity

import "time"

// ImmunizationStatus represents the status of a PEV dose
type ImmunizationStatus string

const (
	ImmunizationDone ImmunizationStatus = "done"
	ImmunizationLate ImmunizationStatus = "late"
	ImmunizationDue  ImmunizationStatus = "due"
)

// Immunization is one scheduled dose of the expanded immunization program
type Immunization struct {
	ID        string             `json:"id"`
	PatientID string             `json:"patient_id"`
	Vaccine   string             `json:"vaccine"`
	DueDate   time.Time          `json:"due_date"`
	DoneDate  *time.Time         `json:"done_date,omitempty"`
	Status    ImmunizationStatus `json:"status"`
}
