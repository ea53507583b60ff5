package dto

import (
	"time"

	"github.com/google/uuid"
)

// PatientResponse is a patient row for identified callers
type PatientResponse struct {
	ID              string     `json:"id"`
	FullName        string     `json:"full_name"`
	Phone           string     `json:"phone,omitempty"`
	QRCode          string     `json:"qr_code,omitempty"`
	Age             *int       `json:"age,omitempty"`
	AgeBand         string     `json:"age_band"`
	GestationalWeek *int       `json:"gestational_week,omitempty"`
	LastPeriodDate  string     `json:"last_period_date,omitempty"`
	ExpectedTerm    string     `json:"expected_term,omitempty"`
	StructureID     string     `json:"structure_id"`
	DistrictID      string     `json:"district_id,omitempty"`
	AgentID         string     `json:"agent_id"`
	EnrollmentDate  *time.Time `json:"enrollment_date,omitempty"`
	CoverageStatus  string     `json:"coverage_status"`
	RiskLevel       string     `json:"risk_level,omitempty"`
}

// AnonymizedPatientResponse is a patient row for partner callers. It carries
// no identifying field.
type AnonymizedPatientResponse struct {
	Pseudonym      uuid.UUID `json:"pseudonym"`
	AgeBand        string    `json:"age_band"`
	DistrictID     string    `json:"district_id,omitempty"`
	CoverageStatus string    `json:"coverage_status"`
	RiskLevel      string    `json:"risk_level,omitempty"`
}

type PatientListResponse struct {
	Anonymized bool                        `json:"anonymized"`
	Total      int                         `json:"total"`
	Patients   []PatientResponse           `json:"patients,omitempty"`
	Rows       []AnonymizedPatientResponse `json:"rows,omitempty"`
}

type VisitResponse struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Date          *time.Time `json:"date,omitempty"`
	AgentID       string     `json:"agent_id,omitempty"`
	WeightKg      *float64   `json:"weight_kg,omitempty"`
	BloodPressure string     `json:"blood_pressure,omitempty"`
	MUACcm        *float64   `json:"muac_cm,omitempty"`
	BMI           *float64   `json:"bmi,omitempty"`
	Hemoglobin    *float64   `json:"hemoglobin,omitempty"`
}

type RiskAssessmentResponse struct {
	Level      string   `json:"level"`
	Score      int      `json:"score"`
	Factors    []string `json:"factors,omitempty"`
	Prediction *string  `json:"prediction,omitempty"`
}

type ImmunizationResponse struct {
	ID       string     `json:"id"`
	Vaccine  string     `json:"vaccine"`
	DueDate  string     `json:"due_date"`
	DoneDate *time.Time `json:"done_date,omitempty"`
	Status   string     `json:"status"`
}

type PatientDetailResponse struct {
	Patient       PatientResponse         `json:"patient"`
	Risk          *RiskAssessmentResponse `json:"risk,omitempty"`
	Visits        []VisitResponse         `json:"visits"`
	Immunizations []ImmunizationResponse  `json:"immunizations"`
	Referrals     []ReferralResponse      `json:"referrals"`
}
