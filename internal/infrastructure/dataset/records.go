package dataset

import (
	"fmt"
	"time"

	"tekhe-dashboard/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// timestampLayouts are tried in order when parsing referral timestamps.
// Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// document is the on-disk shape of a snapshot
type document struct {
	Structures      []structureRecord    `json:"structures" validate:"dive"`
	Patients        []patientRecord      `json:"patients" validate:"dive"`
	Visits          []visitRecord        `json:"visits" validate:"dive"`
	RiskAssessments []riskRecord         `json:"risk_assessments" validate:"dive"`
	Referrals       []referralRecord     `json:"referrals" validate:"dive"`
	Immunizations   []immunizationRecord `json:"immunizations" validate:"dive"`
}

type structureRecord struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name"`
	DistrictID string `json:"district_id" validate:"required"`
}

type patientRecord struct {
	ID              string  `json:"id" validate:"required"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Phone           string  `json:"phone"`
	QRCode          string  `json:"qr_code"`
	Age             *int    `json:"age" validate:"omitempty,gte=0,lte=120"`
	GestationalWeek *int    `json:"gestational_week" validate:"omitempty,gte=0,lte=45"`
	LastPeriodDate  *string `json:"last_period_date" validate:"omitempty,datetime=2006-01-02"`
	ExpectedTerm    *string `json:"expected_term" validate:"omitempty,datetime=2006-01-02"`
	StructureID     string  `json:"structure_id" validate:"required"`
	AgentID         string  `json:"agent_id" validate:"required"`
	EnrollmentDate  *string `json:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
	CoverageStatus  string  `json:"coverage_status" validate:"required,oneof=active pending to_renew"`
}

type vitalsRecord struct {
	WeightKg      *float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	BloodPressure string   `json:"blood_pressure"`
	MUACcm        *float64 `json:"muac_cm" validate:"omitempty,gt=0"`
	BMI           *float64 `json:"bmi" validate:"omitempty,gt=0"`
	Hemoglobin    *float64 `json:"hemoglobin" validate:"omitempty,gt=0"`
}

type visitRecord struct {
	ID        string       `json:"id" validate:"required"`
	PatientID string       `json:"patient_id" validate:"required"`
	Type      string       `json:"type" validate:"required,oneof=CPN1 CPN2 CPN3 CPN4 CPoN1 CPoN2 CPoN3"`
	Status    string       `json:"status" validate:"required,oneof=done planned to_plan"`
	Date      *string      `json:"date" validate:"omitempty,datetime=2006-01-02"`
	AgentID   string       `json:"agent_id"`
	Vitals    vitalsRecord `json:"vitals"`
}

type riskRecord struct {
	PatientID  string   `json:"patient_id" validate:"required"`
	Level      string   `json:"level" validate:"required,oneof=red orange green"`
	Score      int      `json:"score" validate:"gte=0,lte=100"`
	Factors    []string `json:"factors"`
	Prediction *string  `json:"prediction"`
}

type referralTimestampsRecord struct {
	Alert           string  `json:"alert" validate:"required"`
	Transport       *string `json:"transport"`
	Admission       *string `json:"admission"`
	CounterReferral *string `json:"counter_referral"`
}

type referralRecord struct {
	ID                     string                   `json:"id" validate:"required"`
	PatientID              string                   `json:"patient_id" validate:"required"`
	AlertType              string                   `json:"alert_type"`
	Timestamps             referralTimestampsRecord `json:"timestamps"`
	OriginStructureID      string                   `json:"origin_structure_id"`
	DestinationStructureID string                   `json:"destination_structure_id"`
	Status                 string                   `json:"status"`
	DelayMinutes           *int                     `json:"delay_minutes" validate:"omitempty,gte=0"`
}

type immunizationRecord struct {
	ID        string  `json:"id" validate:"required"`
	PatientID string  `json:"patient_id" validate:"required"`
	Vaccine   string  `json:"vaccine" validate:"required"`
	DueDate   string  `json:"due_date" validate:"required,datetime=2006-01-02"`
	DoneDate  *string `json:"done_date" validate:"omitempty,datetime=2006-01-02"`
	Status    string  `json:"status" validate:"required,oneof=done late due"`
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}

func parseOptionalTimestamp(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseTimestamp(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r structureRecord) toEntity() entity.Structure {
	return entity.Structure{ID: r.ID, Name: r.Name, DistrictID: r.DistrictID}
}

func (r patientRecord) toEntity() (entity.Patient, error) {
	p := entity.Patient{
		ID:              r.ID,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Phone:           r.Phone,
		QRCode:          r.QRCode,
		Age:             r.Age,
		GestationalWeek: r.GestationalWeek,
		StructureID:     r.StructureID,
		AgentID:         r.AgentID,
		CoverageStatus:  entity.CoverageStatus(r.CoverageStatus),
	}

	var err error
	if p.LastPeriodDate, err = parseDate(r.LastPeriodDate); err != nil {
		return p, fmt.Errorf("patient %s last_period_date: %w", r.ID, err)
	}
	if p.ExpectedTerm, err = parseDate(r.ExpectedTerm); err != nil {
		return p, fmt.Errorf("patient %s expected_term: %w", r.ID, err)
	}
	if p.EnrollmentDate, err = parseDate(r.EnrollmentDate); err != nil {
		return p, fmt.Errorf("patient %s enrollment_date: %w", r.ID, err)
	}
	return p, nil
}

func (r visitRecord) toEntity() (entity.Visit, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return entity.Visit{}, fmt.Errorf("visit %s date: %w", r.ID, err)
	}
	return entity.Visit{
		ID:        r.ID,
		PatientID: r.PatientID,
		Type:      entity.VisitType(r.Type),
		Status:    entity.VisitStatus(r.Status),
		Date:      date,
		AgentID:   r.AgentID,
		Vitals: entity.Vitals{
			WeightKg:      r.Vitals.WeightKg,
			BloodPressure: r.Vitals.BloodPressure,
			MUACcm:        r.Vitals.MUACcm,
			BMI:           r.Vitals.BMI,
			Hemoglobin:    r.Vitals.Hemoglobin,
		},
	}, nil
}

func (r riskRecord) toEntity() entity.RiskAssessment {
	return entity.RiskAssessment{
		PatientID:  r.PatientID,
		Level:      entity.RiskLevel(r.Level),
		Score:      r.Score,
		Factors:    r.Factors,
		Prediction: r.Prediction,
	}
}

func (r referralRecord) toEntity() (entity.Referral, error) {
	ref := entity.Referral{
		ID:                     r.ID,
		PatientID:              r.PatientID,
		AlertType:              r.AlertType,
		OriginStructureID:      r.OriginStructureID,
		DestinationStructureID: r.DestinationStructureID,
		RecordedStatus:         r.Status,
		DelayMinutes:           r.DelayMinutes,
	}

	var err error
	if ref.Timestamps.Alert, err = parseTimestamp(r.Timestamps.Alert); err != nil {
		return ref, fmt.Errorf("referral %s alert: %w", r.ID, err)
	}
	if ref.Timestamps.Transport, err = parseOptionalTimestamp(r.Timestamps.Transport); err != nil {
		return ref, fmt.Errorf("referral %s transport: %w", r.ID, err)
	}
	if ref.Timestamps.Admission, err = parseOptionalTimestamp(r.Timestamps.Admission); err != nil {
		return ref, fmt.Errorf("referral %s admission: %w", r.ID, err)
	}
	if ref.Timestamps.CounterReferral, err = parseOptionalTimestamp(r.Timestamps.CounterReferral); err != nil {
		return ref, fmt.Errorf("referral %s counter_referral: %w", r.ID, err)
	}
	return ref, nil
}

func (r immunizationRecord) toEntity() (entity.Immunization, error) {
	due, err := time.Parse(dateLayout, r.DueDate)
	if err != nil {
		return entity.Immunization{}, fmt.Errorf("immunization %s due_date: %w", r.ID, err)
	}
	done, err := parseDate(r.DoneDate)
	if err != nil {
		return entity.Immunization{}, fmt.Errorf("immunization %s done_date: %w", r.ID, err)
	}
	return entity.Immunization{
		ID:        r.ID,
		PatientID: r.PatientID,
		Vaccine:   r.Vaccine,
		DueDate:   due,
		DoneDate:  done,
		Status:    entity.ImmunizationStatus(r.Status),
	}, nil
}
