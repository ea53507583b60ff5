package service

import (
	"strconv"
	"strings"

	"tekhe-dashboard/internal/domain/entity"
)

// Plausible blood pressure bounds in mmHg
const (
	minSystolic  = 60
	maxSystolic  = 250
	minDiastolic = 30
	maxDiastolic = 150
)

// QualityInput holds scoped collections plus the dataset-wide orphan count
type QualityInput struct {
	Patients      []entity.Patient
	Visits        []entity.Visit
	Referrals     []entity.Referral
	OrphanRecords int
}

// QualityIssue points at one record failing a check
type QualityIssue struct {
	Check    string
	RecordID string
	Detail   string
}

const (
	CheckMissingAge       = "missing_age"
	CheckPeriodAfterVisit = "last_period_after_visit"
	CheckInvalidPressure  = "invalid_blood_pressure"
	CheckTimelineFault    = "referral_timeline_inconsistent"
)

type QualityReport struct {
	CompletenessPercent int
	MissingAges         int
	PeriodAfterVisit    int
	InvalidPressures    int
	TimelineFaults      int
	OrphanRecords       int
	Issues              []QualityIssue
}

type DataQualityService interface {
	Assess(input QualityInput) *QualityReport
}

type dataQualityService struct{}

func NewDataQualityService() DataQualityService {
	return &dataQualityService{}
}

func (s *dataQualityService) Assess(input QualityInput) *QualityReport {
	r := &QualityReport{OrphanRecords: input.OrphanRecords, Issues: []QualityIssue{}}

	periods := make(map[string]*entity.Patient, len(input.Patients))
	filled, expected := 0, 0
	for i := range input.Patients {
		p := &input.Patients[i]
		if p.LastPeriodDate != nil {
			periods[p.ID] = p
		}
		if p.Age == nil {
			r.MissingAges++
			r.Issues = append(r.Issues, QualityIssue{Check: CheckMissingAge, RecordID: p.ID})
		}
		for _, ok := range []bool{p.Age != nil, p.GestationalWeek != nil, p.EnrollmentDate != nil, p.Phone != ""} {
			expected++
			if ok {
				filled++
			}
		}
	}
	r.CompletenessPercent = Percent(filled, expected)

	for i := range input.Visits {
		v := &input.Visits[i]
		if p, ok := periods[v.PatientID]; ok && v.Date != nil && p.LastPeriodDate.After(*v.Date) {
			r.PeriodAfterVisit++
			r.Issues = append(r.Issues, QualityIssue{
				Check:    CheckPeriodAfterVisit,
				RecordID: v.ID,
				Detail:   "last period " + p.LastPeriodDate.Format("2006-01-02") + " after visit " + v.Date.Format("2006-01-02"),
			})
		}
		if bp := v.Vitals.BloodPressure; bp != "" && !ValidBloodPressure(bp) {
			r.InvalidPressures++
			r.Issues = append(r.Issues, QualityIssue{Check: CheckInvalidPressure, RecordID: v.ID, Detail: bp})
		}
	}

	for i := range input.Referrals {
		if !input.Referrals[i].Consistent() {
			r.TimelineFaults++
			r.Issues = append(r.Issues, QualityIssue{Check: CheckTimelineFault, RecordID: input.Referrals[i].ID})
		}
	}
	return r
}

// ValidBloodPressure checks a "systolic/diastolic" reading for plausibility
func ValidBloodPressure(reading string) bool {
	sys, dia, ok := strings.Cut(strings.TrimSpace(reading), "/")
	if !ok {
		return false
	}
	s, err := strconv.Atoi(strings.TrimSpace(sys))
	if err != nil {
		return false
	}
	d, err := strconv.Atoi(strings.TrimSpace(dia))
	if err != nil {
		return false
	}
	return s >= minSystolic && s <= maxSystolic &&
		d >= minDiastolic && d <= maxDiastolic &&
		s > d
}
