package service

import (
	"testing"

	"tekhe-dashboard/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestValidBloodPressure(t *testing.T) {
	for reading, want := range map[string]bool{
		"120/80":   true,
		" 90 / 60": true,
		"250/150":  true,
		"251/80":   false,
		"300/20":   false,
		"80/120":   false,
		"120":      false,
		"abc/80":   false,
		"120/":     false,
	} {
		assert.Equal(t, want, ValidBloodPressure(reading), reading)
	}
}

func TestAssess(t *testing.T) {
	input := QualityInput{
		Patients: []entity.Patient{
			{ID: "1", Age: intPtr(22), GestationalWeek: intPtr(20), EnrollmentDate: day(t, "2024-01-10"), Phone: "+221700000000", LastPeriodDate: day(t, "2024-03-01")},
			{ID: "2"},
		},
		Visits: []entity.Visit{
			{ID: "V1", PatientID: "1", Date: day(t, "2024-02-01"), Vitals: entity.Vitals{BloodPressure: "120/80"}},
			{ID: "V2", PatientID: "1", Date: day(t, "2024-04-01"), Vitals: entity.Vitals{BloodPressure: "300/20"}},
			{ID: "V3", PatientID: "2", Date: day(t, "2024-04-01")},
		},
		Referrals: []entity.Referral{
			{ID: "R1", Timestamps: entity.ReferralTimestamps{Alert: *stamp(t, "2024-05-01T09:00"), Transport: stamp(t, "2024-05-01T08:00")}},
			{ID: "R2", Timestamps: entity.ReferralTimestamps{Alert: *stamp(t, "2024-05-01T09:00")}},
		},
		OrphanRecords: 2,
	}

	r := NewDataQualityService().Assess(input)

	assert.Equal(t, 50, r.CompletenessPercent)
	assert.Equal(t, 1, r.MissingAges)
	assert.Equal(t, 1, r.PeriodAfterVisit)
	assert.Equal(t, 1, r.InvalidPressures)
	assert.Equal(t, 1, r.TimelineFaults)
	assert.Equal(t, 2, r.OrphanRecords)
	assert.ElementsMatch(t, []QualityIssue{
		{Check: CheckMissingAge, RecordID: "2"},
		{Check: CheckPeriodAfterVisit, RecordID: "V1", Detail: "last period 2024-03-01 after visit 2024-02-01"},
		{Check: CheckInvalidPressure, RecordID: "V2", Detail: "300/20"},
		{Check: CheckTimelineFault, RecordID: "R1"},
	}, r.Issues)
}

func TestAssess_Empty(t *testing.T) {
	r := NewDataQualityService().Assess(QualityInput{})

	assert.Zero(t, r.CompletenessPercent)
	assert.NotNil(t, r.Issues)
	assert.Empty(t, r.Issues)
}
