package service

import (
	"math"
	"testing"

	"tekhe-dashboard/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKpi(ratio float64) KpiService {
	return NewKpiService(quietLogger(), testStructures(), NewReferralTimelineService(nil, clock), ratio)
}

func TestComputeKpis_Empty(t *testing.T) {
	k := newKpi(DefaultCpn4TargetRatio).ComputeKpis(KpiInput{}, false)

	assert.Zero(t, k.TotalPatients)
	assert.Zero(t, k.Cpn1Target)
	assert.Zero(t, k.Cpn1Percent)
	assert.Zero(t, k.Cpn4Target)
	assert.Zero(t, k.Cpn4Percent)
	assert.Zero(t, k.CponPercent)
	assert.Zero(t, k.PevCompletePercent)
	assert.Nil(t, k.AvgReferralDelayMinutes)
	assert.Zero(t, k.RiskCounts.Total())
	assert.Empty(t, k.StructureBreakdown)
	assert.Empty(t, k.RedRiskWatchList)
	assert.Empty(t, k.MonthlyVisits)
	require.Len(t, k.AgeBands, len(entity.AgeBands))
	for _, b := range k.AgeBands {
		assert.Zero(t, b.Count)
	}
}

func TestComputeKpis_RiskCountsWithoutPatients(t *testing.T) {
	risks := []entity.RiskAssessment{
		{PatientID: "a", Level: entity.RiskRed},
		{PatientID: "b", Level: entity.RiskRed},
		{PatientID: "c", Level: entity.RiskOrange},
		{PatientID: "d", Level: entity.RiskGreen},
	}

	k := newKpi(DefaultCpn4TargetRatio).ComputeKpis(KpiInput{RiskAssessments: risks}, false)

	assert.Equal(t, RiskCounts{Red: 2, Orange: 1, Green: 1}, k.RiskCounts)
	assert.Equal(t, len(risks), k.RiskCounts.Total())
	assert.Zero(t, k.TotalPatients)
	assert.Zero(t, k.Cpn1Percent)
}

func kpiFixture(t *testing.T) KpiInput {
	prediction := "pre-eclampsia"
	return KpiInput{
		Patients: testPatients(t),
		Visits: []entity.Visit{
			{ID: "V1", PatientID: "1", Type: entity.VisitCPN1, Status: entity.VisitStatusDone},
			{ID: "V2", PatientID: "2", Type: entity.VisitCPN1, Status: entity.VisitStatusDone},
			{ID: "V3", PatientID: "4", Type: entity.VisitCPN1, Status: entity.VisitStatusDone},
			{ID: "V4", PatientID: "3", Type: entity.VisitCPN1, Status: entity.VisitStatusPlanned},
			{ID: "V5", PatientID: "1", Type: entity.VisitCPN4, Status: entity.VisitStatusDone},
			{ID: "V6", PatientID: "1", Type: entity.VisitCPoN1, Status: entity.VisitStatusDone},
			{ID: "V7", PatientID: "2", Type: entity.VisitCPoN1, Status: entity.VisitStatusPlanned},
			{ID: "V8", PatientID: "1", Type: entity.VisitCPN1, Status: entity.VisitStatusDone},
			{ID: "V9", PatientID: "99", Type: entity.VisitCPN1, Status: entity.VisitStatusDone},
		},
		RiskAssessments: []entity.RiskAssessment{
			{PatientID: "1", Level: entity.RiskRed, Score: 80, Factors: []string{"age<18"}, Prediction: &prediction},
			{PatientID: "2", Level: entity.RiskOrange, Score: 50},
			{PatientID: "3", Level: entity.RiskRed, Score: 65},
			{PatientID: "4", Level: entity.RiskGreen, Score: 10},
		},
		Referrals: []entity.Referral{
			{ID: "R1", PatientID: "1", Timestamps: entity.ReferralTimestamps{
				Alert:           *stamp(t, "2024-03-01T10:00"),
				Transport:       stamp(t, "2024-03-01T10:20"),
				Admission:       stamp(t, "2024-03-01T11:00"),
				CounterReferral: stamp(t, "2024-03-01T11:30"),
			}},
			{ID: "R2", PatientID: "2", Timestamps: entity.ReferralTimestamps{
				Alert:     *stamp(t, "2024-06-30T10:00"),
				Transport: stamp(t, "2024-06-30T10:15"),
			}},
			{ID: "R3", PatientID: "3", DelayMinutes: intPtr(45), Timestamps: entity.ReferralTimestamps{
				Alert: *stamp(t, "2024-04-01T08:00"),
			}},
			{ID: "R4", PatientID: "4", Timestamps: entity.ReferralTimestamps{
				Alert:           *stamp(t, "2024-05-01T09:00"),
				Admission:       stamp(t, "2024-05-01T08:00"),
				CounterReferral: stamp(t, "2024-05-01T12:00"),
			}},
		},
		Immunizations: []entity.Immunization{
			{ID: "I1", PatientID: "1", Status: entity.ImmunizationDone},
			{ID: "I2", PatientID: "2", Status: entity.ImmunizationLate},
			{ID: "I3", PatientID: "3", Status: entity.ImmunizationDue},
			{ID: "I4", PatientID: "4", Status: entity.ImmunizationDone},
		},
	}
}

func TestComputeKpis_Coverage(t *testing.T) {
	k := newKpi(DefaultCpn4TargetRatio).ComputeKpis(kpiFixture(t), false)

	assert.Equal(t, 5, k.TotalPatients)
	assert.Equal(t, 3, k.Cpn1Done)
	assert.Equal(t, 5, k.Cpn1Target)
	assert.Equal(t, 60, k.Cpn1Percent)
	assert.Equal(t, 1, k.Cpn4Done)
	assert.Equal(t, 4, k.Cpn4Target)
	assert.Equal(t, 25, k.Cpn4Percent)
	assert.Equal(t, 50, k.CponPercent)
	assert.LessOrEqual(t, k.Cpn1Done, k.TotalPatients)

	assert.Equal(t, 5, k.CoverageEnrolled)
	assert.Equal(t, 3, k.CoverageActive)
	assert.Equal(t, 1, k.CoveragePending)
	assert.Equal(t, 1, k.CoverageToRenew)

	assert.Equal(t, 50, k.PevCompletePercent)
	assert.Equal(t, 1, k.PevLate)
}

func TestComputeKpis_RisksAndReferrals(t *testing.T) {
	k := newKpi(DefaultCpn4TargetRatio).ComputeKpis(kpiFixture(t), false)

	assert.Equal(t, RiskCounts{Red: 2, Orange: 1, Green: 1}, k.RiskCounts)

	require.NotNil(t, k.AvgReferralDelayMinutes)
	assert.InDelta(t, 67.5, *k.AvgReferralDelayMinutes, 1e-9)
	assert.Equal(t, 2, k.ReferralsWithDelay)
	assert.Equal(t, 1, k.ReferralTimelineFaults)
}

func TestComputeKpis_NoKnownDelay(t *testing.T) {
	input := KpiInput{Referrals: []entity.Referral{
		{ID: "R2", PatientID: "2", Timestamps: entity.ReferralTimestamps{Alert: *stamp(t, "2024-06-30T10:00")}},
	}}

	k := newKpi(DefaultCpn4TargetRatio).ComputeKpis(input, false)

	assert.Nil(t, k.AvgReferralDelayMinutes)
	assert.Zero(t, k.ReferralsWithDelay)
}

func TestComputeKpis_Breakdowns(t *testing.T) {
	k := newKpi(DefaultCpn4TargetRatio).ComputeKpis(kpiFixture(t), false)

	assert.Equal(t, []StructureSummary{
		{StructureID: "S1", StructureName: "Médina", DistrictID: "D1", Patients: 2, Cpn1Done: 1, Cpn1Target: 2, RedRisks: 2},
		{StructureID: "S2", StructureName: "Grand Yoff", DistrictID: "D1", Patients: 1, Cpn1Done: 1, Cpn1Target: 1},
		{StructureID: "S3", StructureName: "Thiès Nord", DistrictID: "D2", Patients: 2, Cpn1Done: 1, Cpn1Target: 2},
	}, k.StructureBreakdown)

	assert.Equal(t, []AgeBandCount{
		{Band: entity.AgeBandUnder18, Count: 1},
		{Band: entity.AgeBand18To25, Count: 1},
		{Band: entity.AgeBand26To35, Count: 1},
		{Band: entity.AgeBandOver35, Count: 1},
		{Band: entity.AgeBandUnknown, Count: 1},
	}, k.AgeBands)

	require.Len(t, k.RedRiskWatchList, 2)
	assert.Equal(t, "1", k.RedRiskWatchList[0].PatientID)
	assert.Equal(t, "Awa Diop", k.RedRiskWatchList[0].FullName)
	assert.Equal(t, 80, k.RedRiskWatchList[0].Score)
	assert.Equal(t, "3", k.RedRiskWatchList[1].PatientID)
}

func TestComputeKpis_AnonymizedOmitsWatchList(t *testing.T) {
	k := newKpi(DefaultCpn4TargetRatio).ComputeKpis(kpiFixture(t), true)

	assert.True(t, k.Anonymized)
	assert.Nil(t, k.RedRiskWatchList)
	assert.Len(t, k.StructureBreakdown, 3)
	assert.Equal(t, 5, k.TotalPatients)
}

func TestComputeKpis_Cpn4TargetRatio(t *testing.T) {
	patients := testPatients(t)

	tests := []struct {
		ratio float64
		want  int
	}{
		{ratio: 0.76, want: 4},
		{ratio: 0.5, want: 3},
		{ratio: 1, want: 5},
		{ratio: 0, want: 0},
		{ratio: 1.5, want: 4},
		{ratio: -0.1, want: 4},
		{ratio: math.NaN(), want: 4},
		{ratio: math.Inf(1), want: 4},
	}
	for _, tt := range tests {
		k := newKpi(tt.ratio).ComputeKpis(KpiInput{Patients: patients}, false)
		assert.Equal(t, tt.want, k.Cpn4Target, "ratio %v", tt.ratio)
	}
}

func TestComputeKpis_MonthlyVisits(t *testing.T) {
	input := KpiInput{
		Patients: testPatients(t),
		Visits: []entity.Visit{
			{ID: "V1", PatientID: "1", Type: entity.VisitCPN1, Status: entity.VisitStatusDone, Date: day(t, "2024-01-12")},
			{ID: "V2", PatientID: "2", Type: entity.VisitCPN1, Status: entity.VisitStatusDone, Date: day(t, "2024-01-20")},
			{ID: "V3", PatientID: "1", Type: entity.VisitCPN4, Status: entity.VisitStatusDone, Date: day(t, "2024-03-02")},
			{ID: "V4", PatientID: "2", Type: entity.VisitCPN2, Status: entity.VisitStatusPlanned, Date: day(t, "2024-03-05")},
			{ID: "V5", PatientID: "3", Type: entity.VisitCPN2, Status: entity.VisitStatusDone},
			{ID: "V6", PatientID: "1", Type: entity.VisitCPoN1, Status: entity.VisitStatusDone, Date: day(t, "2024-03-10")},
			{ID: "V7", PatientID: "99", Type: entity.VisitCPN3, Status: entity.VisitStatusDone, Date: day(t, "2024-02-01")},
		},
	}

	k := newKpi(DefaultCpn4TargetRatio).ComputeKpis(input, true)

	assert.Equal(t, []MonthlyCpnCount{
		{Month: "2024-01", Cpn1: 2},
		{Month: "2024-03", Cpn4: 1},
	}, k.MonthlyVisits)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(3, 0))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 100, Percent(4, 4))
	assert.Equal(t, 1, Percent(1, 200))
}
