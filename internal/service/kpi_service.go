package service

import (
	"math"
	"sort"

	"tekhe-dashboard/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultCpn4TargetRatio is the share of the cohort expected to reach CPN4.
// It is an estimation placeholder, not a clinical constant.
const DefaultCpn4TargetRatio = 0.76

// KpiInput holds collections already scoped to one actor and window.
// Visit-based coverage only counts patients in Patients; risk, referral and
// immunization figures are taken over the collections as given.
type KpiInput struct {
	Patients        []entity.Patient
	Visits          []entity.Visit
	RiskAssessments []entity.RiskAssessment
	Referrals       []entity.Referral
	Immunizations   []entity.Immunization
}

type RiskCounts struct {
	Red    int `json:"red"`
	Orange int `json:"orange"`
	Green  int `json:"green"`
}

func (c RiskCounts) Total() int {
	return c.Red + c.Orange + c.Green
}

// StructureSummary aggregates one structure's cohort. It carries no
// patient-level field.
type StructureSummary struct {
	StructureID   string
	StructureName string
	DistrictID    string
	Patients      int
	Cpn1Done      int
	Cpn1Target    int
	RedRisks      int
}

type AgeBandCount struct {
	Band  entity.AgeBand
	Count int
}

// MonthlyCpnCount counts done antenatal visits dated in one calendar month
type MonthlyCpnCount struct {
	Month string // 2006-01
	Cpn1  int
	Cpn2  int
	Cpn3  int
	Cpn4  int
}

// WatchListEntry is a red-risk patient for identified callers only
type WatchListEntry struct {
	PatientID   string
	FullName    string
	Phone       string
	StructureID string
	Score       int
	Factors     []string
	Prediction  *string
}

// KpiSet is the dashboard indicator set. Every value is recomputed from
// the input on each call.
type KpiSet struct {
	TotalPatients int
	Cpn1Done      int
	Cpn1Target    int
	Cpn1Percent   int
	Cpn4Done      int
	Cpn4Target    int
	Cpn4Percent   int
	CponPercent   int

	RiskCounts RiskCounts

	// AvgReferralDelayMinutes is nil when no referral has a known delay
	AvgReferralDelayMinutes *float64
	ReferralsWithDelay      int
	ReferralTimelineFaults  int

	CoverageEnrolled int
	CoverageActive   int
	CoveragePending  int
	CoverageToRenew  int

	PevCompletePercent int
	PevLate            int

	Anonymized         bool
	StructureBreakdown []StructureSummary
	AgeBands           []AgeBandCount
	MonthlyVisits      []MonthlyCpnCount
	RedRiskWatchList   []WatchListEntry // nil when Anonymized
}

type KpiService interface {
	ComputeKpis(input KpiInput, anonymized bool) *KpiSet
}

type kpiService struct {
	log             *logrus.Logger
	structures      entity.StructureDirectory
	timelines       ReferralTimelineService
	cpn4TargetRatio float64
}

func NewKpiService(
	log *logrus.Logger,
	structures entity.StructureDirectory,
	timelines ReferralTimelineService,
	cpn4TargetRatio float64,
) KpiService {
	if math.IsNaN(cpn4TargetRatio) || cpn4TargetRatio < 0 || cpn4TargetRatio > 1 {
		log.Warnf("CPN4 target ratio %.2f out of [0,1], using %.2f", cpn4TargetRatio, DefaultCpn4TargetRatio)
		cpn4TargetRatio = DefaultCpn4TargetRatio
	}
	return &kpiService{
		log:             log,
		structures:      structures,
		timelines:       timelines,
		cpn4TargetRatio: cpn4TargetRatio,
	}
}

func (s *kpiService) ComputeKpis(input KpiInput, anonymized bool) *KpiSet {
	cohort := patientIDSet(input.Patients)
	total := len(input.Patients)

	k := &KpiSet{
		TotalPatients:    total,
		Cpn1Target:       total,
		Cpn4Target:       roundedShare(s.cpn4TargetRatio, total),
		CoverageEnrolled: total,
		Anonymized:       anonymized,
	}

	cpn1 := patientsWithDoneVisit(input.Visits, cohort, func(t entity.VisitType) bool { return t == entity.VisitCPN1 })
	cpn4 := patientsWithDoneVisit(input.Visits, cohort, func(t entity.VisitType) bool { return t == entity.VisitCPN4 })
	k.Cpn1Done = len(cpn1)
	k.Cpn4Done = len(cpn4)
	k.Cpn1Percent = Percent(k.Cpn1Done, k.Cpn1Target)
	k.Cpn4Percent = Percent(k.Cpn4Done, k.Cpn4Target)
	k.CponPercent = s.postnatalPercent(input.Visits, cohort)

	for i := range input.Patients {
		switch input.Patients[i].CoverageStatus {
		case entity.CoverageActive:
			k.CoverageActive++
		case entity.CoveragePending:
			k.CoveragePending++
		case entity.CoverageToRenew:
			k.CoverageToRenew++
		}
	}

	risks := input.RiskAssessments
	k.RiskCounts = countRisks(risks)

	s.referralDelays(k, input.Referrals)
	s.immunizations(k, input.Immunizations)

	k.StructureBreakdown = s.structureBreakdown(input.Patients, cpn1, risks)
	k.AgeBands = ageDistribution(input.Patients)
	k.MonthlyVisits = monthlyVisits(input.Visits, cohort)
	if !anonymized {
		k.RedRiskWatchList = watchList(input.Patients, risks)
	}
	return k
}

// countRisks partitions assessments by level. Levels are checked at
// ingestion, so the three counts always sum to len(risks).
func countRisks(risks []entity.RiskAssessment) RiskCounts {
	var c RiskCounts
	for i := range risks {
		switch risks[i].Level {
		case entity.RiskRed:
			c.Red++
		case entity.RiskOrange:
			c.Orange++
		case entity.RiskGreen:
			c.Green++
		}
	}
	return c
}

func patientsWithDoneVisit(visits []entity.Visit, cohort map[string]struct{}, match func(entity.VisitType) bool) map[string]struct{} {
	done := make(map[string]struct{})
	for i := range visits {
		v := &visits[i]
		if !v.IsDone() || !match(v.Type) {
			continue
		}
		if _, ok := cohort[v.PatientID]; ok {
			done[v.PatientID] = struct{}{}
		}
	}
	return done
}

// postnatalPercent is the share of patients with a CPoN record who have at
// least one done CPoN visit.
func (s *kpiService) postnatalPercent(visits []entity.Visit, cohort map[string]struct{}) int {
	expected := make(map[string]struct{})
	for i := range visits {
		v := &visits[i]
		if !v.Type.IsPostnatal() {
			continue
		}
		if _, ok := cohort[v.PatientID]; ok {
			expected[v.PatientID] = struct{}{}
		}
	}
	done := patientsWithDoneVisit(visits, cohort, entity.VisitType.IsPostnatal)
	return Percent(len(done), len(expected))
}

func (s *kpiService) referralDelays(k *KpiSet, referrals []entity.Referral) {
	sum := decimal.Zero
	for i := range referrals {
		tl := s.timelines.DeriveReferralState(&referrals[i])
		if tl.IntegrityFault {
			k.ReferralTimelineFaults++
		}
		if tl.DelayMinutes == nil {
			continue
		}
		sum = sum.Add(decimal.NewFromInt(int64(*tl.DelayMinutes)))
		k.ReferralsWithDelay++
	}

	if k.ReferralsWithDelay == 0 {
		return
	}
	avg := sum.Div(decimal.NewFromInt(int64(k.ReferralsWithDelay))).Round(1).InexactFloat64()
	k.AvgReferralDelayMinutes = &avg
}

func (s *kpiService) immunizations(k *KpiSet, doses []entity.Immunization) {
	done := 0
	for i := range doses {
		switch doses[i].Status {
		case entity.ImmunizationDone:
			done++
		case entity.ImmunizationLate:
			k.PevLate++
		}
	}
	k.PevCompletePercent = Percent(done, len(doses))
}

func (s *kpiService) structureBreakdown(patients []entity.Patient, cpn1 map[string]struct{}, risks []entity.RiskAssessment) []StructureSummary {
	red := make(map[string]struct{})
	for i := range risks {
		if risks[i].IsRed() {
			red[risks[i].PatientID] = struct{}{}
		}
	}

	byStructure := make(map[string]*StructureSummary)
	for i := range patients {
		p := &patients[i]
		sum, ok := byStructure[p.StructureID]
		if !ok {
			st := s.structures[p.StructureID]
			sum = &StructureSummary{StructureID: p.StructureID, StructureName: st.Name, DistrictID: st.DistrictID}
			byStructure[p.StructureID] = sum
		}
		sum.Patients++
		sum.Cpn1Target++
		if _, ok := cpn1[p.ID]; ok {
			sum.Cpn1Done++
		}
		if _, ok := red[p.ID]; ok {
			sum.RedRisks++
		}
	}

	out := make([]StructureSummary, 0, len(byStructure))
	for _, sum := range byStructure {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistrictID != out[j].DistrictID {
			return out[i].DistrictID < out[j].DistrictID
		}
		return out[i].StructureID < out[j].StructureID
	})
	return out
}

func ageDistribution(patients []entity.Patient) []AgeBandCount {
	counts := make(map[entity.AgeBand]int, len(entity.AgeBands)+1)
	for i := range patients {
		counts[entity.AgeBandOf(patients[i].Age)]++
	}

	out := make([]AgeBandCount, 0, len(entity.AgeBands)+1)
	for _, band := range entity.AgeBands {
		out = append(out, AgeBandCount{Band: band, Count: counts[band]})
	}
	if n := counts[entity.AgeBandUnknown]; n > 0 {
		out = append(out, AgeBandCount{Band: entity.AgeBandUnknown, Count: n})
	}
	return out
}

// monthlyVisits groups done CPN visits of the cohort by visit month.
// Undated visits are left out.
func monthlyVisits(visits []entity.Visit, cohort map[string]struct{}) []MonthlyCpnCount {
	byMonth := make(map[string]*MonthlyCpnCount)
	for i := range visits {
		v := &visits[i]
		if !v.IsDone() || v.Date == nil {
			continue
		}
		if _, ok := cohort[v.PatientID]; !ok {
			continue
		}

		month := v.Date.UTC().Format("2006-01")
		m, ok := byMonth[month]
		if !ok {
			m = &MonthlyCpnCount{Month: month}
		}
		switch v.Type {
		case entity.VisitCPN1:
			m.Cpn1++
		case entity.VisitCPN2:
			m.Cpn2++
		case entity.VisitCPN3:
			m.Cpn3++
		case entity.VisitCPN4:
			m.Cpn4++
		default:
			continue
		}
		byMonth[month] = m
	}

	out := make([]MonthlyCpnCount, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func watchList(patients []entity.Patient, risks []entity.RiskAssessment) []WatchListEntry {
	byID := make(map[string]*entity.Patient, len(patients))
	for i := range patients {
		byID[patients[i].ID] = &patients[i]
	}

	list := make([]WatchListEntry, 0)
	for i := range risks {
		r := &risks[i]
		p, ok := byID[r.PatientID]
		if !ok || !r.IsRed() {
			continue
		}
		list = append(list, WatchListEntry{
			PatientID:   p.ID,
			FullName:    p.FullName(),
			Phone:       p.Phone,
			StructureID: p.StructureID,
			Score:       r.Score,
			Factors:     r.Factors,
			Prediction:  r.Prediction,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		return list[i].PatientID < list[j].PatientID
	})
	return list
}

// Percent returns round(100*num/den), or 0 when den is 0
func Percent(num, den int) int {
	if den == 0 {
		return 0
	}
	p := decimal.NewFromInt(int64(num)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(den))).
		Round(0)
	return int(p.IntPart())
}

// roundedShare returns round(ratio*n)
func roundedShare(ratio float64, n int) int {
	return int(decimal.NewFromFloat(ratio).Mul(decimal.NewFromInt(int64(n))).Round(0).IntPart())
}
