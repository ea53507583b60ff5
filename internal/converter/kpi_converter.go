package converter

import (
	"time"

	"tekhe-dashboard/internal/delivery/dto"
	"tekhe-dashboard/internal/service"
)

// KpiSetToResponse converts a KpiSet to KpiResponse DTO
func KpiSetToResponse(k *service.KpiSet, digest string, generatedAt time.Time) *dto.KpiResponse {
	if k == nil {
		return nil
	}

	resp := &dto.KpiResponse{
		DatasetDigest: digest,
		GeneratedAt:   generatedAt,
		Anonymized:    k.Anonymized,
		TotalPatients: k.TotalPatients,
		Cpn1Done:      k.Cpn1Done,
		Cpn1Target:    k.Cpn1Target,
		Cpn1Percent:   k.Cpn1Percent,
		Cpn4Done:      k.Cpn4Done,
		Cpn4Target:    k.Cpn4Target,
		Cpn4Percent:   k.Cpn4Percent,
		CponPercent:   k.CponPercent,
		Risks: dto.RiskCountsResponse{
			Red:    k.RiskCounts.Red,
			Orange: k.RiskCounts.Orange,
			Green:  k.RiskCounts.Green,
			Total:  k.RiskCounts.Total(),
		},
		Referrals: dto.ReferralKpiResponse{
			AvgDelayMinutes: k.AvgReferralDelayMinutes,
			WithDelay:       k.ReferralsWithDelay,
			TimelineFaults:  k.ReferralTimelineFaults,
		},
		Coverage: dto.CoverageResponse{
			Enrolled: k.CoverageEnrolled,
			Active:   k.CoverageActive,
			Pending:  k.CoveragePending,
			ToRenew:  k.CoverageToRenew,
		},
		PevCompletePercent: k.PevCompletePercent,
		PevLate:            k.PevLate,
		Structures:         make([]dto.StructureSummaryResponse, 0, len(k.StructureBreakdown)),
		AgeBands:           make([]dto.AgeBandResponse, 0, len(k.AgeBands)),
		Monthly:            make([]dto.MonthlyCpnResponse, 0, len(k.MonthlyVisits)),
	}

	for _, s := range k.StructureBreakdown {
		resp.Structures = append(resp.Structures, dto.StructureSummaryResponse{
			StructureID:   s.StructureID,
			StructureName: s.StructureName,
			DistrictID:    s.DistrictID,
			Patients:      s.Patients,
			Cpn1Done:      s.Cpn1Done,
			Cpn1Target:    s.Cpn1Target,
			Cpn1Percent:   service.Percent(s.Cpn1Done, s.Cpn1Target),
			RedRisks:      s.RedRisks,
		})
	}
	for _, b := range k.AgeBands {
		resp.AgeBands = append(resp.AgeBands, dto.AgeBandResponse{Band: string(b.Band), Count: b.Count})
	}

	for _, m := range k.MonthlyVisits {
		resp.Monthly = append(resp.Monthly, dto.MonthlyCpnResponse{
			Month: m.Month,
			Cpn1:  m.Cpn1,
			Cpn2:  m.Cpn2,
			Cpn3:  m.Cpn3,
			Cpn4:  m.Cpn4,
		})
	}

	if k.Anonymized {
		return resp
	}
	resp.WatchList = make([]dto.WatchListEntryResponse, 0, len(k.RedRiskWatchList))
	for _, w := range k.RedRiskWatchList {
		resp.WatchList = append(resp.WatchList, dto.WatchListEntryResponse{
			PatientID:   w.PatientID,
			FullName:    w.FullName,
			Phone:       w.Phone,
			StructureID: w.StructureID,
			Score:       w.Score,
			Factors:     w.Factors,
			Prediction:  w.Prediction,
		})
	}
	return resp
}
