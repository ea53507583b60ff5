package converter

import (
	"tekhe-dashboard/internal/delivery/dto"
	"tekhe-dashboard/internal/service"
)

func QualityReportToResponse(r *service.QualityReport, digest string) *dto.QualityResponse {
	if r == nil {
		return nil
	}
	resp := &dto.QualityResponse{
		DatasetDigest:       digest,
		CompletenessPercent: r.CompletenessPercent,
		MissingAges:         r.MissingAges,
		PeriodAfterVisit:    r.PeriodAfterVisit,
		InvalidPressures:    r.InvalidPressures,
		TimelineFaults:      r.TimelineFaults,
		OrphanRecords:       r.OrphanRecords,
		Issues:              make([]dto.QualityIssueResponse, 0, len(r.Issues)),
	}
	for _, issue := range r.Issues {
		resp.Issues = append(resp.Issues, dto.QualityIssueResponse{
			Check:    issue.Check,
			RecordID: issue.RecordID,
			Detail:   issue.Detail,
		})
	}
	return resp
}

func MetricSamplesToResponse(samples []service.Sample) []dto.MetricSampleResponse {
	out := make([]dto.MetricSampleResponse, 0, len(samples))
	for _, s := range samples {
		out = append(out, dto.MetricSampleResponse{Name: s.Name, Labels: s.Labels, Value: s.Value})
	}
	return out
}
