package dto

import "time"

type QualityIssueResponse struct {
	Check    string `json:"check"`
	RecordID string `json:"record_id"`
	Detail   string `json:"detail,omitempty"`
}

type QualityResponse struct {
	DatasetDigest       string                 `json:"dataset_digest"`
	CompletenessPercent int                    `json:"completeness_percent"`
	MissingAges         int                    `json:"missing_ages"`
	PeriodAfterVisit    int                    `json:"last_period_after_visit"`
	InvalidPressures    int                    `json:"invalid_blood_pressures"`
	TimelineFaults      int                    `json:"referral_timeline_faults"`
	OrphanRecords       int                    `json:"orphan_records"`
	Issues              []QualityIssueResponse `json:"issues"`
}

type MetricSampleResponse struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
	Value  float64           `json:"value"`
}

type DiagnosticsResponse struct {
	DatasetDigest string                 `json:"dataset_digest"`
	LoadedAt      time.Time              `json:"loaded_at"`
	Metrics       []MetricSampleResponse `json:"metrics"`
}
