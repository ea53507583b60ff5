package dto

import "time"

type RiskCountsResponse struct {
	Red    int `json:"red"`
	Orange int `json:"orange"`
	Green  int `json:"green"`
	Total  int `json:"total"`
}

type CoverageResponse struct {
	Enrolled int `json:"enrolled"`
	Active   int `json:"active"`
	Pending  int `json:"pending"`
	ToRenew  int `json:"to_renew"`
}

type ReferralKpiResponse struct {
	AvgDelayMinutes *float64 `json:"avg_delay_minutes"`
	WithDelay       int      `json:"with_delay"`
	TimelineFaults  int      `json:"timeline_faults"`
}

type StructureSummaryResponse struct {
	StructureID   string `json:"structure_id"`
	StructureName string `json:"structure_name,omitempty"`
	DistrictID    string `json:"district_id,omitempty"`
	Patients      int    `json:"patients"`
	Cpn1Done      int    `json:"cpn1_done"`
	Cpn1Target    int    `json:"cpn1_target"`
	Cpn1Percent   int    `json:"cpn1_percent"`
	RedRisks      int    `json:"red_risks"`
}

type AgeBandResponse struct {
	Band  string `json:"band"`
	Count int    `json:"count"`
}

type MonthlyCpnResponse struct {
	Month string `json:"month"`
	Cpn1  int    `json:"cpn1"`
	Cpn2  int    `json:"cpn2"`
	Cpn3  int    `json:"cpn3"`
	Cpn4  int    `json:"cpn4"`
}

type WatchListEntryResponse struct {
	PatientID   string   `json:"patient_id"`
	FullName    string   `json:"full_name"`
	Phone       string   `json:"phone,omitempty"`
	StructureID string   `json:"structure_id"`
	Score       int      `json:"score"`
	Factors     []string `json:"factors,omitempty"`
	Prediction  *string  `json:"prediction,omitempty"`
}

// KpiResponse is the dashboard indicator set
type KpiResponse struct {
	DatasetDigest string    `json:"dataset_digest"`
	GeneratedAt   time.Time `json:"generated_at"`
	Anonymized    bool      `json:"anonymized"`

	TotalPatients int `json:"total_patients"`
	Cpn1Done      int `json:"cpn1_done"`
	Cpn1Target    int `json:"cpn1_target"`
	Cpn1Percent   int `json:"cpn1_percent"`
	Cpn4Done      int `json:"cpn4_done"`
	Cpn4Target    int `json:"cpn4_target"`
	Cpn4Percent   int `json:"cpn4_percent"`
	CponPercent   int `json:"cpon_percent"`

	Risks     RiskCountsResponse  `json:"risks"`
	Referrals ReferralKpiResponse `json:"referrals"`
	Coverage  CoverageResponse    `json:"coverage"`

	PevCompletePercent int `json:"pev_complete_percent"`
	PevLate            int `json:"pev_late"`

	Structures []StructureSummaryResponse `json:"structures"`
	AgeBands   []AgeBandResponse          `json:"age_bands"`
	Monthly    []MonthlyCpnResponse       `json:"monthly_cpn"`
	WatchList  []WatchListEntryResponse   `json:"red_risk_watch_list,omitempty"`
}
