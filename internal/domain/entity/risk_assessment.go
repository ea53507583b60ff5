package entity

// RiskLevel is the triage color produced by the risk model
type RiskLevel string

const (
	RiskRed    RiskLevel = "red"
	RiskOrange RiskLevel = "orange"
	RiskGreen  RiskLevel = "green"
)

// RiskAssessment is the current AI risk evaluation of a patient.
// A patient has at most one current assessment.
type RiskAssessment struct {
	PatientID  string    `json:"patient_id"`
	Level      RiskLevel `json:"level"`
	Score      int       `json:"score"`
	Factors    []string  `json:"factors,omitempty"`
	Prediction *string   `json:"prediction,omitempty"`
}

// IsRed checks if the assessment requires immediate attention
func (r *RiskAssessment) IsRed() bool {
	return r.Level == RiskRed
}
