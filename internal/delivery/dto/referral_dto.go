package dto

import "time"

type ReferralResponse struct {
	ID                     string     `json:"id"`
	PatientID              string     `json:"patient_id"`
	AlertType              string     `json:"alert_type,omitempty"`
	State                  string     `json:"state"`
	RecordedStatus         string     `json:"recorded_status,omitempty"`
	AlertAt                time.Time  `json:"alert_at"`
	TransportAt            *time.Time `json:"transport_at,omitempty"`
	AdmissionAt            *time.Time `json:"admission_at,omitempty"`
	CounterReferralAt      *time.Time `json:"counter_referral_at,omitempty"`
	OriginStructureID      string     `json:"origin_structure_id,omitempty"`
	DestinationStructureID string     `json:"destination_structure_id,omitempty"`
	DelayMinutes           *int       `json:"delay_minutes"`
	ElapsedMinutes         *int       `json:"elapsed_minutes,omitempty"`
	IntegrityFault         bool       `json:"integrity_fault"`
}

type ReferralListResponse struct {
	Total     int                `json:"total"`
	ByState   map[string]int     `json:"by_state"`
	Referrals []ReferralResponse `json:"referrals"`
}
