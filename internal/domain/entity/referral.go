package entity

import "time"

// ReferralState is the derived position of a SONU referral on its timeline
type ReferralState string

const (
	ReferralAlerted  ReferralState = "alerted"
	ReferralEnRoute  ReferralState = "en_route"
	ReferralAdmitted ReferralState = "admitted"
	ReferralResolved ReferralState = "resolved"
)

// ReferralTimestamps are the append-only facts of a referral.
// Alert is always set; the others are nil until the step happens.
type ReferralTimestamps struct {
	Alert           time.Time  `json:"alert"`
	Transport       *time.Time `json:"transport,omitempty"`
	Admission       *time.Time `json:"admission,omitempty"`
	CounterReferral *time.Time `json:"counter_referral,omitempty"`
}

// Referral represents an emergency obstetric/newborn transfer (SONU).
// RecordedStatus is kept as loaded but never drives the state.
type Referral struct {
	ID                     string             `json:"id"`
	PatientID              string             `json:"patient_id"`
	AlertType              string             `json:"alert_type"`
	Timestamps             ReferralTimestamps `json:"timestamps"`
	OriginStructureID      string             `json:"origin_structure_id"`
	DestinationStructureID string             `json:"destination_structure_id"`
	RecordedStatus         string             `json:"recorded_status,omitempty"`
	DelayMinutes           *int               `json:"delay_minutes,omitempty"`
}

// State returns the state of the highest timestamp present
func (r *Referral) State() ReferralState {
	ts := r.Timestamps
	switch {
	case ts.CounterReferral != nil:
		return ReferralResolved
	case ts.Admission != nil:
		return ReferralAdmitted
	case ts.Transport != nil:
		return ReferralEnRoute
	default:
		return ReferralAlerted
	}
}

// IsResolved checks if the referral reached counter-referral
func (r *Referral) IsResolved() bool {
	return r.State() == ReferralResolved
}

// Consistent reports whether the present timestamps are non-decreasing in
// the order alert, transport, admission, counter-referral.
func (r *Referral) Consistent() bool {
	prev := r.Timestamps.Alert
	for _, ts := range []*time.Time{r.Timestamps.Transport, r.Timestamps.Admission, r.Timestamps.CounterReferral} {
		if ts == nil {
			continue
		}
		if ts.Before(prev) {
			return false
		}
		prev = *ts
	}
	return true
}

// Delay returns the alert-to-resolution delay in minutes. A stored value
// wins; otherwise it is computed from a consistent resolved timeline.
// nil means unknown, which is not the same as zero.
func (r *Referral) Delay() *int {
	if r.DelayMinutes != nil {
		d := *r.DelayMinutes
		return &d
	}
	if !r.IsResolved() || r.Timestamps.Alert.IsZero() || !r.Consistent() {
		return nil
	}
	d := int(r.Timestamps.CounterReferral.Sub(r.Timestamps.Alert) / time.Minute)
	return &d
}
