package service

import (
	"time"

	"tekhe-dashboard/internal/domain/entity"
)

// ReferralTimeline is the read-time projection of one SONU referral
type ReferralTimeline struct {
	Referral       entity.Referral
	State          entity.ReferralState
	DelayMinutes   *int // alert to counter-referral; nil when unknown
	ElapsedMinutes *int // time since alert for unresolved referrals
	IntegrityFault bool // timestamps out of order
}

// ReferralTimelineService derives state and delays from referral timestamps.
// Nothing is stored: each call recomputes from the facts.
type ReferralTimelineService interface {
	DeriveReferralState(referral *entity.Referral) ReferralTimeline
	DeriveAll(referrals []entity.Referral) []ReferralTimeline
}

type referralTimelineService struct {
	diagnostics Diagnostics
	now         func() time.Time
}

func NewReferralTimelineService(diagnostics Diagnostics, now func() time.Time) ReferralTimelineService {
	return &referralTimelineService{
		diagnostics: diagnostics,
		now:         now,
	}
}

func (s *referralTimelineService) DeriveReferralState(referral *entity.Referral) ReferralTimeline {
	tl := ReferralTimeline{
		Referral:       *referral,
		State:          referral.State(),
		DelayMinutes:   referral.Delay(),
		IntegrityFault: !referral.Consistent(),
	}

	if tl.IntegrityFault && s.diagnostics != nil {
		s.diagnostics.TimelineInconsistent(referral.ID)
	}

	if tl.State != entity.ReferralResolved && !referral.Timestamps.Alert.IsZero() {
		if elapsed := s.now().Sub(referral.Timestamps.Alert); elapsed >= 0 {
			minutes := int(elapsed / time.Minute)
			tl.ElapsedMinutes = &minutes
		}
	}
	return tl
}

func (s *referralTimelineService) DeriveAll(referrals []entity.Referral) []ReferralTimeline {
	timelines := make([]ReferralTimeline, len(referrals))
	for i := range referrals {
		timelines[i] = s.DeriveReferralState(&referrals[i])
	}
	return timelines
}
