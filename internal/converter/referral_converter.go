package converter

import (
	"tekhe-dashboard/internal/delivery/dto"
	"tekhe-dashboard/internal/service"
)

// ReferralTimelineToResponse converts a derived timeline to ReferralResponse DTO
func ReferralTimelineToResponse(tl *service.ReferralTimeline) dto.ReferralResponse {
	r := tl.Referral
	return dto.ReferralResponse{
		ID:                     r.ID,
		PatientID:              r.PatientID,
		AlertType:              r.AlertType,
		State:                  string(tl.State),
		RecordedStatus:         r.RecordedStatus,
		AlertAt:                r.Timestamps.Alert,
		TransportAt:            r.Timestamps.Transport,
		AdmissionAt:            r.Timestamps.Admission,
		CounterReferralAt:      r.Timestamps.CounterReferral,
		OriginStructureID:      r.OriginStructureID,
		DestinationStructureID: r.DestinationStructureID,
		DelayMinutes:           tl.DelayMinutes,
		ElapsedMinutes:         tl.ElapsedMinutes,
		IntegrityFault:         tl.IntegrityFault,
	}
}

func ReferralTimelinesToResponse(timelines []service.ReferralTimeline) []dto.ReferralResponse {
	out := make([]dto.ReferralResponse, 0, len(timelines))
	for i := range timelines {
		out = append(out, ReferralTimelineToResponse(&timelines[i]))
	}
	return out
}
