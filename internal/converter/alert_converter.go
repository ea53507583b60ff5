package converter

import (
	"tekhe-dashboard/internal/delivery/dto"
	"tekhe-dashboard/internal/domain/entity"
)

// AlertDispatchToResponse converts an AlertDispatch entity to AlertResponse DTO
func AlertDispatchToResponse(d *entity.AlertDispatch) *dto.AlertResponse {
	if d == nil {
		return nil
	}
	return &dto.AlertResponse{
		DispatchID:  d.ID,
		PatientID:   d.PatientID,
		ActorID:     d.ActorID,
		ActorRole:   string(d.ActorRole),
		StructureID: d.StructureID,
		RiskScore:   d.RiskScore,
		CreatedAt:   d.CreatedAt,
	}
}
