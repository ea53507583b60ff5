package dto

import (
	"time"

	"github.com/google/uuid"
)

type AlertRequest struct {
	PatientID string `json:"patient_id" validate:"required,max=64"`
}

type AlertResponse struct {
	DispatchID  uuid.UUID `json:"dispatch_id"`
	PatientID   string    `json:"patient_id"`
	ActorID     string    `json:"actor_id"`
	ActorRole   string    `json:"actor_role"`
	StructureID string    `json:"structure_id"`
	RiskScore   int       `json:"risk_score"`
	CreatedAt   time.Time `json:"created_at"`
}
