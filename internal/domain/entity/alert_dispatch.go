package entity

import (
	"time"

	"github.com/google/uuid"
)

// AlertDispatch records a SONU alert raised for a red-risk patient.
// It is handed to a notifier and never read back by the dashboard.
type AlertDispatch struct {
	ID          uuid.UUID `json:"id"`
	PatientID   string    `json:"patient_id"`
	ActorID     string    `json:"actor_id"`
	ActorRole   Role      `json:"actor_role"`
	StructureID string    `json:"structure_id"`
	RiskScore   int       `json:"risk_score"`
	CreatedAt   time.Time `json:"created_at"`
}
