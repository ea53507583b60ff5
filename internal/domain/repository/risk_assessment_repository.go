package repository

import (
	"context"

	"tekhe-dashboard/internal/domain/entity"
)

type RiskAssessmentRepository interface {
	FindAll(ctx context.Context) ([]entity.RiskAssessment, error)
	FindByPatientID(ctx context.Context, patientID string) (*entity.RiskAssessment, error)
}
