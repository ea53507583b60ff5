package repository

import (
	"context"

	"tekhe-dashboard/internal/domain/entity"
)

type PatientRepository interface {
	FindAll(ctx context.Context) ([]entity.Patient, error)
	FindByID(ctx context.Context, id string) (*entity.Patient, error)
}
