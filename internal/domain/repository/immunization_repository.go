package repository

import (
	"context"

	"tekhe-dashboard/internal/domain/entity"
)

type ImmunizationRepository interface {
	FindAll(ctx context.Context) ([]entity.Immunization, error)
}
