package repository

import (
	"context"

	"tekhe-dashboard/internal/domain/entity"
)

type VisitRepository interface {
	FindAll(ctx context.Context) ([]entity.Visit, error)
}
