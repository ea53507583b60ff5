package repository

import (
	"context"

	"tekhe-dashboard/internal/domain/entity"
)

type StructureRepository interface {
	FindAll(ctx context.Context) ([]entity.Structure, error)
}
