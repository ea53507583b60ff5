package repository

import (
	"context"
	"slices"

	"tekhe-dashboard/internal/domain/entity"
	domainRepo "tekhe-dashboard/internal/domain/repository"
	"tekhe-dashboard/internal/infrastructure/dataset"
)

type structureRepository struct {
	snapshot *dataset.Snapshot
}

func NewStructureRepository(snapshot *dataset.Snapshot) domainRepo.StructureRepository {
	return &structureRepository{snapshot: snapshot}
}

func (r *structureRepository) FindAll(ctx context.Context) ([]entity.Structure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(r.snapshot.Structures), nil
}
