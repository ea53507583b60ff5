package repository

import (
	"context"
	"slices"

	"tekhe-dashboard/internal/domain/entity"
	domainRepo "tekhe-dashboard/internal/domain/repository"
	"tekhe-dashboard/internal/infrastructure/dataset"
)

type immunizationRepository struct {
	snapshot *dataset.Snapshot
}

func NewImmunizationRepository(snapshot *dataset.Snapshot) domainRepo.ImmunizationRepository {
	return &immunizationRepository{snapshot: snapshot}
}

func (r *immunizationRepository) FindAll(ctx context.Context) ([]entity.Immunization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(r.snapshot.Immunizations), nil
}
