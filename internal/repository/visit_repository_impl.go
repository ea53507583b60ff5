package repository

import (
	"context"
	"slices"

	"tekhe-dashboard/internal/domain/entity"
	domainRepo "tekhe-dashboard/internal/domain/repository"
	"tekhe-dashboard/internal/infrastructure/dataset"
)

type visitRepository struct {
	snapshot *dataset.Snapshot
}

func NewVisitRepository(snapshot *dataset.Snapshot) domainRepo.VisitRepository {
	return &visitRepository{snapshot: snapshot}
}

func (r *visitRepository) FindAll(ctx context.Context) ([]entity.Visit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(r.snapshot.Visits), nil
}
