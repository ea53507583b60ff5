package repository

import (
	"context"
	"slices"

	"tekhe-dashboard/internal/domain/entity"
	domainRepo "tekhe-dashboard/internal/domain/repository"
	"tekhe-dashboard/internal/infrastructure/dataset"
)

type referralRepository struct {
	snapshot *dataset.Snapshot
}

func NewReferralRepository(snapshot *dataset.Snapshot) domainRepo.ReferralRepository {
	return &referralRepository{snapshot: snapshot}
}

func (r *referralRepository) FindAll(ctx context.Context) ([]entity.Referral, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(r.snapshot.Referrals), nil
}
