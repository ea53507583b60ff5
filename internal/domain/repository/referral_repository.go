package repository

import (
	"context"

	"tekhe-dashboard/internal/domain/entity"
)

type ReferralRepository interface {
	FindAll(ctx context.Context) ([]entity.Referral, error)
}
