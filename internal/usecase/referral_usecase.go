package usecase

import (
	"context"

	"tekhe-dashboard/internal/converter"
	"tekhe-dashboard/internal/delivery/dto"
	"tekhe-dashboard/internal/domain/entity"
	"tekhe-dashboard/internal/service"

	"github.com/sirupsen/logrus"
)

type ReferralUsecase interface {
	List(ctx context.Context, actor entity.Actor, req *dto.FilterRequest) (*dto.ReferralListResponse, error)
}

type referralUsecase struct {
	log       *logrus.Logger
	repos     Repositories
	scope     service.AccessScopeService
	timelines service.ReferralTimelineService
}

func NewReferralUsecase(
	log *logrus.Logger,
	repos Repositories,
	scope service.AccessScopeService,
	timelines service.ReferralTimelineService,
) ReferralUsecase {
	return &referralUsecase{
		log:       log,
		repos:     repos,
		scope:     scope,
		timelines: timelines,
	}
}

// List derives the SONU timeline of every scoped referral
func (u *referralUsecase) List(ctx context.Context, actor entity.Actor, req *dto.FilterRequest) (*dto.ReferralListResponse, error) {
	filter, err := converter.FilterRequestToEntity(req)
	if err != nil {
		return nil, err
	}

	records, err := loadScoped(ctx, u.repos, u.scope, actor, filter)
	if err != nil {
		u.log.Warnf("Failed to load scoped records: %+v", err)
		return nil, err
	}

	timelines := u.timelines.DeriveAll(records.referrals)
	byState := map[string]int{
		string(entity.ReferralAlerted):  0,
		string(entity.ReferralEnRoute):  0,
		string(entity.ReferralAdmitted): 0,
		string(entity.ReferralResolved): 0,
	}
	for i := range timelines {
		byState[string(timelines[i].State)]++
	}

	return &dto.ReferralListResponse{
		Total:     len(timelines),
		ByState:   byState,
		Referrals: converter.ReferralTimelinesToResponse(timelines),
	}, nil
}
