package usecase

import (
	"context"
	"time"

	"tekhe-dashboard/internal/converter"
	"tekhe-dashboard/internal/delivery/dto"
	"tekhe-dashboard/internal/domain/entity"
	"tekhe-dashboard/internal/service"

	"github.com/sirupsen/logrus"
)

type DiagnosticsUsecase interface {
	Snapshot(ctx context.Context, actor entity.Actor) (*dto.DiagnosticsResponse, error)
}

type diagnosticsUsecase struct {
	log       *logrus.Logger
	repos     Repositories
	scope     service.AccessScopeService
	timelines service.ReferralTimelineService
	gatherer  service.SampleGatherer
	digest    string
	loadedAt  time.Time
}

func NewDiagnosticsUsecase(
	log *logrus.Logger,
	repos Repositories,
	scope service.AccessScopeService,
	timelines service.ReferralTimelineService,
	gatherer service.SampleGatherer,
	digest string,
	loadedAt time.Time,
) DiagnosticsUsecase {
	return &diagnosticsUsecase{
		log:       log,
		repos:     repos,
		scope:     scope,
		timelines: timelines,
		gatherer:  gatherer,
		digest:    digest,
		loadedAt:  loadedAt,
	}
}

// Snapshot runs one scoping pass for actor, derives every visible referral
// timeline, then reports the counters those passes produced.
func (u *diagnosticsUsecase) Snapshot(ctx context.Context, actor entity.Actor) (*dto.DiagnosticsResponse, error) {
	records, err := loadScoped(ctx, u.repos, u.scope, actor, entity.PatientFilter{})
	if err != nil {
		u.log.Warnf("Failed to load scoped records: %+v", err)
		return nil, err
	}
	// derived only so timeline faults reach the counters below
	u.timelines.DeriveAll(records.referrals)

	samples, err := u.gatherer.Samples()
	if err != nil {
		u.log.Warnf("Failed to gather metrics: %+v", err)
		return nil, err
	}
	return &dto.DiagnosticsResponse{
		DatasetDigest: u.digest,
		LoadedAt:      u.loadedAt,
		Metrics:       converter.MetricSamplesToResponse(samples),
	}, nil
}
