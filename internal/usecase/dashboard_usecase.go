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

type DashboardUsecase interface {
	GetKpis(ctx context.Context, actor entity.Actor, req *dto.FilterRequest) (*dto.KpiResponse, error)
}

type dashboardUsecase struct {
	log    *logrus.Logger
	repos  Repositories
	scope  service.AccessScopeService
	kpis   service.KpiService
	digest string
	now    func() time.Time
}

func NewDashboardUsecase(
	log *logrus.Logger,
	repos Repositories,
	scope service.AccessScopeService,
	kpis service.KpiService,
	digest string,
	now func() time.Time,
) DashboardUsecase {
	return &dashboardUsecase{
		log:    log,
		repos:  repos,
		scope:  scope,
		kpis:   kpis,
		digest: digest,
		now:    now,
	}
}

// GetKpis computes the indicator set for what actor may see.
//
// Partners get the anonymized variant: aggregates only, no watch list.
func (u *dashboardUsecase) GetKpis(ctx context.Context, actor entity.Actor, req *dto.FilterRequest) (*dto.KpiResponse, error) {
	filter, err := converter.FilterRequestToEntity(req)
	if err != nil {
		return nil, err
	}

	records, err := loadScoped(ctx, u.repos, u.scope, actor, filter)
	if err != nil {
		u.log.Warnf("Failed to load scoped records: %+v", err)
		return nil, err
	}

	kpis := u.kpis.ComputeKpis(service.KpiInput{
		Patients:        records.patients,
		Visits:          records.visits,
		RiskAssessments: records.riskAssessments,
		Referrals:       records.referrals,
		Immunizations:   records.immunizations,
	}, actor.Anonymized())

	u.log.Debugf("KPIs computed: actor=%s role=%s patients=%d", actor.ID, actor.Role, kpis.TotalPatients)
	return converter.KpiSetToResponse(kpis, u.digest, u.now().UTC()), nil
}
