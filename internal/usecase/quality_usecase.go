package usecase

import (
	"context"

	"tekhe-dashboard/internal/converter"
	"tekhe-dashboard/internal/delivery/dto"
	"tekhe-dashboard/internal/domain/entity"
	"tekhe-dashboard/internal/service"

	"github.com/sirupsen/logrus"
)

type QualityUsecase interface {
	Report(ctx context.Context, actor entity.Actor, req *dto.FilterRequest) (*dto.QualityResponse, error)
}

type qualityUsecase struct {
	log     *logrus.Logger
	repos   Repositories
	scope   service.AccessScopeService
	quality service.DataQualityService
	digest  string
}

func NewQualityUsecase(
	log *logrus.Logger,
	repos Repositories,
	scope service.AccessScopeService,
	quality service.DataQualityService,
	digest string,
) QualityUsecase {
	return &qualityUsecase{
		log:     log,
		repos:   repos,
		scope:   scope,
		quality: quality,
		digest:  digest,
	}
}

// Report assesses the records the actor may see. The orphan count covers
// the whole dataset since orphans belong to no scope.
func (u *qualityUsecase) Report(ctx context.Context, actor entity.Actor, req *dto.FilterRequest) (*dto.QualityResponse, error) {
	filter, err := converter.FilterRequestToEntity(req)
	if err != nil {
		return nil, err
	}

	records, err := loadScoped(ctx, u.repos, u.scope, actor, filter)
	if err != nil {
		u.log.Warnf("Failed to load scoped records: %+v", err)
		return nil, err
	}
	orphans, err := u.countOrphans(ctx, records.all)
	if err != nil {
		u.log.Warnf("Failed to count orphan records: %+v", err)
		return nil, err
	}

	report := u.quality.Assess(service.QualityInput{
		Patients:      records.patients,
		Visits:        records.visits,
		Referrals:     records.referrals,
		OrphanRecords: orphans,
	})
	return converter.QualityReportToResponse(report, u.digest), nil
}

func (u *qualityUsecase) countOrphans(ctx context.Context, patients []entity.Patient) (int, error) {
	known := make(map[string]struct{}, len(patients))
	for i := range patients {
		known[patients[i].ID] = struct{}{}
	}
	orphan := func(patientID string) int {
		if _, ok := known[patientID]; ok {
			return 0
		}
		return 1
	}

	visits, err := u.repos.Visits.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	risks, err := u.repos.RiskAssessments.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	referrals, err := u.repos.Referrals.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	immunizations, err := u.repos.Immunizations.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	n := 0
	for i := range visits {
		n += orphan(visits[i].PatientID)
	}
	for i := range risks {
		n += orphan(risks[i].PatientID)
	}
	for i := range referrals {
		n += orphan(referrals[i].PatientID)
	}
	for i := range immunizations {
		n += orphan(immunizations[i].PatientID)
	}
	return n, nil
}
