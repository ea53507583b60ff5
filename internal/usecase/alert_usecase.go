package usecase

import (
	"context"

	"tekhe-dashboard/internal/converter"
	"tekhe-dashboard/internal/delivery/dto"
	"tekhe-dashboard/internal/domain/entity"
	"tekhe-dashboard/internal/domain/repository"
	"tekhe-dashboard/internal/service"

	"github.com/sirupsen/logrus"
)

type AlertUsecase interface {
	Escalate(ctx context.Context, actor entity.Actor, req *dto.AlertRequest) (*dto.AlertResponse, error)
}

type alertUsecase struct {
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	riskRepo    repository.RiskAssessmentRepository
	alerts      service.AlertService
}

func NewAlertUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	riskRepo repository.RiskAssessmentRepository,
	alerts service.AlertService,
) AlertUsecase {
	return &alertUsecase{
		log:         log,
		patientRepo: patientRepo,
		riskRepo:    riskRepo,
		alerts:      alerts,
	}
}

// Escalate raises a SONU alert for a patient. An unknown patient is rejected
// the same way as one outside the actor scope.
func (u *alertUsecase) Escalate(ctx context.Context, actor entity.Actor, req *dto.AlertRequest) (*dto.AlertResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}

	var risk *entity.RiskAssessment
	if patient != nil {
		risk, err = u.riskRepo.FindByPatientID(ctx, patient.ID)
		if err != nil {
			u.log.Warnf("Failed to find risk assessment: %+v", err)
			return nil, err
		}
	}

	dispatch, err := u.alerts.Escalate(ctx, actor, patient, risk)
	if err != nil {
		return nil, err
	}
	return converter.AlertDispatchToResponse(dispatch), nil
}
