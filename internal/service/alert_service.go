package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tekhe-dashboard/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAlertRoleNotAllowed = errors.New("role is not allowed to raise SONU alerts")
	ErrPatientOutOfScope   = errors.New("patient is not in actor scope")
	ErrNoRiskAssessment    = errors.New("patient has no current risk assessment")
	ErrRiskNotRed          = errors.New("risk level is not red")
)

// AlertNotifier delivers a dispatched alert outside the dashboard
type AlertNotifier interface {
	Notify(ctx context.Context, dispatch *entity.AlertDispatch) error
}

type AlertService interface {
	Escalate(ctx context.Context, actor entity.Actor, patient *entity.Patient, risk *entity.RiskAssessment) (*entity.AlertDispatch, error)
}

type alertService struct {
	log         *logrus.Logger
	scope       AccessScopeService
	notifier    AlertNotifier
	diagnostics Diagnostics
	now         func() time.Time
}

func NewAlertService(
	log *logrus.Logger,
	scope AccessScopeService,
	notifier AlertNotifier,
	diagnostics Diagnostics,
	now func() time.Time,
) AlertService {
	return &alertService{
		log:         log,
		scope:       scope,
		notifier:    notifier,
		diagnostics: diagnostics,
		now:         now,
	}
}

// Escalate raises a SONU alert for a red-risk patient.
//
// Preconditions, checked in order:
// 1. Actor is not in the partner tier
// 2. Patient is visible to the actor
// 3. Patient has a current risk assessment
// 4. That assessment is red
//
// A failed precondition returns its sentinel error and notifies nobody.
func (s *alertService) Escalate(ctx context.Context, actor entity.Actor, patient *entity.Patient, risk *entity.RiskAssessment) (*entity.AlertDispatch, error) {
	if err := s.precondition(actor, patient, risk); err != nil {
		patientID := ""
		if patient != nil {
			patientID = patient.ID
		}
		if s.diagnostics != nil {
			s.diagnostics.AlertRejected(patientID, err)
		}
		return nil, err
	}

	dispatch := &entity.AlertDispatch{
		ID:          uuid.New(),
		PatientID:   patient.ID,
		ActorID:     actor.ID,
		ActorRole:   actor.Role,
		StructureID: patient.StructureID,
		RiskScore:   risk.Score,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.notifier.Notify(ctx, dispatch); err != nil {
		s.log.Warnf("Failed to notify SONU alert for patient %s: %+v", patient.ID, err)
		return nil, fmt.Errorf("notify alert: %w", err)
	}

	if s.diagnostics != nil {
		s.diagnostics.AlertDispatched(dispatch)
	}
	return dispatch, nil
}

func (s *alertService) precondition(actor entity.Actor, patient *entity.Patient, risk *entity.RiskAssessment) error {
	if !actor.Role.Valid() || actor.Role.IsPartner() {
		return ErrAlertRoleNotAllowed
	}
	if !s.scope.CanSee(actor, patient) {
		return ErrPatientOutOfScope
	}
	if risk == nil || risk.PatientID != patient.ID {
		return ErrNoRiskAssessment
	}
	if !risk.IsRed() {
		return ErrRiskNotRed
	}
	return nil
}

type logAlertNotifier struct {
	log *logrus.Logger
}

// NewLogAlertNotifier writes dispatched alerts to the log
func NewLogAlertNotifier(log *logrus.Logger) AlertNotifier {
	return &logAlertNotifier{log: log}
}

func (n *logAlertNotifier) Notify(ctx context.Context, dispatch *entity.AlertDispatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.log.WithFields(logrus.Fields{
		"dispatch_id": dispatch.ID.String(),
		"patient_id":  dispatch.PatientID,
		"actor_id":    dispatch.ActorID,
		"actor_role":  dispatch.ActorRole,
		"structure":   dispatch.StructureID,
		"risk_score":  dispatch.RiskScore,
	}).Info("SONU alert sent")
	return nil
}
