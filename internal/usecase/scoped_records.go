package usecase

import (
	"context"
	"fmt"

	"tekhe-dashboard/internal/domain/entity"
	"tekhe-dashboard/internal/domain/repository"
	"tekhe-dashboard/internal/service"
)

// Repositories bundles the read-only collections of one dataset snapshot
type Repositories struct {
	Patients        repository.PatientRepository
	Visits          repository.VisitRepository
	RiskAssessments repository.RiskAssessmentRepository
	Referrals       repository.ReferralRepository
	Immunizations   repository.ImmunizationRepository
}

// scopedRecords holds every collection narrowed to one actor and filter
type scopedRecords struct {
	all             []entity.Patient
	patients        []entity.Patient
	visits          []entity.Visit
	riskAssessments []entity.RiskAssessment
	referrals       []entity.Referral
	immunizations   []entity.Immunization
}

// loadScoped applies role scoping to every collection against the full
// patient list, so orphans are detected, then narrows the records to the
// patients left after the structure refinement and enrollment window.
func loadScoped(ctx context.Context, repos Repositories, scope service.AccessScopeService, actor entity.Actor, filter entity.PatientFilter) (*scopedRecords, error) {
	all, err := repos.Patients.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find patients: %w", err)
	}
	visits, err := repos.Visits.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find visits: %w", err)
	}
	risks, err := repos.RiskAssessments.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find risk assessments: %w", err)
	}
	referrals, err := repos.Referrals.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find referrals: %w", err)
	}
	immunizations, err := repos.Immunizations.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find immunizations: %w", err)
	}

	patients := scope.ScopePatients(actor, all, filter)
	return &scopedRecords{
		all:      all,
		patients: patients,
		visits: service.RestrictToPatients(patients, scope.ScopeVisits(actor, all, visits),
			func(v *entity.Visit) string { return v.PatientID }),
		riskAssessments: service.RestrictToPatients(patients, scope.ScopeRiskAssessments(actor, all, risks),
			func(r *entity.RiskAssessment) string { return r.PatientID }),
		referrals: service.RestrictToPatients(patients, scope.ScopeReferrals(actor, all, referrals),
			func(r *entity.Referral) string { return r.PatientID }),
		immunizations: service.RestrictToPatients(patients, scope.ScopeImmunizations(actor, all, immunizations),
			func(i *entity.Immunization) string { return i.PatientID }),
	}, nil
}

// risksByPatient indexes assessments by patient id
func risksByPatient(risks []entity.RiskAssessment) map[string]*entity.RiskAssessment {
	index := make(map[string]*entity.RiskAssessment, len(risks))
	for i := range risks {
		index[risks[i].PatientID] = &risks[i]
	}
	return index
}
