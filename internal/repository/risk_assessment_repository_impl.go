package repository

import (
	"context"
	"slices"

	"tekhe-dashboard/internal/domain/entity"
	domainRepo "tekhe-dashboard/internal/domain/repository"
	"tekhe-dashboard/internal/infrastructure/dataset"
)

type riskAssessmentRepository struct {
	snapshot  *dataset.Snapshot
	byPatient map[string]int
}

func NewRiskAssessmentRepository(snapshot *dataset.Snapshot) domainRepo.RiskAssessmentRepository {
	byPatient := make(map[string]int, len(snapshot.RiskAssessments))
	for i, r := range snapshot.RiskAssessments {
		byPatient[r.PatientID] = i
	}
	return &riskAssessmentRepository{snapshot: snapshot, byPatient: byPatient}
}

func (r *riskAssessmentRepository) FindAll(ctx context.Context) ([]entity.RiskAssessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(r.snapshot.RiskAssessments), nil
}

func (r *riskAssessmentRepository) FindByPatientID(ctx context.Context, patientID string) (*entity.RiskAssessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := r.byPatient[patientID]
	if !ok {
		return nil, nil
	}
	risk := r.snapshot.RiskAssessments[i]
	return &risk, nil
}
