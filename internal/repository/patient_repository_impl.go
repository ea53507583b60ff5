package repository

import (
	"context"
	"slices"

	"tekhe-dashboard/internal/domain/entity"
	domainRepo "tekhe-dashboard/internal/domain/repository"
	"tekhe-dashboard/internal/infrastructure/dataset"
)

type patientRepository struct {
	snapshot *dataset.Snapshot
	byID     map[string]int
}

func NewPatientRepository(snapshot *dataset.Snapshot) domainRepo.PatientRepository {
	byID := make(map[string]int, len(snapshot.Patients))
	for i, p := range snapshot.Patients {
		byID[p.ID] = i
	}
	return &patientRepository{snapshot: snapshot, byID: byID}
}

func (r *patientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(r.snapshot.Patients), nil
}

func (r *patientRepository) FindByID(ctx context.Context, id string) (*entity.Patient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	patient := r.snapshot.Patients[i]
	return &patient, nil
}
