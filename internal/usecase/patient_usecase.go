package usecase

import (
	"context"
	"errors"
	"slices"

	"tekhe-dashboard/internal/converter"
	"tekhe-dashboard/internal/delivery/dto"
	"tekhe-dashboard/internal/domain/entity"
	"tekhe-dashboard/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrPatientNotFound  = errors.New("patient not found")
	ErrDetailNotAllowed = errors.New("patient detail is not available to partner roles")
)

type PatientUsecase interface {
	List(ctx context.Context, actor entity.Actor, req *dto.FilterRequest) (*dto.PatientListResponse, error)
	Detail(ctx context.Context, actor entity.Actor, patientID string) (*dto.PatientDetailResponse, error)
}

type patientUsecase struct {
	log        *logrus.Logger
	repos      Repositories
	structures entity.StructureDirectory
	scope      service.AccessScopeService
	timelines  service.ReferralTimelineService
	pseudonyms service.PseudonymService
}

func NewPatientUsecase(
	log *logrus.Logger,
	repos Repositories,
	structures entity.StructureDirectory,
	scope service.AccessScopeService,
	timelines service.ReferralTimelineService,
	pseudonyms service.PseudonymService,
) PatientUsecase {
	return &patientUsecase{
		log:        log,
		repos:      repos,
		structures: structures,
		scope:      scope,
		timelines:  timelines,
		pseudonyms: pseudonyms,
	}
}

// List returns the scoped patients. Partner roles only get pseudonymized
// rows.
func (u *patientUsecase) List(ctx context.Context, actor entity.Actor, req *dto.FilterRequest) (*dto.PatientListResponse, error) {
	filter, err := converter.FilterRequestToEntity(req)
	if err != nil {
		return nil, err
	}

	records, err := loadScoped(ctx, u.repos, u.scope, actor, filter)
	if err != nil {
		u.log.Warnf("Failed to load scoped records: %+v", err)
		return nil, err
	}
	risks := risksByPatient(records.riskAssessments)

	resp := &dto.PatientListResponse{
		Anonymized: actor.Anonymized(),
		Total:      len(records.patients),
	}
	for i := range records.patients {
		p := &records.patients[i]
		district, _ := u.structures.DistrictOf(p.StructureID)
		if resp.Anonymized {
			resp.Rows = append(resp.Rows, converter.PatientToAnonymizedResponse(p, u.pseudonyms.Pseudonym(p.ID), district, risks[p.ID]))
		} else {
			resp.Patients = append(resp.Patients, converter.PatientToResponse(p, district, risks[p.ID]))
		}
	}

	// rows are ordered by pseudonym so their order does not follow patient ids
	slices.SortFunc(resp.Rows, func(a, b dto.AnonymizedPatientResponse) int {
		return slices.Compare(a.Pseudonym[:], b.Pseudonym[:])
	})
	return resp, nil
}

// Detail returns one patient with the related visits, risk, immunizations
// and referral timelines. A patient outside the actor scope is reported as not
// found.
func (u *patientUsecase) Detail(ctx context.Context, actor entity.Actor, patientID string) (*dto.PatientDetailResponse, error) {
	if actor.Anonymized() {
		return nil, ErrDetailNotAllowed
	}

	patient, err := u.repos.Patients.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil || !u.scope.CanSee(actor, patient) {
		return nil, ErrPatientNotFound
	}

	records, err := loadScoped(ctx, u.repos, u.scope, actor, entity.PatientFilter{})
	if err != nil {
		u.log.Warnf("Failed to load scoped records: %+v", err)
		return nil, err
	}
	own := []entity.Patient{*patient}

	district, _ := u.structures.DistrictOf(patient.StructureID)
	risk := risksByPatient(records.riskAssessments)[patient.ID]

	resp := &dto.PatientDetailResponse{
		Patient:       converter.PatientToResponse(patient, district, risk),
		Risk:          converter.RiskAssessmentToResponse(risk),
		Visits:        []dto.VisitResponse{},
		Immunizations: []dto.ImmunizationResponse{},
	}
	visits := service.RestrictToPatients(own, records.visits, func(v *entity.Visit) string { return v.PatientID })
	for i := range visits {
		resp.Visits = append(resp.Visits, converter.VisitToResponse(&visits[i]))
	}
	doses := service.RestrictToPatients(own, records.immunizations, func(i *entity.Immunization) string { return i.PatientID })
	for i := range doses {
		resp.Immunizations = append(resp.Immunizations, converter.ImmunizationToResponse(&doses[i]))
	}
	referrals := service.RestrictToPatients(own, records.referrals, func(r *entity.Referral) string { return r.PatientID })
	resp.Referrals = converter.ReferralTimelinesToResponse(u.timelines.DeriveAll(referrals))
	return resp, nil
}
