package service

import (
	"time"

	"tekhe-dashboard/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// AccessScopeService decides which records an actor may see.
//
// Every method is a pure function of its arguments: the same actor and
// collections always produce the same result, and nothing is cached between
// calls. Unknown roles and missing scopes yield empty results, never errors.
type AccessScopeService interface {
	ScopePatients(actor entity.Actor, patients []entity.Patient, filter entity.PatientFilter) []entity.Patient
	ScopeVisits(actor entity.Actor, patients []entity.Patient, visits []entity.Visit) []entity.Visit
	ScopeRiskAssessments(actor entity.Actor, patients []entity.Patient, risks []entity.RiskAssessment) []entity.RiskAssessment
	ScopeReferrals(actor entity.Actor, patients []entity.Patient, referrals []entity.Referral) []entity.Referral
	ScopeImmunizations(actor entity.Actor, patients []entity.Patient, immunizations []entity.Immunization) []entity.Immunization
	CanSee(actor entity.Actor, patient *entity.Patient) bool
}

type accessScopeService struct {
	log         *logrus.Logger
	structures  entity.StructureDirectory
	diagnostics Diagnostics
	now         func() time.Time
}

func NewAccessScopeService(
	log *logrus.Logger,
	structures entity.StructureDirectory,
	diagnostics Diagnostics,
	now func() time.Time,
) AccessScopeService {
	return &accessScopeService{
		log:         log,
		structures:  structures,
		diagnostics: diagnostics,
		now:         now,
	}
}

// ScopePatients returns the patients visible to actor, then narrows them by
// the structure refinement (district_responsible only) and the enrollment
// window. Patients without an enrollment date always pass the window.
func (s *accessScopeService) ScopePatients(actor entity.Actor, patients []entity.Patient, filter entity.PatientFilter) []entity.Patient {
	visible := s.visibility(actor, filter)
	if visible == nil {
		s.log.Debugf("No scope for actor id=%q role=%q", actor.ID, actor.Role)
		return []entity.Patient{}
	}
	inWindow := s.enrollmentWindow(filter.Enrollment)

	scoped := make([]entity.Patient, 0, len(patients))
	for i := range patients {
		if visible(&patients[i]) && inWindow(&patients[i]) {
			scoped = append(scoped, patients[i])
		}
	}
	return scoped
}

func (s *accessScopeService) CanSee(actor entity.Actor, patient *entity.Patient) bool {
	if patient == nil {
		return false
	}
	visible := s.visibility(actor, entity.PatientFilter{})
	return visible != nil && visible(patient)
}

func (s *accessScopeService) ScopeVisits(actor entity.Actor, patients []entity.Patient, visits []entity.Visit) []entity.Visit {
	return scopeRecords(s, actor, patients, visits, KindVisit,
		func(v *entity.Visit) (string, string) { return v.PatientID, v.ID })
}

func (s *accessScopeService) ScopeRiskAssessments(actor entity.Actor, patients []entity.Patient, risks []entity.RiskAssessment) []entity.RiskAssessment {
	return scopeRecords(s, actor, patients, risks, KindRiskAssessment,
		func(r *entity.RiskAssessment) (string, string) { return r.PatientID, r.PatientID })
}

func (s *accessScopeService) ScopeReferrals(actor entity.Actor, patients []entity.Patient, referrals []entity.Referral) []entity.Referral {
	return scopeRecords(s, actor, patients, referrals, KindReferral,
		func(r *entity.Referral) (string, string) { return r.PatientID, r.ID })
}

func (s *accessScopeService) ScopeImmunizations(actor entity.Actor, patients []entity.Patient, immunizations []entity.Immunization) []entity.Immunization {
	return scopeRecords(s, actor, patients, immunizations, KindImmunization,
		func(i *entity.Immunization) (string, string) { return i.PatientID, i.ID })
}

// visibility returns the role predicate for actor, or nil when the actor
// has no usable scope.
func (s *accessScopeService) visibility(actor entity.Actor, filter entity.PatientFilter) func(*entity.Patient) bool {
	switch actor.Role {
	case entity.RoleAgent:
		if actor.ID == "" {
			return nil
		}
		return func(p *entity.Patient) bool { return p.AgentID == actor.ID }

	case entity.RoleFacilityManager:
		if actor.Scope == "" {
			return nil
		}
		return func(p *entity.Patient) bool { return p.StructureID == actor.Scope }

	case entity.RoleDistrictManager:
		if actor.Scope == "" {
			return nil
		}
		return func(p *entity.Patient) bool { return s.structures.InDistrict(p.StructureID, actor.Scope) }

	case entity.RoleDistrictResponsible:
		if actor.Scope == "" {
			return nil
		}
		structureID, refine := filter.StructureRefinement()
		return func(p *entity.Patient) bool {
			if !s.structures.InDistrict(p.StructureID, actor.Scope) {
				return false
			}
			return !refine || p.StructureID == structureID
		}

	case entity.RoleNGOPartner, entity.RoleRegionalPartner, entity.RoleGovernmentPartner:
		return func(*entity.Patient) bool { return true }
	}
	return nil
}

// enrollmentWindow builds the inclusive [from, to] predicate. An open upper
// bound defaults to now when a lower bound is given.
func (s *accessScopeService) enrollmentWindow(r entity.DateRange) func(*entity.Patient) bool {
	if r.IsZero() {
		return func(*entity.Patient) bool { return true }
	}
	from, to := r.From, r.To
	if from != nil && to == nil {
		now := s.now()
		to = &now
	}
	return func(p *entity.Patient) bool {
		d := p.EnrollmentDate
		if d == nil {
			return true
		}
		if from != nil && d.Before(*from) {
			return false
		}
		return to == nil || !d.After(*to)
	}
}

// scopeRecords keeps records whose patient is visible to actor. Records
// whose patient is not in patients at all are orphans: dropped and reported.
// Runs in O(P + N) through id sets.
func scopeRecords[T any](
	s *accessScopeService,
	actor entity.Actor,
	patients []entity.Patient,
	records []T,
	kind string,
	ids func(*T) (patientID, recordID string),
) []T {
	allowed := patientIDSet(s.ScopePatients(actor, patients, entity.PatientFilter{}))
	known := patientIDSet(patients)

	scoped := make([]T, 0, len(records))
	var orphans []string
	for i := range records {
		patientID, recordID := ids(&records[i])
		if _, ok := known[patientID]; !ok {
			orphans = append(orphans, recordID)
			continue
		}
		if _, ok := allowed[patientID]; ok {
			scoped = append(scoped, records[i])
		}
	}

	if len(orphans) > 0 && s.diagnostics != nil {
		s.diagnostics.OrphanReferences(kind, orphans)
	}
	return scoped
}

func patientIDSet(patients []entity.Patient) map[string]struct{} {
	set := make(map[string]struct{}, len(patients))
	for i := range patients {
		set[patients[i].ID] = struct{}{}
	}
	return set
}

// RestrictToPatients keeps the records that belong to one of patients.
// Used to narrow role-scoped records down to a windowed patient subset.
func RestrictToPatients[T any](patients []entity.Patient, records []T, patientID func(*T) string) []T {
	set := patientIDSet(patients)
	out := make([]T, 0, len(records))
	for i := range records {
		if _, ok := set[patientID(&records[i])]; ok {
			out = append(out, records[i])
		}
	}
	return out
}
