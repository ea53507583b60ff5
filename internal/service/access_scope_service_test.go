package service

import (
	"testing"

	"tekhe-dashboard/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScope(diag Diagnostics) AccessScopeService {
	return NewAccessScopeService(quietLogger(), testStructures(), diag, clock)
}

func TestScopePatients_AgentSeesOwnPatientsOnly(t *testing.T) {
	s := newScope(nil)
	patients := []entity.Patient{
		{ID: "1", AgentID: "A1", StructureID: "S1"},
		{ID: "2", AgentID: "A2", StructureID: "S2"},
	}

	got := s.ScopePatients(entity.Actor{ID: "A1", Role: entity.RoleAgent}, patients, entity.PatientFilter{})

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestScopePatients_RoleClosure(t *testing.T) {
	s := newScope(nil)
	patients := testPatients(t)

	tests := []struct {
		name  string
		actor entity.Actor
		want  []string
		check func(p entity.Patient) bool
	}{
		{
			name:  "agent",
			actor: entity.Actor{ID: "A3", Role: entity.RoleAgent},
			want:  []string{"4", "5"},
			check: func(p entity.Patient) bool { return p.AgentID == "A3" },
		},
		{
			name:  "facility manager",
			actor: entity.Actor{ID: "F1", Role: entity.RoleFacilityManager, Scope: "S1"},
			want:  []string{"1", "3"},
			check: func(p entity.Patient) bool { return p.StructureID == "S1" },
		},
		{
			name:  "district manager",
			actor: entity.Actor{ID: "DM", Role: entity.RoleDistrictManager, Scope: "D1"},
			want:  []string{"1", "2", "3"},
			check: func(p entity.Patient) bool { return testStructures().InDistrict(p.StructureID, "D1") },
		},
		{
			name:  "district responsible",
			actor: entity.Actor{ID: "DR", Role: entity.RoleDistrictResponsible, Scope: "D2"},
			want:  []string{"4", "5"},
			check: func(p entity.Patient) bool { return testStructures().InDistrict(p.StructureID, "D2") },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ScopePatients(tt.actor, patients, entity.PatientFilter{})
			assert.Equal(t, tt.want, ids(got))
			for _, p := range got {
				assert.True(t, tt.check(p), "patient %s leaked", p.ID)
			}
		})
	}
}

func TestScopePatients_PartnersSeeEverything(t *testing.T) {
	s := newScope(nil)
	patients := testPatients(t)

	for _, role := range []entity.Role{entity.RoleNGOPartner, entity.RoleRegionalPartner, entity.RoleGovernmentPartner} {
		actor := entity.Actor{ID: "P", Role: role}
		got := s.ScopePatients(actor, patients, entity.PatientFilter{})
		assert.Len(t, got, len(patients), role)
		assert.True(t, actor.Anonymized())
	}
}

func TestScopePatients_FailsClosed(t *testing.T) {
	s := newScope(nil)
	patients := testPatients(t)

	actors := []entity.Actor{
		{ID: "X", Role: "admin"},
		{ID: "X"},
		{Role: entity.RoleAgent},
		{ID: "F1", Role: entity.RoleFacilityManager},
		{ID: "DM", Role: entity.RoleDistrictManager},
		{ID: "DR", Role: entity.RoleDistrictResponsible},
	}
	for _, a := range actors {
		got := s.ScopePatients(a, patients, entity.PatientFilter{})
		assert.NotNil(t, got)
		assert.Empty(t, got, "%+v", a)
	}
}

func TestScopePatients_StructureRefinement(t *testing.T) {
	s := newScope(nil)
	patients := testPatients(t)
	responsible := entity.Actor{ID: "DR", Role: entity.RoleDistrictResponsible, Scope: "D1"}

	got := s.ScopePatients(responsible, patients, entity.PatientFilter{StructureID: "S2"})
	assert.Equal(t, []string{"2"}, ids(got))

	got = s.ScopePatients(responsible, patients, entity.PatientFilter{StructureID: entity.StructureFilterAll})
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))

	// a structure outside the district cannot widen the scope
	got = s.ScopePatients(responsible, patients, entity.PatientFilter{StructureID: "S3"})
	assert.Empty(t, got)

	// other roles ignore the refinement
	manager := entity.Actor{ID: "DM", Role: entity.RoleDistrictManager, Scope: "D1"}
	got = s.ScopePatients(manager, patients, entity.PatientFilter{StructureID: "S2"})
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))
}

func TestScopePatients_EnrollmentWindow(t *testing.T) {
	s := newScope(nil)
	patients := testPatients(t)
	partner := entity.Actor{ID: "P", Role: entity.RoleNGOPartner}

	t.Run("inclusive bounds keep undated patients", func(t *testing.T) {
		f := entity.PatientFilter{Enrollment: entity.DateRange{From: day(t, "2024-02-15"), To: day(t, "2024-03-20")}}
		assert.Equal(t, []string{"2", "3", "4"}, ids(s.ScopePatients(partner, patients, f)))
	})

	t.Run("open upper bound defaults to now", func(t *testing.T) {
		f := entity.PatientFilter{Enrollment: entity.DateRange{From: day(t, "2024-03-01")}}
		assert.Equal(t, []string{"3", "4", "5"}, ids(s.ScopePatients(partner, patients, f)))

		late := append([]entity.Patient{}, patients...)
		late = append(late, entity.Patient{ID: "6", StructureID: "S1", AgentID: "A1", EnrollmentDate: day(t, "2024-07-15")})
		assert.NotContains(t, ids(s.ScopePatients(partner, late, f)), "6")
	})

	t.Run("upper bound only", func(t *testing.T) {
		f := entity.PatientFilter{Enrollment: entity.DateRange{To: day(t, "2024-01-31")}}
		assert.Equal(t, []string{"1", "3"}, ids(s.ScopePatients(partner, patients, f)))
	})

	t.Run("window after role scope", func(t *testing.T) {
		agent := entity.Actor{ID: "A1", Role: entity.RoleAgent}
		f := entity.PatientFilter{Enrollment: entity.DateRange{From: day(t, "2024-02-01"), To: day(t, "2024-12-31")}}
		assert.Equal(t, []string{"3"}, ids(s.ScopePatients(agent, patients, f)))
	})
}

func TestScopeRiskAssessments_DerivedSetConsistency(t *testing.T) {
	s := newScope(nil)
	patients := testPatients(t)
	risks := []entity.RiskAssessment{
		{PatientID: "1", Level: entity.RiskRed},
		{PatientID: "2", Level: entity.RiskOrange},
		{PatientID: "3", Level: entity.RiskGreen},
		{PatientID: "4", Level: entity.RiskRed},
	}

	for _, actor := range []entity.Actor{
		{ID: "A1", Role: entity.RoleAgent},
		{ID: "F", Role: entity.RoleFacilityManager, Scope: "S3"},
		{ID: "DM", Role: entity.RoleDistrictManager, Scope: "D1"},
		{ID: "P", Role: entity.RoleGovernmentPartner},
		{ID: "X", Role: "nobody"},
	} {
		allowed := make(map[string]bool)
		for _, p := range s.ScopePatients(actor, patients, entity.PatientFilter{}) {
			allowed[p.ID] = true
		}
		var want []entity.RiskAssessment
		for _, r := range risks {
			if allowed[r.PatientID] {
				want = append(want, r)
			}
		}

		got := s.ScopeRiskAssessments(actor, patients, risks)
		assert.ElementsMatch(t, want, got, "%+v", actor)
	}
}

func TestScopeRecords_DropOrphans(t *testing.T) {
	diag := newRecordingDiagnostics()
	s := newScope(diag)
	patients := testPatients(t)
	partner := entity.Actor{ID: "P", Role: entity.RoleNGOPartner}

	risks := s.ScopeRiskAssessments(partner, patients, []entity.RiskAssessment{
		{PatientID: "1", Level: entity.RiskRed},
		{PatientID: "99", Level: entity.RiskRed},
	})
	referrals := s.ScopeReferrals(partner, patients, []entity.Referral{
		{ID: "R1", PatientID: "1"},
		{ID: "R9", PatientID: "404"},
	})
	visits := s.ScopeVisits(partner, patients, []entity.Visit{{ID: "V9", PatientID: "nobody"}})
	doses := s.ScopeImmunizations(partner, patients, []entity.Immunization{{ID: "I1", PatientID: "4"}})

	assert.Len(t, risks, 1)
	assert.Len(t, referrals, 1)
	assert.Empty(t, visits)
	assert.Len(t, doses, 1)
	assert.Equal(t, []string{"99"}, diag.orphans[KindRiskAssessment])
	assert.Equal(t, []string{"R9"}, diag.orphans[KindReferral])
	assert.Equal(t, []string{"V9"}, diag.orphans[KindVisit])
	assert.NotContains(t, diag.orphans, KindImmunization)
}

func TestScopeReferrals_FollowsPatientScope(t *testing.T) {
	s := newScope(nil)
	patients := testPatients(t)
	referrals := []entity.Referral{
		{ID: "R1", PatientID: "1"},
		{ID: "R2", PatientID: "2"},
		{ID: "R3", PatientID: "4"},
	}

	got := s.ScopeReferrals(entity.Actor{ID: "F", Role: entity.RoleFacilityManager, Scope: "S2"}, patients, referrals)
	require.Len(t, got, 1)
	assert.Equal(t, "R2", got[0].ID)
}

func TestCanSee(t *testing.T) {
	s := newScope(nil)
	p := &entity.Patient{ID: "1", AgentID: "A1", StructureID: "S1"}

	assert.True(t, s.CanSee(entity.Actor{ID: "A1", Role: entity.RoleAgent}, p))
	assert.False(t, s.CanSee(entity.Actor{ID: "A2", Role: entity.RoleAgent}, p))
	assert.True(t, s.CanSee(entity.Actor{ID: "D", Role: entity.RoleDistrictManager, Scope: "D1"}, p))
	assert.False(t, s.CanSee(entity.Actor{ID: "D", Role: entity.RoleDistrictManager, Scope: "D2"}, p))
	assert.False(t, s.CanSee(entity.Actor{ID: "A1", Role: entity.RoleAgent}, nil))
}

func TestRestrictToPatients(t *testing.T) {
	patients := []entity.Patient{{ID: "1"}, {ID: "3"}}
	visits := []entity.Visit{{ID: "V1", PatientID: "1"}, {ID: "V2", PatientID: "2"}, {ID: "V3", PatientID: "3"}}

	got := RestrictToPatients(patients, visits, func(v *entity.Visit) string { return v.PatientID })
	assert.Equal(t, []entity.Visit{visits[0], visits[2]}, got)
}
