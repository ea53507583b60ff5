package usecase

import (
	"io"
	"testing"
	"time"

	"tekhe-dashboard/internal/domain/entity"
	"tekhe-dashboard/internal/infrastructure/dataset"
	"tekhe-dashboard/internal/infrastructure/metrics"
	"tekhe-dashboard/internal/repository"
	"tekhe-dashboard/internal/service"
	"tekhe-dashboard/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const snapshotPath = "../infrastructure/dataset/testdata/snapshot.json"

var fixedNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

type fixture struct {
	snapshot    *dataset.Snapshot
	recorder    *metrics.Recorder
	dashboard   DashboardUsecase
	pseudonyms  service.PseudonymService
	patients    PatientUsecase
	referrals   ReferralUsecase
	alerts      AlertUsecase
	quality     QualityUsecase
	diagnostics DiagnosticsUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	now := func() time.Time { return fixedNow }

	loader, err := dataset.NewLoader(log, validator.NewValidator())
	require.NoError(t, err)
	snapshot, err := loader.LoadFile(snapshotPath)
	require.NoError(t, err)

	repos := Repositories{
		Patients:        repository.NewPatientRepository(snapshot),
		Visits:          repository.NewVisitRepository(snapshot),
		RiskAssessments: repository.NewRiskAssessmentRepository(snapshot),
		Referrals:       repository.NewReferralRepository(snapshot),
		Immunizations:   repository.NewImmunizationRepository(snapshot),
	}
	structures := entity.NewStructureDirectory(snapshot.Structures)
	recorder := metrics.NewRecorder()
	diag := service.TeeDiagnostics(service.NewLogDiagnostics(log), recorder)

	scope := service.NewAccessScopeService(log, structures, diag, now)
	timelines := service.NewReferralTimelineService(diag, now)
	kpis := service.NewKpiService(log, structures, timelines, service.DefaultCpn4TargetRatio)
	alerts := service.NewAlertService(log, scope, service.NewLogAlertNotifier(log), diag, now)
	pseudonyms, err := service.NewPseudonymService(log, "fixture-pseudonym-key-0001")
	require.NoError(t, err)

	return &fixture{
		snapshot:    snapshot,
		recorder:    recorder,
		dashboard:   NewDashboardUsecase(log, repos, scope, kpis, snapshot.Digest, now),
		pseudonyms:  pseudonyms,
		patients:    NewPatientUsecase(log, repos, structures, scope, timelines, pseudonyms),
		referrals:   NewReferralUsecase(log, repos, scope, timelines),
		alerts:      NewAlertUsecase(log, repos.Patients, repos.RiskAssessments, alerts),
		quality:     NewQualityUsecase(log, repos, scope, service.NewDataQualityService(), snapshot.Digest),
		diagnostics: NewDiagnosticsUsecase(log, repos, scope, timelines, recorder, snapshot.Digest, snapshot.LoadedAt),
	}
}

var (
	agentA1      = entity.Actor{ID: "A1", Role: entity.RoleAgent}
	agentA2      = entity.Actor{ID: "A2", Role: entity.RoleAgent}
	facility1    = entity.Actor{ID: "F1", Role: entity.RoleFacilityManager, Scope: "S1"}
	district1    = entity.Actor{ID: "DM1", Role: entity.RoleDistrictManager, Scope: "D1"}
	responsible1 = entity.Actor{ID: "DR1", Role: entity.RoleDistrictResponsible, Scope: "D1"}
	ngo          = entity.Actor{ID: "NGO", Role: entity.RoleNGOPartner}
)
