package service

import (
	"io"
	"sync"
	"testing"
	"time"

	"tekhe-dashboard/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type recordingDiagnostics struct {
	mu         sync.Mutex
	orphans    map[string][]string
	faults     []string
	dispatched []*entity.AlertDispatch
	rejected   []error
}

func newRecordingDiagnostics() *recordingDiagnostics {
	return &recordingDiagnostics{orphans: make(map[string][]string)}
}

func (d *recordingDiagnostics) OrphanReferences(kind string, ids []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.orphans[kind] = append(d.orphans[kind], ids...)
}

func (d *recordingDiagnostics) TimelineInconsistent(referralID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.faults = append(d.faults, referralID)
}

func (d *recordingDiagnostics) AlertDispatched(dispatch *entity.AlertDispatch) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dispatched = append(d.dispatched, dispatch)
}

func (d *recordingDiagnostics) AlertRejected(_ string, reason error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rejected = append(d.rejected, reason)
}

func intPtr(v int) *int { return &v }

func day(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return &d
}

func stamp(t *testing.T, s string) *time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04", s)
	require.NoError(t, err)
	return &ts
}

func testStructures() entity.StructureDirectory {
	return entity.NewStructureDirectory([]entity.Structure{
		{ID: "S1", Name: "Médina", DistrictID: "D1"},
		{ID: "S2", Name: "Grand Yoff", DistrictID: "D1"},
		{ID: "S3", Name: "Thiès Nord", DistrictID: "D2"},
	})
}

func testPatients(t *testing.T) []entity.Patient {
	return []entity.Patient{
		{ID: "1", FirstName: "Awa", LastName: "Diop", Phone: "+221701234567", Age: intPtr(17), AgentID: "A1", StructureID: "S1", EnrollmentDate: day(t, "2024-01-10"), CoverageStatus: entity.CoverageActive},
		{ID: "2", FirstName: "Fatou", LastName: "Ndiaye", Age: intPtr(25), AgentID: "A2", StructureID: "S2", EnrollmentDate: day(t, "2024-02-15"), CoverageStatus: entity.CoverageToRenew},
		{ID: "3", FirstName: "Mariama", LastName: "Ba", Age: intPtr(35), AgentID: "A1", StructureID: "S1", CoverageStatus: entity.CoveragePending},
		{ID: "4", FirstName: "Khady", LastName: "Sow", Age: intPtr(38), AgentID: "A3", StructureID: "S3", EnrollmentDate: day(t, "2024-03-20"), CoverageStatus: entity.CoverageActive},
		{ID: "5", FirstName: "Aminata", LastName: "Fall", AgentID: "A3", StructureID: "S3", EnrollmentDate: day(t, "2024-04-02"), CoverageStatus: entity.CoverageActive},
	}
}

func ids(patients []entity.Patient) []string {
	out := make([]string, len(patients))
	for i, p := range patients {
		out[i] = p.ID
	}
	return out
}
