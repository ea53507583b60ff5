package service

import (
	"tekhe-dashboard/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// Record kinds reported with orphan references
const (
	KindVisit          = "visit"
	KindRiskAssessment = "risk_assessment"
	KindReferral       = "referral"
	KindImmunization   = "immunization"
)

// Diagnostics receives data-quality and alerting events from the core.
// Implementations must be safe for concurrent use; the core never reads
// anything back from them.
type Diagnostics interface {
	OrphanReferences(kind string, ids []string)
	TimelineInconsistent(referralID string)
	AlertDispatched(dispatch *entity.AlertDispatch)
	AlertRejected(patientID string, reason error)
}

// Sample is one diagnostics counter value with its labels
type Sample struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
	Value  float64           `json:"value"`
}

// SampleGatherer is the read side of the diagnostics counters
type SampleGatherer interface {
	Samples() ([]Sample, error)
}

type logDiagnostics struct {
	log *logrus.Logger
}

// NewLogDiagnostics reports events through logrus
func NewLogDiagnostics(log *logrus.Logger) Diagnostics {
	return &logDiagnostics{log: log}
}

func (d *logDiagnostics) OrphanReferences(kind string, ids []string) {
	d.log.WithFields(logrus.Fields{
		"kind":  kind,
		"count": len(ids),
		"ids":   ids,
	}).Warn("Dropped records referencing unknown patients")
}

func (d *logDiagnostics) TimelineInconsistent(referralID string) {
	d.log.WithField("referral_id", referralID).Warn("Referral timeline inconsistent")
}

func (d *logDiagnostics) AlertDispatched(dispatch *entity.AlertDispatch) {
	d.log.WithFields(logrus.Fields{
		"dispatch_id": dispatch.ID.String(),
		"patient_id":  dispatch.PatientID,
		"actor_id":    dispatch.ActorID,
		"structure":   dispatch.StructureID,
	}).Debug("SONU alert dispatched")
}

func (d *logDiagnostics) AlertRejected(patientID string, reason error) {
	d.log.WithField("patient_id", patientID).Warnf("SONU alert rejected: %v", reason)
}

type teeDiagnostics []Diagnostics

// TeeDiagnostics fans every event out to each of ds
func TeeDiagnostics(ds ...Diagnostics) Diagnostics {
	return teeDiagnostics(ds)
}

func (t teeDiagnostics) OrphanReferences(kind string, ids []string) {
	for _, d := range t {
		d.OrphanReferences(kind, ids)
	}
}

func (t teeDiagnostics) TimelineInconsistent(referralID string) {
	for _, d := range t {
		d.TimelineInconsistent(referralID)
	}
}

func (t teeDiagnostics) AlertDispatched(dispatch *entity.AlertDispatch) {
	for _, d := range t {
		d.AlertDispatched(dispatch)
	}
}

func (t teeDiagnostics) AlertRejected(patientID string, reason error) {
	for _, d := range t {
		d.AlertRejected(patientID, reason)
	}
}
