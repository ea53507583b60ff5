package metrics

import (
	"sort"

	"tekhe-dashboard/internal/domain/entity"
	"tekhe-dashboard/internal/service"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tekhe"

var (
	_ service.Diagnostics    = (*Recorder)(nil)
	_ service.SampleGatherer = (*Recorder)(nil)
)

// Recorder counts data-quality and alerting events on its own registry
type Recorder struct {
	registry         *prometheus.Registry
	orphans          *prometheus.CounterVec
	timelineFaults   prometheus.Counter
	alertsDispatched prometheus.Counter
	alertsRejected   *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		orphans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orphan_records_dropped_total",
			Help:      "Records dropped during scoping because their patient does not exist.",
		}, []string{"kind"}),
		timelineFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "referral_timeline_faults_total",
			Help:      "Referrals whose timestamps are out of order.",
		}),
		alertsDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sonu_alerts_dispatched_total",
			Help:      "SONU alerts accepted and handed to the notifier.",
		}),
		alertsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sonu_alerts_rejected_total",
			Help:      "SONU alerts refused by a precondition.",
		}, []string{"reason"}),
	}
	r.registry.MustRegister(r.orphans, r.timelineFaults, r.alertsDispatched, r.alertsRejected)
	return r
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) OrphanReferences(kind string, ids []string) {
	r.orphans.WithLabelValues(kind).Add(float64(len(ids)))
}

func (r *Recorder) TimelineInconsistent(string) {
	r.timelineFaults.Inc()
}

func (r *Recorder) AlertDispatched(*entity.AlertDispatch) {
	r.alertsDispatched.Inc()
}

func (r *Recorder) AlertRejected(_ string, reason error) {
	r.alertsRejected.WithLabelValues(reason.Error()).Inc()
}

// Samples gathers every counter, sorted by name
func (r *Recorder) Samples() ([]service.Sample, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	var samples []service.Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			s := service.Sample{Name: mf.GetName(), Value: m.GetCounter().GetValue()}
			if len(m.GetLabel()) > 0 {
				s.Labels = make(map[string]string, len(m.GetLabel()))
				for _, lp := range m.GetLabel() {
					s.Labels[lp.GetName()] = lp.GetValue()
				}
			}
			samples = append(samples, s)
		}
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })
	return samples, nil
}
