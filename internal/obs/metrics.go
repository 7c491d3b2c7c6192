package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Store transition metrics.
var (
	actionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_actions_total",
			Help: "Total number of state transitions dispatched to the store.",
		},
		[]string{"action", "outcome"},
	)

	persistWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_persist_writes_total",
			Help: "Snapshot/session writes to the persistent medium.",
		},
		[]string{"key", "result"},
	)

	stateEntities = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "store_state_entities",
			Help: "Entities currently held in the authoritative state.",
		},
		[]string{"entity"},
	)
)

// Init registers the metrics in the default registry. Call once at startup.
func Init() {
	prometheus.MustRegister(actionsTotal, persistWritesTotal, stateEntities)
}

// ObserveAction counts one dispatched transition.
func ObserveAction(action, outcome string) {
	actionsTotal.WithLabelValues(action, outcome).Inc()
}

// ObservePersist counts one write to the medium. A nil err is "ok".
func ObservePersist(key string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	persistWritesTotal.WithLabelValues(key, result).Inc()
}

// SetEntityCounts updates the per-entity gauges after a transition.
func SetEntityCounts(users, patients, incidents int) {
	stateEntities.WithLabelValues("users").Set(float64(users))
	stateEntities.WithLabelValues("patients").Set(float64(patients))
	stateEntities.WithLabelValues("incidents").Set(float64(incidents))
}
