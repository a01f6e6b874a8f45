package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	Appends = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geocontent",
			Name:      "revisions_appended_total",
			Help:      "Number of revisions appended to a chain",
		},
		[]string{"kind"},
	)

	AppendConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geocontent",
			Name:      "append_conflicts_total",
			Help:      "Number of appends that lost a concurrent race for the chain tail",
		},
		[]string{"kind"},
	)

	PointerMoves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geocontent",
			Name:      "current_pointer_moves_total",
			Help:      "Number of promotions and rewinds of the current revision",
		},
		[]string{"kind", "direction"},
	)

	PointerConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geocontent",
			Name:      "current_pointer_conflicts_total",
			Help:      "Number of current pointer moves that lost a concurrent race",
		},
		[]string{"kind"},
	)

	InvariantViolations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geocontent",
			Name:      "chain_invariant_violations_total",
			Help:      "Number of broken chain states detected while walking history",
		},
		[]string{"kind"},
	)

	ModerationTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geocontent",
			Name:      "moderation_transitions_total",
			Help:      "Number of moderation status changes by target status",
		},
		[]string{"kind", "status"},
	)
)

// Collectors returns every domain collector for registration on a registry.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		Appends,
		AppendConflicts,
		PointerMoves,
		PointerConflicts,
		InvariantViolations,
		ModerationTransitions,
	}
}
