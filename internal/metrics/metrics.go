package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	signupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_signup",
		Name:      "signups_total",
		Help:      "Successful signups per activity.",
	}, []string{"activity"})
	unregistersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_signup",
		Name:      "unregisters_total",
		Help:      "Successful unregistrations per activity.",
	}, []string{"activity"})
	rejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_signup",
		Name:      "rejections_total",
		Help:      "Rejected roster mutations by operation and reason.",
	}, []string{"operation", "reason"})
)

func init() {
	prometheus.MustRegister(signupsTotal, unregistersTotal, rejectionsTotal)
}

// RecordSignup counts a successful signup.
func RecordSignup(activity string) {
	signupsTotal.WithLabelValues(activity).Inc()
}

// RecordUnregister counts a successful unregistration.
func RecordUnregister(activity string) {
	unregistersTotal.WithLabelValues(activity).Inc()
}

// RecordRejection counts a rejected mutation. Reason is one of
// "not_found", "duplicate", "full", "not_signed_up".
func RecordRejection(operation, reason string) {
	rejectionsTotal.WithLabelValues(operation, reason).Inc()
}
