package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(authRejectionsTotal) }

var authRejectionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_rejections_total",
		Help: "Requests rejected at the bearer gate.",
	},
	[]string{"reason"}, // 'missing', 'scheme', 'credential'
)

func IncAuthRejection(reason string) {
	authRejectionsTotal.WithLabelValues(norm(reason)).Inc()
}
