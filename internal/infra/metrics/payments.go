package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		checkoutSessionsTotal,
		subscriptionUpdatesTotal,
	)
}

var (
	checkoutSessionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_sessions_total",
			Help: "Checkout session creations by outcome (created/failed).",
		},
		[]string{"outcome"},
	)

	subscriptionUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscription_status_updates_total",
			Help: "Subscription status writes by resulting status.",
		},
		[]string{"status"},
	)
)

func IncCheckoutSession(outcome string) {
	checkoutSessionsTotal.WithLabelValues(norm(outcome)).Inc()
}

func IncSubscriptionUpdate(status string) {
	subscriptionUpdatesTotal.WithLabelValues(norm(status)).Inc()
}
