package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		botUpdatesTotal,
		botHandlerErrors,
	)
}

var (
	botUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Telegram updates by kind (message/callback/other).",
		},
		[]string{"kind"},
	)

	botHandlerErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_handler_errors_total",
			Help: "Errors returned by bot update handlers, by handler.",
		},
		[]string{"handler"},
	)
)

func IncBotUpdate(kind string) {
	botUpdatesTotal.WithLabelValues(norm(kind)).Inc()
}

func IncBotHandlerError(handler string) {
	botHandlerErrors.WithLabelValues(norm(handler)).Inc()
}
