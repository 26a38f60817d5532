package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	PollDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bot_applications_poll_duration_seconds",
			Help:    "Duration of each applications poll in seconds.",
			Buckets: []float64{1, 5, 15, 60, 300},
		},
	)
	PollStepDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "bot_applications_poll_step_duration_seconds",
			Help:       "Duration of each step in the applications poll.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step"},
	)
	NotifiedApplicationsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_applications_notified_total",
			Help: "Total number of candidatures delivered to recruiters.",
		},
	)
	StatusTransitionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_status_transitions_total",
			Help: "Total number of candidature status transitions by action.",
		},
		[]string{"action"},
	)
)

func StartMetricsServer() {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(PollDuration)
	prometheus.MustRegister(PollStepDuration)
	prometheus.MustRegister(NotifiedApplicationsCounter)
	prometheus.MustRegister(StatusTransitionsCounter)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(":8080", nil))
	}()
}
