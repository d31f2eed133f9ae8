package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	statusWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careshift",
			Name:      "availability_status_writes_total",
			Help:      "Count of availability status upserts by status.",
		},
		[]string{"status"},
	)

	shiftAssignments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careshift",
			Name:      "shift_assignments_total",
			Help:      "Count of shift assignment operations by outcome.",
		},
		[]string{"outcome"},
	)

	notificationsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careshift",
			Name:      "notifications_emitted_total",
			Help:      "Count of notifications handed to the sink by type.",
		},
		[]string{"type"},
	)

	unavailabilityReports = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "careshift",
			Name:      "unavailability_reports_total",
			Help:      "Count of unavailability reports filed.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(statusWrites, shiftAssignments, notificationsEmitted, unavailabilityReports)
	})
}

func IncStatusWrite(status string) {
	statusWrites.WithLabelValues(status).Inc()
}

func IncShiftAssignment(outcome string) {
	shiftAssignments.WithLabelValues(outcome).Inc()
}

func IncNotificationEmitted(notificationType string) {
	notificationsEmitted.WithLabelValues(notificationType).Inc()
}

func IncUnavailabilityReport() {
	unavailabilityReports.Inc()
}
