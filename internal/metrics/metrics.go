package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtly_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "courtly_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtly_bookings_total",
			Help: "Booking attempts by event kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	ConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtly_booking_conflicts_total",
			Help: "Bookings rejected by the conflict checker, by blocking kind",
		},
		[]string{"kind", "blocked_by"},
	)

	AvailabilityRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtly_availability_requests_total",
			Help: "Availability grid requests served",
		},
	)

	ReservationCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtly_reservation_cancellations_total",
			Help: "Total number of reservation cancellations",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtly_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "courtly_email_queue_length",
			Help: "Current length of notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(kind, outcome string) {
	BookingsTotal.WithLabelValues(kind, outcome).Inc()
}

func RecordConflict(kind, blockedBy string) {
	ConflictsTotal.WithLabelValues(kind, blockedBy).Inc()
}

func RecordAvailabilityRequest() {
	AvailabilityRequestsTotal.Inc()
}

func RecordReservationCancellation() {
	ReservationCancellationsTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func SetEmailQueueLength(n float64) {
	EmailQueueLength.Set(n)
}
