package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	bookingsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Number of bookings successfully created.",
	})

	bookingConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_conflicts_total",
		Help: "Number of booking attempts rejected because the dates were taken.",
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Number of HTTP requests handled, by method and path.",
	}, []string{"method", "path"})
)

// Register registers the service metrics with the default registry.
func Register() {
	prometheus.MustRegister(bookingsCreated)
	prometheus.MustRegister(bookingConflicts)
	prometheus.MustRegister(httpRequests)
}

// IncBookingCreated counts one successfully created booking.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncBookingConflict counts one booking rejected for overlapping dates.
func IncBookingConflict() {
	bookingConflicts.Inc()
}

// IncHTTPRequest counts one handled request.
func IncHTTPRequest(method, path string) {
	httpRequests.WithLabelValues(method, path).Inc()
}
