package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Updates        *prometheus.CounterVec
	HandlerErrors  *prometheus.CounterVec
	HandlerSeconds *prometheus.HistogramVec
	PlacesSaved    prometheus.Counter
	StorageErrors  prometheus.Counter
	GeocoderErrors prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Updates: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "locationbot_updates_total",
			Help: "Total number of inbound updates by kind.",
		}, []string{"kind"}),
		HandlerErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "locationbot_handler_errors_total",
			Help: "Total number of updates whose handler returned an error.",
		}, []string{"kind"}),
		HandlerSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "locationbot_handler_duration_seconds",
			Help:    "Duration of update handling.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		PlacesSaved: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "locationbot_places_saved_total",
			Help: "Total number of places finalized with a location.",
		}),
		StorageErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "locationbot_storage_errors_total",
			Help: "Total number of failed calls to the list or state store.",
		}),
		GeocoderErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "locationbot_geocoder_errors_total",
			Help: "Total number of failed reverse geocoding requests.",
		}),
	}
}
