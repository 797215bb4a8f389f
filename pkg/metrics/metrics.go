package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas Prometheus de la API. Las rutas se etiquetan con el patrón
// registrado (c.Route().Path), no con la URL cruda, para acotar cardinalidad.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tienda_http_requests_total",
			Help: "Total de peticiones HTTP",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tienda_http_request_duration_seconds",
			Help:    "Duración de peticiones HTTP (segundos)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	FilesUploadedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tienda_files_uploaded_total",
			Help: "Total de archivos subidos",
		},
	)

	FileUploadBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tienda_file_upload_bytes_total",
			Help: "Bytes totales subidos",
		},
	)
)

// RecordHTTPRequest registra contador y duración de una petición.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordFileUpload registra una subida exitosa.
func RecordFileUpload(size int64) {
	FilesUploadedTotal.Inc()
	FileUploadBytes.Add(float64(size))
}
