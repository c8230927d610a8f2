package vertexbuf

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	elementsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "packvec_vertexbuf_elements_total",
		Help: "Total number of packed elements encoded or decoded",
	}, []string{"format", "op"})

	conversionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "packvec_vertexbuf_duration_seconds",
		Help:    "Time spent converting whole buffers",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
)

func observe(format, op string, count int, start time.Time) {
	elementsProcessed.WithLabelValues(format, op).Add(float64(count))
	conversionDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
