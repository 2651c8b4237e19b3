package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "integration_hub_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	metricDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "integration_hub_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	prometheus.MustRegister(metricRequests, metricDuration)
}

// Metrics records request counts and latency. Routes are labelled by their
// pattern so ids do not explode cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metricRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metricDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
