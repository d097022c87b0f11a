// Package metrics exposes Prometheus collectors for signing, verification,
// key generation and HTTP traffic. A nil *Metrics records nothing.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values
const (
	ResultSuccess = "success"
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Metrics groups the docsign collectors.
type Metrics struct {
	signatures          *prometheus.CounterVec
	verifications       *prometheus.CounterVec
	keyGenerationTime   *prometheus.HistogramVec
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg, or on the default
// registerer when reg is nil. Collectors that are already registered are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		signatures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docsign_signatures_total",
			Help: "Signing operations by hash algorithm and result",
		}, []string{"algorithm", "result"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docsign_verifications_total",
			Help: "Verification operations by hash algorithm and result",
		}, []string{"algorithm", "result"}),
		keyGenerationTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "docsign_key_generation_duration_seconds",
			Help:    "Wall clock time of RSA key pair generation",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"key_size"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docsign_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "docsign_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	var err error
	if m.signatures, err = register(reg, m.signatures); err != nil {
		return nil, err
	}
	if m.verifications, err = register(reg, m.verifications); err != nil {
		return nil, err
	}
	if m.keyGenerationTime, err = register(reg, m.keyGenerationTime); err != nil {
		return nil, err
	}
	if m.httpRequests, err = register(reg, m.httpRequests); err != nil {
		return nil, err
	}
	if m.httpRequestDuration, err = register(reg, m.httpRequestDuration); err != nil {
		return nil, err
	}

	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	if err := reg.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return collector, err
	}
	return collector, nil
}

// ObserveSignature counts one signing attempt.
func (m *Metrics) ObserveSignature(algorithm string, err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.signatures.WithLabelValues(algorithm, result).Inc()
}

// ObserveVerification counts one verification attempt.
func (m *Metrics) ObserveVerification(algorithm string, valid bool, err error) {
	if m == nil {
		return
	}
	result := ResultInvalid
	switch {
	case err != nil:
		result = ResultError
	case valid:
		result = ResultValid
	}
	m.verifications.WithLabelValues(algorithm, result).Inc()
}

// ObserveKeyGeneration records how long generating a key of keySize bits took.
func (m *Metrics) ObserveKeyGeneration(keySize int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.keyGenerationTime.WithLabelValues(strconv.Itoa(keySize)).Observe(elapsed.Seconds())
}

// GinMiddleware records request counts and latency per matched route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if m == nil {
			ctx.Next()
			return
		}

		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := ctx.Request.Method
		m.httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		m.httpRequests.WithLabelValues(method, path, strconv.Itoa(ctx.Writer.Status())).Inc()
	}
}
