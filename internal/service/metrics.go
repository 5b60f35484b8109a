package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// ingest result label values
const (
	ResultOK           = "ok"
	ResultInvalid      = "invalid"
	ResultStorageError = "storage_error"
	ResultIndexError   = "index_error"
)

// IngestMetrics ingestion counters
// IngestMetrics 入库计数器
type IngestMetrics struct {
	total *prometheus.CounterVec
	bytes *prometheus.CounterVec
}

// NewIngestMetrics registers the counters on reg, nil means the default registerer.
// Counters already registered on reg are reused, so the container can be rebuilt on config reload.
// NewIngestMetrics 在 reg 上注册计数器，nil 表示默认注册器；已注册的计数器会被复用
func NewIngestMetrics(reg prometheus.Registerer) *IngestMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &IngestMetrics{
		total: registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "ingest_total",
			Help:      "Vault ingestion attempts by item type and result.",
		}, []string{"type", "result"})),
		bytes: registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "ingest_bytes_total",
			Help:      "Bytes written to storage by item type.",
		}, []string{"type"})),
	}
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *IngestMetrics) observe(itemType string, result string) {
	if m == nil {
		return
	}
	m.total.WithLabelValues(itemType, result).Inc()
}

func (m *IngestMetrics) addBytes(itemType string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.bytes.WithLabelValues(itemType).Add(float64(n))
}
