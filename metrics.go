package vector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of slots in the current block.
func (v *Vector[T]) Cap() int {
	return v.data.Cap()
}

// Utilization returns the ratio of live elements to capacity (0.0 to 1.0).
// Returns 0.0 if the vector has no capacity.
func (v *Vector[T]) Utilization() float64 {
	if v.Cap() == 0 {
		return 0
	}
	return float64(v.size) / float64(v.Cap())
}

// Stats returns a snapshot of the vector's storage usage.
func (v *Vector[T]) Stats() Stats {
	elemSize := int(sizeOf[T]())
	return Stats{
		Len:           v.size,
		Cap:           v.Cap(),
		Free:          v.Cap() - v.size,
		ElemSize:      elemSize,
		BytesReserved: v.Cap() * elemSize,
		Utilization:   v.Utilization(),
	}
}

// Stats contains storage information about a vector.
type Stats struct {
	Len           int     // Live elements
	Cap           int     // Slots in the current block
	Free          int     // Slots available before the next growth
	ElemSize      int     // Size of one slot in bytes
	BytesReserved int     // Cap * ElemSize
	Utilization   float64 // Ratio of live elements to capacity (0.0-1.0)
}

// Relocation modes reported in vector_relocated_elements_total.
const (
	relocateMove = "move"
	relocateCopy = "copy"
)

// Metrics collects storage activity of every vector it is installed in.
// A nil *Metrics records nothing.
type Metrics struct {
	allocations        prometheus.Counter
	allocationFailures prometheus.Counter
	relocated          *prometheus.CounterVec
	rollbacks          *prometheus.CounterVec
	reservedSlots      prometheus.Histogram
}

// NewMetrics creates the vector collectors and registers them with reg.
// A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		allocations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "vector_allocations_total",
			Help: "Total number of storage blocks allocated.",
		}),
		allocationFailures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "vector_allocation_failures_total",
			Help: "Total number of storage blocks that could not be allocated.",
		}),
		relocated: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "vector_relocated_elements_total",
			Help: "Total number of elements transferred into a new block, by relocation mode.",
		}, []string{"mode"}),
		rollbacks: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "vector_rollbacks_total",
			Help: "Total number of operations undone after an element or allocation failure.",
		}, []string{"op"}),
		reservedSlots: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "vector_reserved_slots",
			Help:    "Capacity of newly allocated storage blocks.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}),
	}
}

func (m *Metrics) observeAllocation(capacity int, err error) {
	if m == nil || capacity == 0 {
		return
	}
	if err != nil {
		m.allocationFailures.Inc()
		return
	}
	m.allocations.Inc()
	m.reservedSlots.Observe(float64(capacity))
}

func (m *Metrics) observeRelocation(byMove bool, n int) {
	if m == nil || n == 0 {
		return
	}
	mode := relocateCopy
	if byMove {
		mode = relocateMove
	}
	m.relocated.WithLabelValues(mode).Add(float64(n))
}

func (m *Metrics) observeRollback(op string) {
	if m == nil {
		return
	}
	m.rollbacks.WithLabelValues(op).Inc()
}
