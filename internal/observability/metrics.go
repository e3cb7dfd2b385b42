package observability

import (
	"strconv"
	"sync"
	"time"

	apperrors "github.com/SamirYadav48/interactive-helpdesk-ticket-system/pkg/util"
)

// Metrics provides basic in-memory counters for engine operations and
// HTTP traffic.
type Metrics struct {
	mu             sync.Mutex
	operationCount map[string]int64
	failureCount   map[string]int64
	requestCount   map[string]int64
	errorCount     map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		operationCount: make(map[string]int64),
		failureCount:   make(map[string]int64),
		requestCount:   make(map[string]int64),
		errorCount:     make(map[string]int64),
	}
}

// RecordOperation counts one engine operation, bucketing failures by
// domain error code.
func (m *Metrics) RecordOperation(op string, err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operationCount[op]++
	if err != nil {
		m.failureCount[op+"|"+apperrors.ToDomainError(err).Code]++
	}
}

// RecordRequest increments counters for HTTP requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters per route and domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// OperationCounts returns a copy of the per-operation counters.
func (m *Metrics) OperationCounts() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[string]int64, len(m.operationCount))
	for k, v := range m.operationCount {
		result[k] = v
	}
	return result
}

// FailureCounts returns a copy of the per-operation failure counters.
func (m *Metrics) FailureCounts() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[string]int64, len(m.failureCount))
	for k, v := range m.failureCount {
		result[k] = v
	}
	return result
}
