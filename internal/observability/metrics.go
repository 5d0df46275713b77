package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics counts outgoing API requests and error responses in memory.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments the counter for a completed request.
func (m *Metrics) RecordRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := requestKey(method, path, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments the counter for an error response, keyed by the
// backend's application error code.
func (m *Metrics) RecordError(method, path string, code int) {
	if m == nil {
		return
	}
	key := method + "|" + path + "|" + strconv.Itoa(code)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RequestCount returns how many requests completed with the given status.
func (m *Metrics) RequestCount(method, path string, status int) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount[requestKey(method, path, status)]
}

// ErrorCount returns how many responses carried the given error code.
func (m *Metrics) ErrorCount(method, path string, code int) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errorCount[method+"|"+path+"|"+strconv.Itoa(code)]
}

func requestKey(method, path string, status int) string {
	return method + "|" + path + "|" + strconv.Itoa(status)
}
