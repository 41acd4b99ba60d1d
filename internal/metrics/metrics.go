package metrics

import (
	"sync"
)

// Outcome classifies how a file request ended.
type Outcome int

const (
	Served Outcome = iota
	NotFound
	Forbidden
	Failed
	MethodNotAllowed
)

// snapshot keys, indexed by Outcome
var outcomeNames = [...]string{
	Served:           "served",
	NotFound:         "not_found",
	Forbidden:        "forbidden",
	Failed:           "errors",
	MethodNotAllowed: "method_not_allowed",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// Metrics counts file requests by outcome. It is safe for concurrent use.
type Metrics struct {
	mu sync.RWMutex

	total    int64
	outcomes [len(outcomeNames)]int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Record counts one finished request. Unknown outcomes are dropped.
func (m *Metrics) Record(o Outcome) {
	if o < 0 || int(o) >= len(outcomeNames) {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.total++
	m.outcomes[o]++
}

// GetSnapshot returns total_requests plus one entry per outcome.
func (m *Metrics) GetSnapshot() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(map[string]int64, len(outcomeNames)+1)
	snapshot["total_requests"] = m.total
	for i, name := range outcomeNames {
		snapshot[name] = m.outcomes[i]
	}
	return snapshot
}
