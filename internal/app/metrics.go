package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks counters for a run. All methods are safe for concurrent
// use, since inputs are processed in parallel.
type Metrics struct {
	// Inputs
	inputCount   atomic.Uint64
	inputFailed  atomic.Uint64
	inputTotalNs atomic.Int64
	inputMinNs   atomic.Int64
	inputMaxNs   atomic.Int64

	// Records
	recordsRead    atomic.Int64
	recordsKept    atomic.Int64
	recordsDropped atomic.Int64

	// Strings
	stringsMade  atomic.Int64
	stringsFreed atomic.Int64
	borrows      atomic.Int64
	releases     atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so the first input will be smaller
	m.inputMinNs.Store(1<<63 - 1)
	return m
}

// RecordInput records one finished input.
func (m *Metrics) RecordInput(duration time.Duration, failed bool) {
	ns := duration.Nanoseconds()

	m.inputCount.Add(1)
	m.inputTotalNs.Add(ns)
	if failed {
		m.inputFailed.Add(1)
	}

	for {
		old := m.inputMinNs.Load()
		if ns >= old || m.inputMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.inputMaxNs.Load()
		if ns <= old || m.inputMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordRecords adds record counts.
func (m *Metrics) RecordRecords(read, kept, dropped int64) {
	m.recordsRead.Add(read)
	m.recordsKept.Add(kept)
	m.recordsDropped.Add(dropped)
}

// RecordStrings adds string creation counts.
func (m *Metrics) RecordStrings(made, freed int64) {
	m.stringsMade.Add(made)
	m.stringsFreed.Add(freed)
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	count := m.inputCount.Load()
	total := m.inputTotalNs.Load()

	var avg, minNs time.Duration
	if count > 0 {
		avg = time.Duration(total / int64(count))
		minNs = time.Duration(m.inputMinNs.Load())
	}

	return MetricsSnapshot{
		Inputs:         count,
		InputsFailed:   m.inputFailed.Load(),
		InputAvg:       avg,
		InputMin:       minNs,
		InputMax:       time.Duration(m.inputMaxNs.Load()),
		RecordsRead:    m.recordsRead.Load(),
		RecordsKept:    m.recordsKept.Load(),
		RecordsDropped: m.recordsDropped.Load(),
		StringsMade:    m.stringsMade.Load(),
		StringsFreed:   m.stringsFreed.Load(),
		Borrows:        m.borrows.Load(),
		Releases:       m.releases.Load(),
		Uptime:         time.Since(m.startTime),
	}
}

// MetricsSnapshot is a point-in-time copy of metrics.
type MetricsSnapshot struct {
	Inputs       uint64
	InputsFailed uint64
	InputAvg     time.Duration
	InputMin     time.Duration
	InputMax     time.Duration

	RecordsRead    int64
	RecordsKept    int64
	RecordsDropped int64

	StringsMade  int64
	StringsFreed int64
	Borrows      int64
	Releases     int64

	Uptime time.Duration
}

// DropRate returns the fraction of records dropped by filters.
func (s MetricsSnapshot) DropRate() float64 {
	if s.RecordsRead == 0 {
		return 0
	}
	return float64(s.RecordsDropped) / float64(s.RecordsRead)
}

// LiveStrings returns the number of strings created but never freed.
func (s MetricsSnapshot) LiveStrings() int64 {
	return s.StringsMade - s.StringsFreed
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
