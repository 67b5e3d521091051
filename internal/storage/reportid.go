package storage

import (
	"fmt"
	"sync"
	"time"
)

// reportIDTimeLayout is the sortable UTC timestamp embedded in identifiers,
// matching the persisted file naming scheme (eval_report_<id>.json).
const reportIDTimeLayout = "20060102_150405"

// ReportIDGenerator mints monotonically increasing, lexicographically
// sortable report identifiers of the form YYYYMMDD_HHMMSS_NNNNNN. The
// sequence suffix disambiguates same-second writes, and a clock that moves
// backwards can never produce an identifier below one already issued.
type ReportIDGenerator struct {
	mu     sync.Mutex
	now    func() time.Time
	lastTS string
	seq    uint64
}

// NewReportIDGenerator creates a generator using the system clock.
func NewReportIDGenerator() *ReportIDGenerator {
	return &ReportIDGenerator{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock for deterministic identifiers.
func (g *ReportIDGenerator) WithClock(now func() time.Time) *ReportIDGenerator {
	g.now = now
	return g
}

// Next returns the next identifier. Safe for concurrent use.
func (g *ReportIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ts := g.now().UTC().Format(reportIDTimeLayout)
	if ts < g.lastTS {
		ts = g.lastTS
	}
	g.lastTS = ts
	g.seq++
	return fmt.Sprintf("%s_%06d", ts, g.seq)
}
