package opt

import (
	"sort"
	"sync"
	"time"
)

// RunRecord captures the outcome of one engine invocation for the admin
// metrics endpoint. Records live in process memory only.
type RunRecord struct {
	RunID      string
	Kind       string // route, assignment, adjustment
	Algorithm  string
	Points     int
	DistanceKm float64
	DurationMs int64
	Status     string // ok, failed
	StartedAt  time.Time
}

var (
	runMu   sync.Mutex
	runByID = map[string]RunRecord{}
)

// RecordRun stores the record for its run ID, replacing any earlier entry.
func RecordRun(r RunRecord) {
	runMu.Lock()
	runByID[r.RunID] = r
	runMu.Unlock()
}

// Runs returns all recorded runs, most recent first.
func Runs() []RunRecord {
	runMu.Lock()
	defer runMu.Unlock()
	out := make([]RunRecord, 0, len(runByID))
	for _, r := range runByID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out
}
