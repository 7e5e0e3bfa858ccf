package service

import (
	"sync"
	"time"
)

// submissionTTL bounds how long a recorded submission id is remembered.
// Retries arrive within seconds; a day leaves ample slack without letting
// the log grow with every sale forever.
const submissionTTL = 24 * time.Hour

type submissionEntry struct {
	count      int
	recordedAt time.Time
}

// submissionLog remembers which submission ids this process has recorded,
// and the row count returned for each, so a client retry of an already
// recorded sale is acknowledged instead of appended again.
type submissionLog struct {
	mu      sync.Mutex
	entries map[string]submissionEntry
	now     func() time.Time
}

func newSubmissionLog() *submissionLog {
	return &submissionLog{
		entries: make(map[string]submissionEntry),
		now:     time.Now,
	}
}

// Lookup returns the recorded row count for id, if present and not expired
func (l *submissionLog) Lookup(id string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[id]
	if !ok {
		return 0, false
	}
	if l.now().Sub(e.recordedAt) > submissionTTL {
		delete(l.entries, id)
		return 0, false
	}
	return e.count, true
}

// Record stores the row count for id and prunes expired entries
func (l *submissionLog) Record(id string, count int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for k, e := range l.entries {
		if now.Sub(e.recordedAt) > submissionTTL {
			delete(l.entries, k)
		}
	}
	l.entries[id] = submissionEntry{count: count, recordedAt: now}
}
