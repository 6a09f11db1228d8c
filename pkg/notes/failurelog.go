package notes

import "sync"

// failureLog is a bounded record of asset deletions that failed in the
// background. It exists for observability and so a GC pass can confirm the
// assets were reclaimed; entries are dropped oldest-first when full.
type failureLog struct {
	mu    sync.Mutex
	max   int
	items []string
}

func newFailureLog(max int) *failureLog {
	return &failureLog{max: max}
}

func (l *failureLog) add(ref string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = append(l.items, ref)
	if len(l.items) > l.max {
		l.items = l.items[len(l.items)-l.max:]
	}
}

func (l *failureLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.items...)
}

func (l *failureLog) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}
