package reconcile

import (
	"sort"
	"sync"

	"github.com/callvault/callvault/internal/recording"
)

// Ledger is the session-scoped set of recording names known to exist in
// the cloud store. It is rebuilt from a full cloud listing at the start of
// each sync cycle and extended in-memory as uploads succeed within that
// cycle. Absence of a name from the ledger is the sole upload trigger;
// a present name is never re-uploaded.
//
// The sync engine is the only writer; reads are safe from any goroutine.
type Ledger struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{names: make(map[string]struct{})}
}

// Rebuild replaces the ledger contents with the names of the given cloud
// records. The cloud listing is authoritative; in-memory state from a
// previous cycle is discarded.
func (l *Ledger) Rebuild(cloud []recording.FileRecord) {
	names := make(map[string]struct{}, len(cloud))
	for _, f := range cloud {
		names[f.Name] = struct{}{}
	}

	l.mu.Lock()
	l.names = names
	l.mu.Unlock()
}

// Add records a name as uploaded within the current cycle.
func (l *Ledger) Add(name string) {
	l.mu.Lock()
	l.names[name] = struct{}{}
	l.mu.Unlock()
}

// Remove forgets a name, typically after its cloud object was deleted.
func (l *Ledger) Remove(name string) {
	l.mu.Lock()
	delete(l.names, name)
	l.mu.Unlock()
}

// Has reports whether the name is known to exist in the cloud store.
func (l *Ledger) Has(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.names[name]
	return ok
}

// Len returns the number of known names.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.names)
}

// Names returns the known names, sorted for deterministic output.
func (l *Ledger) Names() []string {
	l.mu.RLock()
	out := make([]string, 0, len(l.names))
	for n := range l.names {
		out = append(out, n)
	}
	l.mu.RUnlock()

	sort.Strings(out)
	return out
}
