package contacts

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/callvault/callvault/internal/recording"
)

// Resolver maps normalized phone numbers to contact display names.
// It is built once by Load and read-only afterwards; concurrent reads
// are safe. A Resolver that was never loaded (or whose directory denied
// access) resolves nothing, which makes grouping fall back to the raw
// phone number or "Unknown".
type Resolver struct {
	mu     sync.RWMutex
	byNum  map[string]string
	names  []string
	logger *slog.Logger
}

// NewResolver creates an empty Resolver reading from the given logger.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		byNum:  make(map[string]string),
		logger: logger,
	}
}

// Load fetches the full contact list from the directory and rebuilds the
// number→name mapping. Every normalized number owned by a contact maps to
// that contact's name; if two contacts share a number the later one wins.
// A permission-denied directory leaves the resolver empty and is not an
// error.
func (r *Resolver) Load(ctx context.Context, dir Directory) error {
	list, err := dir.LoadAll(ctx)
	if err != nil {
		if errors.Is(err, ErrPermissionDenied) {
			r.logger.Warn("contact access denied, caller names unavailable")
			r.replace(nil)
			return nil
		}
		return err
	}

	r.replace(list)
	r.logger.Info("contacts loaded",
		slog.Int("contacts", len(list)),
	)
	return nil
}

// replace rebuilds the lookup structures from the given contact list.
func (r *Resolver) replace(list []Contact) {
	byNum := make(map[string]string)
	nameSet := make(map[string]struct{})

	for _, c := range list {
		name := c.Name()
		if name == "" {
			continue
		}
		nameSet[name] = struct{}{}
		for _, raw := range c.PhoneNumbers {
			num := recording.NormalizePhone(raw)
			if num == "" {
				continue
			}
			byNum[num] = name
		}
	}

	names := make([]string, 0, len(nameSet))
	for n := range nameSet {
		names = append(names, n)
	}
	sort.Strings(names)

	r.mu.Lock()
	r.byNum = byNum
	r.names = names
	r.mu.Unlock()
}

// Resolve looks up the display name for a phone number. The number is
// normalized before lookup. Returns "" and false when unknown.
func (r *Resolver) Resolve(phone string) (string, bool) {
	num := recording.NormalizePhone(phone)
	if num == "" {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byNum[num]
	return name, ok
}

// Names returns the sorted, de-duplicated list of loaded contact names.
func (r *Resolver) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
