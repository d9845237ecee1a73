package catalog

import (
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsfloor/opevents/pkg/domain/model/config"
)

// Store holds the authoritative in-process impact/cause catalog. It is the
// only shared mutable state in the core: administrator edits and validator
// reads interleave, and a completed write must be visible to the next read.
// Every mutation bumps a monotonically increasing version counter so a
// capture form opened after an edit always sees the change.
//
// Entries are soft-deactivated, never deleted: historical records keep a
// displayable label while the entry disappears from selection lists.
type Store struct {
	mu      sync.RWMutex
	impacts []*impactEntry
	version uint64
}

type impactEntry struct {
	label  string
	active bool
	causes []*causeEntry
}

type causeEntry struct {
	label  string
	active bool
}

// New creates an empty catalog store
func New() *Store {
	return &Store{}
}

// NewFromConfig builds a store from a validated catalog file
func NewFromConfig(cfg *config.Catalog) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid catalog configuration")
	}

	s := New()
	for _, imp := range cfg.Impacts {
		entry := &impactEntry{
			label:  strings.TrimSpace(imp.Label),
			active: imp.Active,
		}
		for _, c := range imp.Causes {
			entry.causes = append(entry.causes, &causeEntry{
				label:  strings.TrimSpace(c.Label),
				active: c.Active,
			})
		}
		s.impacts = append(s.impacts, entry)
	}
	return s, nil
}

// Version returns the current catalog version. The counter starts at zero
// and increases on every successful mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// findImpact must be called with the lock held.
func (s *Store) findImpact(label string) *impactEntry {
	key := normalize(label)
	for _, imp := range s.impacts {
		if normalize(imp.label) == key {
			return imp
		}
	}
	return nil
}

// findCause must be called with the lock held.
func (e *impactEntry) findCause(label string) *causeEntry {
	key := normalize(label)
	for _, c := range e.causes {
		if normalize(c.label) == key {
			return c
		}
	}
	return nil
}

// ListActiveImpactTypes returns the labels of active impact types that have
// at least one active cause, in insertion order.
func (s *Store) ListActiveImpactTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	labels := make([]string, 0, len(s.impacts))
	for _, imp := range s.impacts {
		if !imp.active {
			continue
		}
		hasActiveCause := false
		for _, c := range imp.causes {
			if c.active {
				hasActiveCause = true
				break
			}
		}
		if hasActiveCause {
			labels = append(labels, imp.label)
		}
	}
	return labels
}

// ListActiveCauses returns the active cause labels under the given impact
// type, in insertion order. An impact type that exists but is inactive (or
// has no active causes) yields an empty list; an unknown impact type yields
// ErrNotFound.
func (s *Store) ListActiveCauses(impactType string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	imp := s.findImpact(impactType)
	if imp == nil {
		return nil, goerr.Wrap(ErrNotFound, "unknown impact type",
			goerr.V(ImpactTypeKey, impactType))
	}

	labels := []string{}
	if !imp.active {
		return labels, nil
	}
	for _, c := range imp.causes {
		if c.active {
			labels = append(labels, c.label)
		}
	}
	return labels, nil
}

// UpsertImpactType adds a new impact type or reactivates an existing one.
// A label that differs from an existing entry only by casing or surrounding
// whitespace is rejected: ambiguous casing must not create two logically
// identical entries.
func (s *Store) UpsertImpactType(label string) error {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return goerr.Wrap(ErrEmptyLabel, "impact type label is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if imp := s.findImpact(trimmed); imp != nil {
		if imp.label != trimmed {
			return goerr.Wrap(ErrDuplicateEntry, "impact type differs only by casing",
				goerr.V(LabelKey, trimmed), goerr.V("existing", imp.label))
		}
		imp.active = true
		s.version++
		return nil
	}

	s.impacts = append(s.impacts, &impactEntry{label: trimmed, active: true})
	s.version++
	return nil
}

// UpsertCause adds or updates a cause under an impact type. The parent must
// exist; the cause's active flag is set as given. Case-ambiguous duplicates
// are rejected the same way as for impact types.
func (s *Store) UpsertCause(impactType, causeLabel string, active bool) error {
	trimmed := strings.TrimSpace(causeLabel)
	if trimmed == "" {
		return goerr.Wrap(ErrEmptyLabel, "cause label is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	imp := s.findImpact(impactType)
	if imp == nil {
		return goerr.Wrap(ErrNotFound, "unknown impact type",
			goerr.V(ImpactTypeKey, impactType))
	}

	if c := imp.findCause(trimmed); c != nil {
		if c.label != trimmed {
			return goerr.Wrap(ErrDuplicateEntry, "cause differs only by casing",
				goerr.V(ImpactTypeKey, imp.label),
				goerr.V(LabelKey, trimmed), goerr.V("existing", c.label))
		}
		c.active = active
		s.version++
		return nil
	}

	imp.causes = append(imp.causes, &causeEntry{label: trimmed, active: active})
	s.version++
	return nil
}

// RenameImpactType renames an impact type, preserving its causes and
// position. The new label must not collide with another entry.
func (s *Store) RenameImpactType(oldLabel, newLabel string) error {
	trimmed := strings.TrimSpace(newLabel)
	if trimmed == "" {
		return goerr.Wrap(ErrEmptyLabel, "impact type label is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	imp := s.findImpact(oldLabel)
	if imp == nil {
		return goerr.Wrap(ErrNotFound, "unknown impact type",
			goerr.V(ImpactTypeKey, oldLabel))
	}
	if other := s.findImpact(trimmed); other != nil && other != imp {
		return goerr.Wrap(ErrDuplicateEntry, "impact type already exists",
			goerr.V(LabelKey, trimmed))
	}

	imp.label = trimmed
	s.version++
	return nil
}

// RenameCause renames a cause within an impact type.
func (s *Store) RenameCause(impactType, oldLabel, newLabel string) error {
	trimmed := strings.TrimSpace(newLabel)
	if trimmed == "" {
		return goerr.Wrap(ErrEmptyLabel, "cause label is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	imp := s.findImpact(impactType)
	if imp == nil {
		return goerr.Wrap(ErrNotFound, "unknown impact type",
			goerr.V(ImpactTypeKey, impactType))
	}
	c := imp.findCause(oldLabel)
	if c == nil {
		return goerr.Wrap(ErrNotFound, "unknown cause",
			goerr.V(ImpactTypeKey, imp.label), goerr.V(CauseKey, oldLabel))
	}
	if other := imp.findCause(trimmed); other != nil && other != c {
		return goerr.Wrap(ErrDuplicateEntry, "cause already exists",
			goerr.V(ImpactTypeKey, imp.label), goerr.V(LabelKey, trimmed))
	}

	c.label = trimmed
	s.version++
	return nil
}

// DeactivateImpactType soft-deactivates an impact type. Its causes keep
// their own flags but stop being selectable while the parent is inactive.
// Deactivating twice is not an error.
func (s *Store) DeactivateImpactType(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	imp := s.findImpact(label)
	if imp == nil {
		return goerr.Wrap(ErrNotFound, "unknown impact type",
			goerr.V(ImpactTypeKey, label))
	}

	imp.active = false
	s.version++
	return nil
}

// DeactivateCause soft-deactivates a single cause. Idempotent.
func (s *Store) DeactivateCause(impactType, causeLabel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	imp := s.findImpact(impactType)
	if imp == nil {
		return goerr.Wrap(ErrNotFound, "unknown impact type",
			goerr.V(ImpactTypeKey, impactType))
	}
	c := imp.findCause(causeLabel)
	if c == nil {
		return goerr.Wrap(ErrNotFound, "unknown cause",
			goerr.V(ImpactTypeKey, imp.label), goerr.V(CauseKey, causeLabel))
	}

	c.active = false
	s.version++
	return nil
}

// HasImpactType reports whether the impact type exists, active or not
func (s *Store) HasImpactType(label string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findImpact(label) != nil
}

// IsActiveImpactType reports whether the impact type exists and is active
func (s *Store) IsActiveImpactType(label string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	imp := s.findImpact(label)
	return imp != nil && imp.active
}

// IsActiveCause reports whether the cause is selectable: both the cause and
// its parent impact type must be active.
func (s *Store) IsActiveCause(impactType, cause string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	imp := s.findImpact(impactType)
	if imp == nil || !imp.active {
		return false
	}
	c := imp.findCause(cause)
	return c != nil && c.active
}

// Snapshot exports the full catalog, including inactive entries, in
// insertion order.
func (s *Store) Snapshot() *config.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := &config.Catalog{}
	for _, imp := range s.impacts {
		entry := config.ImpactEntry{Label: imp.label, Active: imp.active}
		for _, c := range imp.causes {
			entry.Causes = append(entry.Causes, config.CauseEntry{
				Label:  c.label,
				Active: c.active,
			})
		}
		out.Impacts = append(out.Impacts, entry)
	}
	return out
}
