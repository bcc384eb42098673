// Package pantry implements the on-hand inventory ledger: one entry per
// catalog ingredient, synchronous change notification, best-effort
// persistence after every mutation.
package pantry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nemocake/pantry-planner/catalog"
	"github.com/nemocake/pantry-planner/logger"
	"github.com/nemocake/pantry-planner/models"
	"github.com/nemocake/pantry-planner/storage"
)

// Action labels a change event.
type Action string

const (
	ActionSet    Action = "set"
	ActionRemove Action = "remove"
	ActionClear  Action = "clear"
	ActionImport Action = "import"
)

// ChangeEvent describes one ledger mutation. Snapshot is the full state
// after the mutation; Item is the affected entry when the action has one.
type ChangeEvent struct {
	Action   Action
	Item     *models.PantryEntry
	Snapshot []models.PantryEntry
}

type subscriber struct {
	id int
	fn func(ChangeEvent)
}

// Ledger is the pantry store. All methods are safe for concurrent use;
// mutations are atomic and notify subscribers synchronously in
// registration order before returning.
type Ledger struct {
	mu      sync.RWMutex
	entries map[string]*models.PantryEntry

	catalog *catalog.Index
	store   storage.Store
	syncer  storage.SyncScheduler

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
}

// SetOptions carry the non-quantity fields of a Set call. Empty strings
// leave existing values in place on update; on create an empty unit falls
// back to the ingredient's default unit.
type SetOptions struct {
	Unit     string
	Location string
	Notes    string
}

// NewLedger builds a ledger over the catalog, restoring any persisted
// snapshot. A failed load starts empty rather than failing startup.
func NewLedger(ix *catalog.Index, store storage.Store, syncer storage.SyncScheduler) *Ledger {
	if syncer == nil {
		syncer = storage.NopSync{}
	}
	l := &Ledger{
		entries: make(map[string]*models.PantryEntry),
		catalog: ix,
		store:   store,
		syncer:  syncer,
	}
	snap, err := store.LoadPantry()
	if err != nil {
		logger.Warn("pantry snapshot load failed, starting empty", "error", err)
		return l
	}
	for i := range snap {
		entry := snap[i]
		if !ix.Has(entry.IngredientID) {
			logger.Warn("dropping persisted pantry entry with unknown ingredient", "ingredient_id", entry.IngredientID)
			continue
		}
		l.entries[entry.IngredientID] = &entry
	}
	return l
}

// Subscribe registers a change callback and returns its unsubscribe func.
func (l *Ledger) Subscribe(fn func(ChangeEvent)) func() {
	l.subMu.Lock()
	defer l.subMu.Unlock()
	id := l.nextSub
	l.nextSub++
	l.subs = append(l.subs, subscriber{id: id, fn: fn})
	return func() {
		l.subMu.Lock()
		defer l.subMu.Unlock()
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

// Set creates or overwrites the entry for an ingredient. Negative
// quantities are clamped to zero; unknown ingredient ids are rejected so
// every entry stays resolvable against the catalog. The original creation
// timestamp survives updates.
func (l *Ledger) Set(ingredientID string, quantity float64, opts SetOptions) (*models.PantryEntry, error) {
	rec := l.catalog.Get(ingredientID)
	if rec == nil {
		return nil, fmt.Errorf("unknown ingredient %q", ingredientID)
	}
	if quantity < 0 {
		quantity = 0
	}

	l.mu.Lock()
	now := time.Now()
	entry, exists := l.entries[ingredientID]
	if !exists {
		unit := opts.Unit
		if unit == "" {
			unit = rec.DefaultUnit
		}
		entry = &models.PantryEntry{
			IngredientID: ingredientID,
			Unit:         unit,
			CreatedAt:    now,
		}
		l.entries[ingredientID] = entry
	}
	entry.Quantity = quantity
	if opts.Unit != "" {
		entry.Unit = opts.Unit
	}
	if opts.Location != "" {
		entry.StorageLocation = opts.Location
	}
	if opts.Notes != "" {
		entry.Notes = opts.Notes
	}
	entry.UpdatedAt = now
	result := *entry
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	l.persist(snapshot)
	l.notify(ChangeEvent{Action: ActionSet, Item: &result, Snapshot: snapshot})
	return &result, nil
}

// Remove deletes the entry for an ingredient. Returns false when absent.
func (l *Ledger) Remove(ingredientID string) bool {
	l.mu.Lock()
	entry, ok := l.entries[ingredientID]
	if !ok {
		l.mu.Unlock()
		return false
	}
	removed := *entry
	delete(l.entries, ingredientID)
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	l.persist(snapshot)
	l.notify(ChangeEvent{Action: ActionRemove, Item: &removed, Snapshot: snapshot})
	return true
}

// Clear removes every entry.
func (l *Ledger) Clear() {
	l.mu.Lock()
	l.entries = make(map[string]*models.PantryEntry)
	l.mu.Unlock()

	l.persist(nil)
	l.notify(ChangeEvent{Action: ActionClear, Snapshot: []models.PantryEntry{}})
}

// Get returns a copy of the entry for an ingredient, or nil.
func (l *Ledger) Get(ingredientID string) *models.PantryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entry, ok := l.entries[ingredientID]
	if !ok {
		return nil
	}
	out := *entry
	return &out
}

// OnHand returns the stored quantity for an ingredient, zero when absent.
func (l *Ledger) OnHand(ingredientID string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if entry, ok := l.entries[ingredientID]; ok {
		return entry.Quantity
	}
	return 0
}

// List returns all entries sorted by ingredient id.
func (l *Ledger) List() []models.PantryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

// IDSet returns the set of ingredient ids with any positive quantity,
// which is what presence-based match scoring consumes.
func (l *Ledger) IDSet() map[string]struct{} {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make(map[string]struct{}, len(l.entries))
	for id, entry := range l.entries {
		if entry.Quantity > 0 {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *Ledger) snapshotLocked() []models.PantryEntry {
	snap := make([]models.PantryEntry, 0, len(l.entries))
	for _, entry := range l.entries {
		snap = append(snap, *entry)
	}
	sort.Slice(snap, func(i, j int) bool { return snap[i].IngredientID < snap[j].IngredientID })
	return snap
}

// persist saves the snapshot and schedules a remote push. Failures are
// logged, never surfaced: the in-memory mutation already happened and the
// UI must not lose it because disk failed.
func (l *Ledger) persist(snapshot []models.PantryEntry) {
	if err := l.store.SavePantry(storage.PantrySnapshot(snapshot)); err != nil {
		logger.Error("pantry snapshot save failed", "error", err)
	}
	l.syncer.SchedulePush(storage.KeyPantry)
}

// notify invokes subscribers in registration order. A panicking subscriber
// is recovered and logged so it cannot starve the rest.
func (l *Ledger) notify(ev ChangeEvent) {
	l.subMu.Lock()
	subs := append([]subscriber(nil), l.subs...)
	l.subMu.Unlock()
	for _, s := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("pantry subscriber panicked", "panic", r)
				}
			}()
			s.fn(ev)
		}()
	}
}
