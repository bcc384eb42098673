// Package mealplan implements the meal calendar store and the reservation
// engine that projects ingredient demand from it. Every derived figure is
// recomputed from current state on each call; nothing is cached.
package mealplan

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nemocake/pantry-planner/catalog"
	"github.com/nemocake/pantry-planner/logger"
	"github.com/nemocake/pantry-planner/models"
	"github.com/nemocake/pantry-planner/pantry"
	"github.com/nemocake/pantry-planner/storage"
)

// DateLayout is the canonical calendar day key format.
const DateLayout = "2006-01-02"

// Action labels a calendar change event.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
	ActionUpdate Action = "update"
	ActionClear  Action = "clear"
	ActionImport Action = "import"
)

// ChangeEvent describes one calendar mutation.
type ChangeEvent struct {
	Action   Action
	Entry    *models.MealEntry
	Snapshot map[string][]models.MealEntry
}

type subscriber struct {
	id int
	fn func(ChangeEvent)
}

// Calendar is the meal-plan store: date key -> ordered entries. Removing the
// last entry of a date removes the date key; no empty buckets persist.
type Calendar struct {
	mu   sync.RWMutex
	days map[string][]*models.MealEntry

	catalog *catalog.Index
	recipes *catalog.RecipeBook
	ledger  *pantry.Ledger
	store   storage.Store
	syncer  storage.SyncScheduler

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
}

// NewCalendar builds the calendar over the recipe book and pantry ledger,
// restoring any persisted snapshot. A failed load starts empty.
func NewCalendar(ix *catalog.Index, recipes *catalog.RecipeBook, ledger *pantry.Ledger, store storage.Store, syncer storage.SyncScheduler) *Calendar {
	if syncer == nil {
		syncer = storage.NopSync{}
	}
	c := &Calendar{
		days:    make(map[string][]*models.MealEntry),
		catalog: ix,
		recipes: recipes,
		ledger:  ledger,
		store:   store,
		syncer:  syncer,
	}
	snap, err := store.LoadCalendar()
	if err != nil {
		logger.Warn("calendar snapshot load failed, starting empty", "error", err)
		return c
	}
	for date, entries := range snap {
		for i := range entries {
			entry := entries[i]
			if recipes.Get(entry.RecipeID) == nil {
				logger.Warn("dropping persisted meal with unknown recipe", "recipe_id", entry.RecipeID)
				continue
			}
			c.days[date] = append(c.days[date], &entry)
		}
		if len(c.days[date]) == 0 {
			delete(c.days, date)
		}
	}
	return c
}

// Subscribe registers a change callback and returns its unsubscribe func.
func (c *Calendar) Subscribe(fn func(ChangeEvent)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// AddMeal appends a planned meal to a date. Servings below 1 are clamped;
// the entry id is process-unique.
func (c *Calendar) AddMeal(date string, recipeID string, mealType models.MealType, servings float64, notes string) (*models.MealEntry, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	if c.recipes.Get(recipeID) == nil {
		return nil, fmt.Errorf("unknown recipe %q", recipeID)
	}
	if servings < 1 {
		servings = 1
	}
	if mealType == "" {
		mealType = models.MealDinner
	}

	entry := &models.MealEntry{
		ID:       uuid.NewString(),
		Date:     date,
		RecipeID: recipeID,
		MealType: mealType,
		Servings: servings,
		Status:   models.ConsumptionPlanned,
		Notes:    notes,
	}

	c.mu.Lock()
	c.days[date] = append(c.days[date], entry)
	result := *entry
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.persist(snapshot)
	c.notify(ChangeEvent{Action: ActionAdd, Entry: &result, Snapshot: snapshot})
	return &result, nil
}

// RemoveMeal deletes an entry by id. A missing id is a no-op returning
// false, not an error. Deleting the last entry of a date removes the date
// key, and reserved totals shrink immediately because nothing is cached.
func (c *Calendar) RemoveMeal(id string) bool {
	c.mu.Lock()
	var removed *models.MealEntry
	for date, entries := range c.days {
		for i, entry := range entries {
			if entry.ID != id {
				continue
			}
			copied := *entry
			removed = &copied
			c.days[date] = append(entries[:i], entries[i+1:]...)
			if len(c.days[date]) == 0 {
				delete(c.days, date)
			}
			break
		}
		if removed != nil {
			break
		}
	}
	if removed == nil {
		c.mu.Unlock()
		return false
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.persist(snapshot)
	c.notify(ChangeEvent{Action: ActionRemove, Entry: removed, Snapshot: snapshot})
	return true
}

// SetConsumption records actual-vs-planned tracking for an entry. Marking
// an entry eaten with no serving count defaults to one serving.
func (c *Calendar) SetConsumption(id string, status models.ConsumptionStatus, consumedServings float64) bool {
	c.mu.Lock()
	var updated *models.MealEntry
	for _, entries := range c.days {
		for _, entry := range entries {
			if entry.ID != id {
				continue
			}
			entry.Status = status
			if status == models.ConsumptionEaten && consumedServings <= 0 {
				consumedServings = 1
			}
			entry.ConsumedServings = consumedServings
			copied := *entry
			updated = &copied
			break
		}
		if updated != nil {
			break
		}
	}
	if updated == nil {
		c.mu.Unlock()
		return false
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.persist(snapshot)
	c.notify(ChangeEvent{Action: ActionUpdate, Entry: updated, Snapshot: snapshot})
	return true
}

// ClearRange removes every date bucket in the inclusive range and returns
// the number of entries removed. Empty bounds mean open-ended.
func (c *Calendar) ClearRange(start, end string) int {
	c.mu.Lock()
	removed := 0
	for date, entries := range c.days {
		if inRange(date, start, end) {
			removed += len(entries)
			delete(c.days, date)
		}
	}
	if removed == 0 {
		c.mu.Unlock()
		return 0
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.persist(snapshot)
	c.notify(ChangeEvent{Action: ActionClear, Snapshot: snapshot})
	return removed
}

// MealsOn returns copies of the entries for a date, in insertion order.
func (c *Calendar) MealsOn(date string) []models.MealEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries := c.days[date]
	out := make([]models.MealEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, *e)
	}
	return out
}

// Dates returns the dates that currently have entries, sorted ascending.
func (c *Calendar) Dates() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dates := make([]string, 0, len(c.days))
	for d := range c.days {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// All returns a snapshot of the whole calendar.
func (c *Calendar) All() map[string][]models.MealEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Len returns the total number of entries.
func (c *Calendar) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, entries := range c.days {
		n += len(entries)
	}
	return n
}

func (c *Calendar) snapshotLocked() map[string][]models.MealEntry {
	snap := make(map[string][]models.MealEntry, len(c.days))
	for date, entries := range c.days {
		out := make([]models.MealEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, *e)
		}
		snap[date] = out
	}
	return snap
}

// inRange reports date within [start, end]; empty bounds are open.
// Day keys compare correctly as strings.
func inRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

func (c *Calendar) persist(snapshot map[string][]models.MealEntry) {
	if err := c.store.SaveCalendar(storage.CalendarSnapshot(snapshot)); err != nil {
		logger.Error("calendar snapshot save failed", "error", err)
	}
	c.syncer.SchedulePush(storage.KeyCalendar)
}

func (c *Calendar) notify(ev ChangeEvent) {
	c.subMu.Lock()
	subs := append([]subscriber(nil), c.subs...)
	c.subMu.Unlock()
	for _, s := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("calendar subscriber panicked", "panic", r)
				}
			}()
			s.fn(ev)
		}()
	}
}
