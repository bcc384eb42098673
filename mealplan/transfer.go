package mealplan

import (
	"time"

	"github.com/google/uuid"

	"github.com/nemocake/pantry-planner/models"
)

// Export returns the current calendar as a transfer payload.
func (c *Calendar) Export() models.CalendarExport {
	return models.CalendarExport{
		Version:    models.ExportVersion,
		ExportedAt: time.Now(),
		Meals:      c.All(),
	}
}

// Import applies a transfer payload. Entries with unknown recipes or
// malformed dates are skipped and counted; a structurally broken payload
// comes back as a failed result rather than an error.
func (c *Calendar) Import(payload models.CalendarExport, mode models.ImportMode) models.ImportResult {
	if payload.Meals == nil {
		return models.ImportResult{Success: false, Error: "payload has no meals map"}
	}
	if mode == "" {
		mode = models.ImportMerge
	}
	if mode == models.ImportReplace {
		c.ClearRange("", "")
	}

	imported, skipped, total := 0, 0, 0

	c.mu.Lock()
	for date, entries := range payload.Meals {
		if _, err := time.Parse(DateLayout, date); err != nil {
			total += len(entries)
			skipped += len(entries)
			continue
		}
		for i := range entries {
			total++
			entry := entries[i]
			if c.recipes.Get(entry.RecipeID) == nil {
				skipped++
				continue
			}
			if entry.ID == "" {
				entry.ID = uuid.NewString()
			}
			entry.Date = date
			if entry.Servings < 1 {
				entry.Servings = 1
			}
			if entry.MealType == "" {
				entry.MealType = models.MealDinner
			}
			c.days[date] = append(c.days[date], &entry)
			imported++
		}
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.persist(snapshot)
	c.notify(ChangeEvent{Action: ActionImport, Snapshot: snapshot})

	return models.ImportResult{
		Success:  true,
		Imported: imported,
		Skipped:  skipped,
		Total:    total,
	}
}
