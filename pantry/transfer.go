package pantry

import (
	"time"

	"github.com/nemocake/pantry-planner/models"
)

// Export returns the current ledger as a transfer payload.
func (l *Ledger) Export() models.PantryExport {
	entries := l.List()
	items := make([]models.PantryExportItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, models.PantryExportItem{
			IngredientID: e.IngredientID,
			Quantity:     e.Quantity,
			Unit:         e.Unit,
			Storage:      e.StorageLocation,
			Notes:        e.Notes,
		})
	}
	return models.PantryExport{
		Version:    models.ExportVersion,
		ExportedAt: time.Now(),
		Items:      items,
	}
}

// Import applies a transfer payload. Unknown ingredient ids are skipped and
// counted; structural problems come back as a failed result, never a panic
// or an error crossing the module boundary.
func (l *Ledger) Import(payload models.PantryExport, mode models.ImportMode) models.ImportResult {
	if payload.Items == nil {
		return models.ImportResult{Success: false, Error: "payload has no items list"}
	}
	if mode == "" {
		mode = models.ImportMerge
	}

	if mode == models.ImportReplace {
		l.Clear()
	}

	imported, skipped := 0, 0
	for _, item := range payload.Items {
		if !l.catalog.Has(item.IngredientID) {
			skipped++
			continue
		}
		if _, err := l.Set(item.IngredientID, item.Quantity, SetOptions{
			Unit:     item.Unit,
			Location: item.Storage,
			Notes:    item.Notes,
		}); err != nil {
			skipped++
			continue
		}
		imported++
	}

	// one summary event on top of the per-item set events
	l.notify(ChangeEvent{Action: ActionImport, Snapshot: l.List()})

	return models.ImportResult{
		Success:  true,
		Imported: imported,
		Skipped:  skipped,
		Total:    len(payload.Items),
	}
}
