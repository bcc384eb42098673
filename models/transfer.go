package models

import "time"

// ExportVersion is stamped on every export payload.
const ExportVersion = 1

// ImportMode controls whether an import merges into or replaces current state.
type ImportMode string

const (
	ImportMerge   ImportMode = "merge"
	ImportReplace ImportMode = "replace"
)

// PantryExportItem is one pantry line in the transfer payload.
type PantryExportItem struct {
	IngredientID string  `json:"ingredientId"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	Storage      string  `json:"storage,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// PantryExport is the pantry transfer payload.
type PantryExport struct {
	Version    int                `json:"version"`
	ExportedAt time.Time          `json:"exportedAt,omitempty"`
	Items      []PantryExportItem `json:"items"`
}

// CalendarExport is the meal-calendar transfer payload.
type CalendarExport struct {
	Version    int                    `json:"version"`
	ExportedAt time.Time              `json:"exportedAt,omitempty"`
	Meals      map[string][]MealEntry `json:"meals"`
}

// ImportResult reports what an import did. Unknown ingredient ids are
// skipped and counted, never fatal.
type ImportResult struct {
	Success  bool   `json:"success"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Total    int    `json:"total"`
	Error    string `json:"error,omitempty"`
}
