package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nemocake/pantry-planner/models"
)

// CatalogPayload is the catalog provider contract.
type CatalogPayload struct {
	Categories  []models.Category         `json:"categories"`
	Ingredients []models.IngredientRecord `json:"ingredients"`
}

// RecipePayload is the recipe provider contract.
type RecipePayload struct {
	Recipes []models.RecipeRecord `json:"recipes"`
}

// LoadIndex reads the catalog provider JSON file and builds the index.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var payload CatalogPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewIndex(payload.Categories, payload.Ingredients), nil
}

// RecipeBook is the read-only recipe lookup used by the planning and
// nutrition components.
type RecipeBook struct {
	byID    map[string]*models.RecipeRecord
	ordered []*models.RecipeRecord
}

// NewRecipeBook builds a lookup over provider records. Recipes with
// servings < 1 are normalized to 1 so scaling never divides by zero.
func NewRecipeBook(recipes []models.RecipeRecord) *RecipeBook {
	book := &RecipeBook{byID: make(map[string]*models.RecipeRecord, len(recipes))}
	for i := range recipes {
		rec := &recipes[i]
		if rec.Servings < 1 {
			rec.Servings = 1
		}
		book.byID[rec.ID] = rec
		book.ordered = append(book.ordered, rec)
	}
	return book
}

// LoadRecipeBook reads the recipe provider JSON file.
func LoadRecipeBook(path string) (*RecipeBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}
	var payload RecipePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse recipes: %w", err)
	}
	return NewRecipeBook(payload.Recipes), nil
}

// Get returns the recipe for id, or nil when unknown.
func (b *RecipeBook) Get(id string) *models.RecipeRecord {
	return b.byID[id]
}

// All returns every recipe in load order.
func (b *RecipeBook) All() []*models.RecipeRecord {
	return b.ordered
}

// Len returns the number of recipes.
func (b *RecipeBook) Len() int {
	return len(b.ordered)
}
