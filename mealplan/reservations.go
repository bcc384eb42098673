package mealplan

import (
	"math"
	"sort"

	"github.com/nemocake/pantry-planner/logger"
	"github.com/nemocake/pantry-planner/models"
	"github.com/nemocake/pantry-planner/units"
)

// ReservedQuantity is the projected future consumption of an ingredient
// implied by every planned meal across the whole calendar: the sum of
// recipeIngredient.quantity x entry.servings / recipe.servings. Pure demand,
// independent of stock on hand, recomputed fresh on every call.
func (c *Calendar) ReservedQuantity(ingredientID string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reservedLocked(ingredientID)
}

func (c *Calendar) reservedLocked(ingredientID string) float64 {
	var reserved float64
	for _, entries := range c.days {
		for _, entry := range entries {
			recipe := c.recipes.Get(entry.RecipeID)
			if recipe == nil {
				continue
			}
			scale := entry.Servings / float64(recipe.Servings)
			for _, ing := range recipe.Ingredients {
				if ing.IngredientID == ingredientID {
					reserved += ing.Quantity * scale
				}
			}
		}
	}
	return reserved
}

// AvailableQuantity is stock on hand minus reserved quantity, floored at
// zero. Queryable for any ingredient independent of any specific recipe.
func (c *Calendar) AvailableQuantity(ingredientID string) float64 {
	onHand := c.ledger.OnHand(ingredientID)
	return math.Max(0, onHand-c.ReservedQuantity(ingredientID))
}

// Shortfall describes one ingredient gap found by CheckAvailability.
type Shortfall struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Needed       float64 `json:"needed"`
	Available    float64 `json:"available"`
	Short        float64 `json:"short"`
}

// Availability is the quantity-aware answer to "can I actually make this".
type Availability struct {
	CanMake  bool        `json:"can_make"`
	Missing  []Shortfall `json:"missing"`
	Warnings []Shortfall `json:"warnings"`
}

// CheckAvailability evaluates a recipe at the requested servings against
// current availability. Zero availability puts an ingredient in Missing
// with its full need; partial availability produces a Warning with the gap.
// Optional ingredients are always ignored. When the pantry unit cannot be
// converted to the recipe unit the ingredient is assumed sufficient; that
// permissive fallback can hide real shortages and is logged at debug level.
func (c *Calendar) CheckAvailability(recipe *models.RecipeRecord, servings float64) Availability {
	result := Availability{Missing: []Shortfall{}, Warnings: []Shortfall{}}
	if recipe == nil {
		return result
	}
	if servings < 1 {
		servings = float64(recipe.Servings)
	}

	for _, ing := range recipe.Ingredients {
		if ing.Optional {
			continue
		}
		needed := ing.Quantity * servings / float64(recipe.Servings)
		available := c.AvailableQuantity(ing.IngredientID)

		name := ing.IngredientID
		if rec := c.catalogRecord(ing.IngredientID); rec != nil {
			name = rec.Name
		}
		pantryUnit := ing.Unit
		if entry := c.ledger.Get(ing.IngredientID); entry != nil {
			pantryUnit = entry.Unit
		}

		if available <= 0 {
			result.Missing = append(result.Missing, Shortfall{
				IngredientID: ing.IngredientID,
				Name:         name,
				Unit:         ing.Unit,
				Needed:       needed,
				Available:    0,
				Short:        needed,
			})
			continue
		}

		// compare in the recipe's unit space when possible
		comparable, err := units.Convert(available, pantryUnit, ing.Unit)
		if err != nil {
			logger.Debug("assuming sufficient for unconvertible units",
				"ingredient_id", ing.IngredientID, "pantry_unit", pantryUnit, "recipe_unit", ing.Unit)
			continue
		}
		if comparable < needed {
			result.Warnings = append(result.Warnings, Shortfall{
				IngredientID: ing.IngredientID,
				Name:         name,
				Unit:         ing.Unit,
				Needed:       needed,
				Available:    comparable,
				Short:        needed - comparable,
			})
		}
	}

	result.CanMake = len(result.Missing) == 0 && len(result.Warnings) == 0
	return result
}

// ShoppingList aggregates ingredient demand across every meal entry in the
// inclusive date range and compares the aggregate need against current
// on-hand stock (not post-meal availability). Only items with a positive
// shortage are emitted, sorted by category then name.
func (c *Calendar) ShoppingList(start, end string) []models.ShoppingListItem {
	type demand struct {
		qty  float64
		unit string
	}

	c.mu.RLock()
	needs := make(map[string]*demand)
	for date, entries := range c.days {
		if !inRange(date, start, end) {
			continue
		}
		for _, entry := range entries {
			recipe := c.recipes.Get(entry.RecipeID)
			if recipe == nil {
				continue
			}
			scale := entry.Servings / float64(recipe.Servings)
			for _, ing := range recipe.Ingredients {
				needed := ing.Quantity * scale
				d, ok := needs[ing.IngredientID]
				if !ok {
					needs[ing.IngredientID] = &demand{qty: needed, unit: ing.Unit}
					continue
				}
				// fold into the first-seen unit when convertible
				if converted, err := units.Convert(needed, ing.Unit, d.unit); err == nil {
					d.qty += converted
				} else {
					d.qty += needed
				}
			}
		}
	}
	c.mu.RUnlock()

	items := make([]models.ShoppingListItem, 0, len(needs))
	for id, d := range needs {
		onHand := 0.0
		if entry := c.ledger.Get(id); entry != nil {
			if converted, err := units.Convert(entry.Quantity, entry.Unit, d.unit); err == nil {
				onHand = converted
			} else if entry.Quantity > 0 {
				// unconvertible stock: assume it covers the need
				continue
			}
		}
		if d.qty <= onHand {
			continue
		}

		name, category := id, ""
		if rec := c.catalogRecord(id); rec != nil {
			name, category = rec.Name, rec.Category
		}
		items = append(items, models.ShoppingListItem{
			IngredientID: id,
			Name:         name,
			Unit:         d.unit,
			Category:     category,
			Needed:       d.qty,
			Available:    onHand,
			Shortage:     d.qty - onHand,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})
	return items
}

func (c *Calendar) catalogRecord(id string) *models.IngredientRecord {
	if c.catalog == nil {
		return nil
	}
	return c.catalog.Get(id)
}

// PlanStats classifies every entry in a range by availability.
type PlanStats struct {
	TotalMeals   int `json:"total_meals"`
	CanMake      int `json:"can_make"`
	NeedShopping int `json:"need_shopping"`
}

// Stats re-runs CheckAvailability for each entry at that entry's own
// servings. Empty bounds cover the whole calendar.
func (c *Calendar) Stats(start, end string) PlanStats {
	c.mu.RLock()
	type job struct {
		recipeID string
		servings float64
	}
	var jobs []job
	for date, entries := range c.days {
		if !inRange(date, start, end) {
			continue
		}
		for _, entry := range entries {
			jobs = append(jobs, job{recipeID: entry.RecipeID, servings: entry.Servings})
		}
	}
	c.mu.RUnlock()

	stats := PlanStats{TotalMeals: len(jobs)}
	for _, j := range jobs {
		recipe := c.recipes.Get(j.recipeID)
		if recipe == nil {
			continue
		}
		if c.CheckAvailability(recipe, j.servings).CanMake {
			stats.CanMake++
		} else {
			stats.NeedShopping++
		}
	}
	return stats
}
