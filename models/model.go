package models

import "time"

// Macros is the fixed set of tracked nutrients. Values are absolute amounts;
// on an IngredientRecord they are per 100g.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// MacroNames lists the tracked macros in display order.
var MacroNames = []string{"calories", "protein", "carbs", "fat", "fiber"}

// Value returns the named macro amount. Unknown names return 0.
func (m Macros) Value(name string) float64 {
	switch name {
	case "calories":
		return m.Calories
	case "protein":
		return m.Protein
	case "carbs":
		return m.Carbs
	case "fat":
		return m.Fat
	case "fiber":
		return m.Fiber
	}
	return 0
}

// Add accumulates another macro set into m, scaled by factor.
func (m *Macros) Add(other Macros, factor float64) {
	m.Calories += other.Calories * factor
	m.Protein += other.Protein * factor
	m.Carbs += other.Carbs * factor
	m.Fat += other.Fat * factor
	m.Fiber += other.Fiber * factor
}

// Scale returns a copy of m with every macro multiplied by factor.
func (m Macros) Scale(factor float64) Macros {
	return Macros{
		Calories: m.Calories * factor,
		Protein:  m.Protein * factor,
		Carbs:    m.Carbs * factor,
		Fat:      m.Fat * factor,
		Fiber:    m.Fiber * factor,
	}
}

// IsZero reports whether every macro is zero.
func (m Macros) IsZero() bool {
	return m.Calories == 0 && m.Protein == 0 && m.Carbs == 0 && m.Fat == 0 && m.Fiber == 0
}

// Category groups catalog ingredients for browsing and shopping-list sorting.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// IngredientRecord is immutable reference data owned by the catalog.
// Nutrition, when present, is per 100g.
type IngredientRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	DefaultUnit string   `json:"default_unit"`
	Aliases     []string `json:"aliases,omitempty"`
	SearchTerms []string `json:"search_terms,omitempty"`
	Nutrition   *Macros  `json:"nutrition,omitempty"`
}

// RecipeIngredient is one line of a recipe's ingredient list.
type RecipeIngredient struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	Optional     bool    `json:"optional,omitempty"`
}

// RecipeRecord is immutable reference data owned by the recipe provider.
type RecipeRecord struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Servings    int                `json:"servings"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Cuisine     string             `json:"cuisine,omitempty"`
	Difficulty  string             `json:"difficulty,omitempty"`
	MealTypes   []string           `json:"meal_types,omitempty"`
}

// PantryEntry is the on-hand stock for one ingredient. One entry per
// ingredient id; quantity is never negative.
type PantryEntry struct {
	IngredientID    string    `json:"ingredient_id"`
	Quantity        float64   `json:"quantity"`
	Unit            string    `json:"unit"`
	StorageLocation string    `json:"storage_location,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MealType classifies a calendar entry.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// ConsumptionStatus tracks actual-vs-planned eating.
type ConsumptionStatus string

const (
	ConsumptionPlanned ConsumptionStatus = "planned"
	ConsumptionEaten   ConsumptionStatus = "eaten"
	ConsumptionSkipped ConsumptionStatus = "skipped"
)

// MealEntry is one planned meal on the calendar. Servings scales the recipe
// for reservation math; nutritionally each entry counts as one serving in
// planned mode regardless of Servings.
type MealEntry struct {
	ID               string            `json:"id"`
	Date             string            `json:"date"` // YYYY-MM-DD
	RecipeID         string            `json:"recipe_id"`
	MealType         MealType          `json:"meal_type"`
	Servings         float64           `json:"servings"`
	Status           ConsumptionStatus `json:"status,omitempty"`
	ConsumedServings float64           `json:"consumed_servings,omitempty"`
	Notes            string            `json:"notes,omitempty"`
}

// GoalType says whether a target is a ceiling or a floor.
type GoalType string

const (
	GoalLimit   GoalType = "limit"
	GoalMinimum GoalType = "minimum"
)

// NutritionGoal is a per-macro daily target.
type NutritionGoal struct {
	Target float64  `json:"target"`
	Type   GoalType `json:"type"`
}

// Goals maps macro name to its goal. Only the five tracked macros are valid keys.
type Goals map[string]NutritionGoal

// ShoppingListItem is a derived shortage line, never persisted.
type ShoppingListItem struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Category     string  `json:"category"`
	Needed       float64 `json:"needed"`
	Available    float64 `json:"available"`
	Shortage     float64 `json:"shortage"`
}
