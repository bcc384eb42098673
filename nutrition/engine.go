// Package nutrition normalizes ingredient macros, aggregates recipe, day and
// week totals from the meal calendar, and compares them against goals. Stock
// levels play no part here; only the catalog's nutrition records and the
// calendar matter.
package nutrition

import (
	"math"
	"sync"
	"time"

	"github.com/nemocake/pantry-planner/catalog"
	"github.com/nemocake/pantry-planner/logger"
	"github.com/nemocake/pantry-planner/mealplan"
	"github.com/nemocake/pantry-planner/models"
	"github.com/nemocake/pantry-planner/storage"
)

// Mode selects which entries a day/week total counts.
type Mode string

const (
	// ModePlanned counts every calendar entry as exactly one serving.
	ModePlanned Mode = "planned"
	// ModeActual counts eaten entries at their consumed servings.
	ModeActual Mode = "actual"
)

// Goal status values per macro.
const (
	StatusOver  = "over"
	StatusNear  = "near"
	StatusUnder = "under"
	StatusMet   = "met"
)

// nearThresholdPercent is where a macro flips from under to near.
const nearThresholdPercent = 80

// DefaultGoals is the goal set used before the user configures one.
func DefaultGoals() models.Goals {
	return models.Goals{
		"calories": {Target: 2000, Type: models.GoalLimit},
		"protein":  {Target: 50, Type: models.GoalMinimum},
		"carbs":    {Target: 250, Type: models.GoalLimit},
		"fat":      {Target: 70, Type: models.GoalLimit},
		"fiber":    {Target: 30, Type: models.GoalMinimum},
	}
}

// Engine computes nutrition aggregates over the catalog, recipe book and
// meal calendar. Goals are the only state it owns.
type Engine struct {
	catalog  *catalog.Index
	recipes  *catalog.RecipeBook
	calendar *mealplan.Calendar
	store    storage.Store
	syncer   storage.SyncScheduler

	mu    sync.RWMutex
	goals models.Goals
}

// NewEngine builds the engine, restoring persisted goals or falling back to
// defaults.
func NewEngine(ix *catalog.Index, recipes *catalog.RecipeBook, calendar *mealplan.Calendar, store storage.Store, syncer storage.SyncScheduler) *Engine {
	if syncer == nil {
		syncer = storage.NopSync{}
	}
	e := &Engine{
		catalog:  ix,
		recipes:  recipes,
		calendar: calendar,
		store:    store,
		syncer:   syncer,
		goals:    DefaultGoals(),
	}
	goals, err := store.LoadGoals()
	if err != nil {
		logger.Warn("goals snapshot load failed, using defaults", "error", err)
		return e
	}
	if goals != nil {
		e.goals = goals
	}
	return e
}

// Goals returns a copy of the current goal set.
func (e *Engine) Goals() models.Goals {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(models.Goals, len(e.goals))
	for k, v := range e.goals {
		out[k] = v
	}
	return out
}

// SetGoals replaces the goal set. Macros with non-positive targets are
// dropped; unknown macro names are ignored.
func (e *Engine) SetGoals(goals models.Goals) models.Goals {
	cleaned := make(models.Goals)
	for _, name := range models.MacroNames {
		goal, ok := goals[name]
		if !ok || goal.Target <= 0 {
			continue
		}
		if goal.Type != models.GoalLimit && goal.Type != models.GoalMinimum {
			goal.Type = models.GoalLimit
		}
		cleaned[name] = goal
	}

	e.mu.Lock()
	e.goals = cleaned
	e.mu.Unlock()

	if err := e.store.SaveGoals(cleaned); err != nil {
		logger.Error("goals snapshot save failed", "error", err)
	}
	e.syncer.SchedulePush(storage.KeyGoals)
	return e.Goals()
}

// IngredientNutrition returns the macro contribution of one recipe line:
// the quantity converted to grams through the heuristic table, scaled
// against the ingredient's per-100g record. Ingredients without a record
// contribute zero.
func (e *Engine) IngredientNutrition(ing models.RecipeIngredient, rec *models.IngredientRecord) models.Macros {
	if rec == nil || rec.Nutrition == nil {
		return models.Macros{}
	}
	grams := toGrams(ing.Quantity, ing.Unit)
	return rec.Nutrition.Scale(grams / 100)
}

// IngredientBreakdown names one ingredient's share of a recipe's macros.
type IngredientBreakdown struct {
	IngredientID string        `json:"ingredient_id"`
	Name         string        `json:"name"`
	Macros       models.Macros `json:"macros"`
	HasData      bool          `json:"has_data"`
}

// RecipeNutrition is a recipe's aggregate macro picture.
type RecipeNutrition struct {
	Total      models.Macros         `json:"total"`
	PerServing models.Macros         `json:"per_serving"`
	Breakdown  []IngredientBreakdown `json:"breakdown"`
	HasData    bool                  `json:"has_data"`
}

// ForRecipe sums every ingredient contribution and derives per-serving
// figures. HasData is false when no ingredient carried a nutrition record.
func (e *Engine) ForRecipe(recipe *models.RecipeRecord) RecipeNutrition {
	result := RecipeNutrition{Breakdown: []IngredientBreakdown{}}
	if recipe == nil {
		return result
	}
	for _, ing := range recipe.Ingredients {
		rec := e.catalog.Get(ing.IngredientID)
		macros := e.IngredientNutrition(ing, rec)
		hasData := rec != nil && rec.Nutrition != nil
		name := ing.IngredientID
		if rec != nil {
			name = rec.Name
		}
		result.Breakdown = append(result.Breakdown, IngredientBreakdown{
			IngredientID: ing.IngredientID,
			Name:         name,
			Macros:       macros,
			HasData:      hasData,
		})
		if hasData {
			result.HasData = true
			result.Total.Add(macros, 1)
		}
	}
	servings := float64(recipe.Servings)
	if servings < 1 {
		servings = 1
	}
	result.PerServing = result.Total.Scale(1 / servings)
	return result
}

// MacroReport compares one macro's total against its goal.
type MacroReport struct {
	Name    string          `json:"name"`
	Total   float64         `json:"total"`
	Target  float64         `json:"target"`
	Type    models.GoalType `json:"type"`
	Percent int             `json:"percent"`
	Status  string          `json:"status"`
}

// DaySummary is one day's nutrition picture against goals.
type DaySummary struct {
	Date      string        `json:"date"`
	Mode      Mode          `json:"mode"`
	Total     models.Macros `json:"total"`
	MealCount int           `json:"meal_count"`
	Goals     models.Goals  `json:"goals"`
	Reports   []MacroReport `json:"reports"`
}

// DayTotal aggregates macros for one date. Planned mode counts one serving
// per entry; actual mode counts eaten entries at their consumed servings.
func (e *Engine) DayTotal(date string, mode Mode) DaySummary {
	total, count := e.consumedOn(date, mode)
	summary := DaySummary{
		Date:      date,
		Mode:      mode,
		Total:     total,
		MealCount: count,
		Goals:     e.Goals(),
	}
	summary.Reports = e.reportAgainst(summary.Goals, total, 1)
	return summary
}

// consumedOn sums per-serving macros over the date's qualifying entries.
func (e *Engine) consumedOn(date string, mode Mode) (models.Macros, int) {
	var total models.Macros
	count := 0
	for _, entry := range e.calendar.MealsOn(date) {
		recipe := e.recipes.Get(entry.RecipeID)
		if recipe == nil {
			continue
		}
		perServing := e.ForRecipe(recipe).PerServing

		switch mode {
		case ModeActual:
			if entry.Status != models.ConsumptionEaten {
				continue
			}
			servings := entry.ConsumedServings
			if servings <= 0 {
				servings = 1
			}
			total.Add(perServing, servings)
		default:
			// planned: each entry is exactly one nutritional serving
			total.Add(perServing, 1)
		}
		count++
	}
	return total, count
}

// reportAgainst builds per-macro reports; goalScale is 1 for days, 7 for
// weeks.
func (e *Engine) reportAgainst(goals models.Goals, total models.Macros, goalScale float64) []MacroReport {
	reports := make([]MacroReport, 0, len(goals))
	for _, name := range models.MacroNames {
		goal, ok := goals[name]
		if !ok {
			continue
		}
		target := goal.Target * goalScale
		value := total.Value(name)
		percent := int(math.Round(100 * value / target))

		var status string
		switch {
		case value > target:
			if goal.Type == models.GoalLimit {
				status = StatusOver
			} else {
				status = StatusMet
			}
		case value >= target:
			if goal.Type == models.GoalLimit {
				status = StatusNear
			} else {
				status = StatusMet
			}
		case percent >= nearThresholdPercent:
			status = StatusNear
		default:
			status = StatusUnder
		}

		reports = append(reports, MacroReport{
			Name:    name,
			Total:   value,
			Target:  target,
			Type:    goal.Type,
			Percent: percent,
			Status:  status,
		})
	}
	return reports
}

// RemainingBudget is the per-macro room left for a date, always
// max(0, target - consumed): headroom for limits, shortfall-to-target for
// minimums. Consumption is the planned-mode day total.
func (e *Engine) RemainingBudget(date string) map[string]float64 {
	total, _ := e.consumedOn(date, ModePlanned)
	remaining := make(map[string]float64)
	for name, goal := range e.Goals() {
		remaining[name] = math.Max(0, goal.Target-total.Value(name))
	}
	return remaining
}

// WeekSummary aggregates seven days from a start date.
type WeekSummary struct {
	StartDate    string        `json:"start_date"`
	Mode         Mode          `json:"mode"`
	Total        models.Macros `json:"total"`
	DailyAverage models.Macros `json:"daily_average"`
	DaysWithData int           `json:"days_with_data"`
	MealCount    int           `json:"meal_count"`
	Goals        models.Goals  `json:"goals"` // weekly targets, daily x 7
	Reports      []MacroReport `json:"reports"`
}

// WeekTotal sums DayTotal over the 7 dates starting at start. The daily
// average divides by the number of days that had qualifying entries, or by
// 7 when none did.
func (e *Engine) WeekTotal(start string, mode Mode) WeekSummary {
	summary := WeekSummary{StartDate: start, Mode: mode}

	startDay, err := time.Parse(mealplan.DateLayout, start)
	if err != nil {
		return summary
	}
	for i := 0; i < 7; i++ {
		date := startDay.AddDate(0, 0, i).Format(mealplan.DateLayout)
		total, count := e.consumedOn(date, mode)
		if count > 0 {
			summary.DaysWithData++
			summary.MealCount += count
			summary.Total.Add(total, 1)
		}
	}

	divisor := float64(summary.DaysWithData)
	if divisor == 0 {
		divisor = 7
	}
	summary.DailyAverage = summary.Total.Scale(1 / divisor)

	daily := e.Goals()
	weekly := make(models.Goals, len(daily))
	for name, goal := range daily {
		weekly[name] = models.NutritionGoal{Target: goal.Target * 7, Type: goal.Type}
	}
	summary.Goals = weekly
	summary.Reports = e.reportAgainst(daily, summary.Total, 7)
	return summary
}

// MacroExcess names a limit-type macro a candidate recipe would push past
// the day's remaining budget.
type MacroExcess struct {
	Name       string  `json:"name"`
	PerServing float64 `json:"per_serving"`
	Remaining  float64 `json:"remaining"`
}

// FitResult is the answer to "does one serving of this still fit today".
type FitResult struct {
	Fits      bool          `json:"fits"`
	Exceeding []MacroExcess `json:"exceeding"`
}

// FitsBudget compares a recipe's per-serving macros against the date's
// remaining budget. Only limit-type goals can report an excess; a recipe
// without nutrition data always fits.
func (e *Engine) FitsBudget(recipe *models.RecipeRecord, date string) FitResult {
	result := FitResult{Fits: true, Exceeding: []MacroExcess{}}
	nutrition := e.ForRecipe(recipe)
	if !nutrition.HasData {
		return result
	}

	remaining := e.RemainingBudget(date)
	goals := e.Goals()
	for _, name := range models.MacroNames {
		goal, ok := goals[name]
		if !ok || goal.Type != models.GoalLimit {
			continue
		}
		perServing := nutrition.PerServing.Value(name)
		if perServing > remaining[name] {
			result.Fits = false
			result.Exceeding = append(result.Exceeding, MacroExcess{
				Name:       name,
				PerServing: perServing,
				Remaining:  remaining[name],
			})
		}
	}
	return result
}
