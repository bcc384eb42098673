package mealplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemocake/pantry-planner/catalog"
	"github.com/nemocake/pantry-planner/models"
	"github.com/nemocake/pantry-planner/pantry"
	"github.com/nemocake/pantry-planner/storage"
)

func testCatalog() *catalog.Index {
	return catalog.NewIndex(
		[]models.Category{{ID: "baking", Name: "Baking"}, {ID: "dairy", Name: "Dairy"}},
		[]models.IngredientRecord{
			{ID: "egg", Name: "Egg", Category: "dairy", DefaultUnit: "piece"},
			{ID: "flour", Name: "Flour", Category: "baking", DefaultUnit: "cup"},
			{ID: "milk", Name: "Milk", Category: "dairy", DefaultUnit: "ml"},
			{ID: "garlic", Name: "Garlic", Category: "produce", DefaultUnit: "clove"},
			{ID: "salt", Name: "Salt", Category: "baking", DefaultUnit: "tsp"},
		},
	)
}

func testRecipes() *catalog.RecipeBook {
	return catalog.NewRecipeBook([]models.RecipeRecord{
		{
			ID: "omelette", Title: "Omelette", Servings: 4,
			Ingredients: []models.RecipeIngredient{
				{IngredientID: "egg", Quantity: 12, Unit: "piece"},
				{IngredientID: "milk", Quantity: 200, Unit: "ml"},
				{IngredientID: "salt", Quantity: 1, Unit: "tsp", Optional: true},
			},
		},
		{
			ID: "pancakes", Title: "Pancakes", Servings: 2,
			Ingredients: []models.RecipeIngredient{
				{IngredientID: "flour", Quantity: 1, Unit: "cup"},
				{IngredientID: "egg", Quantity: 2, Unit: "piece"},
				{IngredientID: "milk", Quantity: 300, Unit: "ml"},
			},
		},
		{
			ID: "garlic-bread", Title: "Garlic Bread", Servings: 4,
			Ingredients: []models.RecipeIngredient{
				{IngredientID: "flour", Quantity: 2, Unit: "cup"},
				{IngredientID: "garlic", Quantity: 2, Unit: "clove"},
			},
		},
	})
}

type fixture struct {
	ledger   *pantry.Ledger
	calendar *Calendar
	store    *storage.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ix := testCatalog()
	store := storage.NewMemory()
	ledger := pantry.NewLedger(ix, store, nil)
	cal := NewCalendar(ix, testRecipes(), ledger, store, nil)
	return &fixture{ledger: ledger, calendar: cal, store: store}
}

func TestAddMealValidatesInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.calendar.AddMeal("not-a-date", "omelette", models.MealBreakfast, 2, "")
	assert.Error(t, err)

	_, err = f.calendar.AddMeal("2026-09-01", "ghost-recipe", models.MealBreakfast, 2, "")
	assert.Error(t, err)

	entry, err := f.calendar.AddMeal("2026-09-01", "omelette", "", 0, "")
	require.NoError(t, err)
	assert.Equal(t, models.MealDinner, entry.MealType)
	assert.Equal(t, 1.0, entry.Servings) // clamped up
	assert.NotEmpty(t, entry.ID)
}

func TestReservedQuantityAcrossCalendar(t *testing.T) {
	f := newFixture(t)

	// omelette at 2 servings: 12 eggs / 4 servings * 2 = 6
	_, err := f.calendar.AddMeal("2026-09-01", "omelette", models.MealBreakfast, 2, "")
	require.NoError(t, err)
	assert.InDelta(t, 6, f.calendar.ReservedQuantity("egg"), 1e-9)

	// pancakes at 2 servings adds 2 more eggs
	second, err := f.calendar.AddMeal("2026-09-03", "pancakes", models.MealBreakfast, 2, "")
	require.NoError(t, err)
	assert.InDelta(t, 8, f.calendar.ReservedQuantity("egg"), 1e-9)

	// removing an entry decreases reserved by exactly its contribution
	require.True(t, f.calendar.RemoveMeal(second.ID))
	assert.InDelta(t, 6, f.calendar.ReservedQuantity("egg"), 1e-9)

	assert.Equal(t, 0.0, f.calendar.ReservedQuantity("garlic"))
}

func TestAvailableQuantityFloorsAtZero(t *testing.T) {
	f := newFixture(t)
	_, _ = f.ledger.Set("egg", 4, pantry.SetOptions{})
	_, _ = f.calendar.AddMeal("2026-09-01", "omelette", models.MealDinner, 2, "") // reserves 6

	assert.Equal(t, 0.0, f.calendar.AvailableQuantity("egg"))

	_, _ = f.ledger.Set("egg", 10, pantry.SetOptions{})
	assert.InDelta(t, 4, f.calendar.AvailableQuantity("egg"), 1e-9)
}

func TestCheckAvailabilityEggsExample(t *testing.T) {
	f := newFixture(t)
	_, _ = f.ledger.Set("egg", 2, pantry.SetOptions{})
	_, _ = f.ledger.Set("milk", 500, pantry.SetOptions{})

	// recipe needs 12 eggs for 4 servings, requested 2 -> needed 6, available 2
	recipe := testRecipes().Get("omelette")
	result := f.calendar.CheckAvailability(recipe, 2)

	assert.False(t, result.CanMake)
	assert.Empty(t, result.Missing)
	require.Len(t, result.Warnings, 1)
	w := result.Warnings[0]
	assert.Equal(t, "egg", w.IngredientID)
	assert.InDelta(t, 6, w.Needed, 1e-9)
	assert.InDelta(t, 2, w.Available, 1e-9)
	assert.InDelta(t, 4, w.Short, 1e-9)
}

func TestCheckAvailabilityMissingAndOptional(t *testing.T) {
	f := newFixture(t)
	// no eggs at all, plenty of milk, no salt (optional, ignored)
	_, _ = f.ledger.Set("milk", 1000, pantry.SetOptions{})

	recipe := testRecipes().Get("omelette")
	result := f.calendar.CheckAvailability(recipe, 4)

	assert.False(t, result.CanMake)
	require.Len(t, result.Missing, 1)
	assert.Equal(t, "egg", result.Missing[0].IngredientID)
	assert.InDelta(t, 12, result.Missing[0].Short, 1e-9)
	assert.Empty(t, result.Warnings)
}

func TestCheckAvailabilityAssumesSufficientOnIncompatibleUnits(t *testing.T) {
	f := newFixture(t)
	// recipe wants 2 cloves, pantry holds 50 g of garlic: cannot compare, assume fine
	_, _ = f.ledger.Set("garlic", 50, pantry.SetOptions{Unit: "g"})
	_, _ = f.ledger.Set("flour", 5, pantry.SetOptions{Unit: "cup"})

	recipe := testRecipes().Get("garlic-bread")
	result := f.calendar.CheckAvailability(recipe, 4)
	assert.True(t, result.CanMake)
}

func TestCheckAvailabilityConvertsCompatibleUnits(t *testing.T) {
	f := newFixture(t)
	// pancakes need 1 cup flour; 8 tbsp = 0.5 cup on hand
	_, _ = f.ledger.Set("flour", 8, pantry.SetOptions{Unit: "tbsp"})
	_, _ = f.ledger.Set("egg", 2, pantry.SetOptions{})
	_, _ = f.ledger.Set("milk", 300, pantry.SetOptions{})

	recipe := testRecipes().Get("pancakes")
	result := f.calendar.CheckAvailability(recipe, 2)

	assert.False(t, result.CanMake)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "flour", result.Warnings[0].IngredientID)
	assert.InDelta(t, 0.5, result.Warnings[0].Short, 1e-9)
}

func TestShoppingListAggregatesOverWindow(t *testing.T) {
	f := newFixture(t)
	_, _ = f.ledger.Set("flour", 1, pantry.SetOptions{Unit: "cup"})
	_, _ = f.ledger.Set("egg", 100, pantry.SetOptions{})
	_, _ = f.ledger.Set("milk", 10000, pantry.SetOptions{})
	_, _ = f.ledger.Set("garlic", 10, pantry.SetOptions{Unit: "clove"})

	// three meals across the week each need 1 cup flour
	_, _ = f.calendar.AddMeal("2026-09-01", "pancakes", models.MealBreakfast, 2, "")
	_, _ = f.calendar.AddMeal("2026-09-03", "pancakes", models.MealBreakfast, 2, "")
	_, _ = f.calendar.AddMeal("2026-09-06", "pancakes", models.MealBreakfast, 2, "")
	// outside the window, must not count
	_, _ = f.calendar.AddMeal("2026-09-20", "pancakes", models.MealBreakfast, 2, "")

	items := f.calendar.ShoppingList("2026-09-01", "2026-09-07")
	require.Len(t, items, 1)
	flour := items[0]
	assert.Equal(t, "flour", flour.IngredientID)
	assert.InDelta(t, 3, flour.Needed, 1e-9)
	assert.InDelta(t, 1, flour.Available, 1e-9)
	assert.InDelta(t, 2, flour.Shortage, 1e-9)
}

func TestShoppingListSortsByCategoryThenName(t *testing.T) {
	f := newFixture(t)
	// nothing on hand: everything needed shows up
	_, _ = f.calendar.AddMeal("2026-09-01", "pancakes", models.MealBreakfast, 2, "")
	_, _ = f.calendar.AddMeal("2026-09-01", "garlic-bread", models.MealDinner, 4, "")

	items := f.calendar.ShoppingList("2026-09-01", "2026-09-01")
	require.Len(t, items, 4)
	// baking (Flour) < dairy (Egg, Milk) < produce (Garlic)
	assert.Equal(t, "flour", items[0].IngredientID)
	assert.Equal(t, "egg", items[1].IngredientID)
	assert.Equal(t, "milk", items[2].IngredientID)
	assert.Equal(t, "garlic", items[3].IngredientID)
}

func TestStatsClassifiesEntries(t *testing.T) {
	f := newFixture(t)
	// enough egg and milk to cover demand from both planned meals
	_, _ = f.ledger.Set("egg", 20, pantry.SetOptions{})
	_, _ = f.ledger.Set("milk", 1000, pantry.SetOptions{})

	_, _ = f.calendar.AddMeal("2026-09-01", "omelette", models.MealBreakfast, 2, "") // makeable
	_, _ = f.calendar.AddMeal("2026-09-02", "pancakes", models.MealBreakfast, 2, "") // no flour

	stats := f.calendar.Stats("", "")
	assert.Equal(t, 2, stats.TotalMeals)
	assert.Equal(t, 1, stats.CanMake)
	assert.Equal(t, 1, stats.NeedShopping)
}

func TestRemovingLastEntryDeletesDateKey(t *testing.T) {
	f := newFixture(t)
	entry, err := f.calendar.AddMeal("2026-09-05", "omelette", models.MealLunch, 1, "")
	require.NoError(t, err)
	require.Contains(t, f.calendar.Dates(), "2026-09-05")

	require.True(t, f.calendar.RemoveMeal(entry.ID))
	assert.NotContains(t, f.calendar.Dates(), "2026-09-05")
	assert.False(t, f.calendar.RemoveMeal(entry.ID)) // second removal is a no-op
}

func TestClearRange(t *testing.T) {
	f := newFixture(t)
	_, _ = f.calendar.AddMeal("2026-09-01", "omelette", models.MealLunch, 1, "")
	_, _ = f.calendar.AddMeal("2026-09-02", "omelette", models.MealLunch, 1, "")
	_, _ = f.calendar.AddMeal("2026-09-10", "omelette", models.MealLunch, 1, "")

	removed := f.calendar.ClearRange("2026-09-01", "2026-09-05")
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, f.calendar.Len())
}

func TestSetConsumption(t *testing.T) {
	f := newFixture(t)
	entry, _ := f.calendar.AddMeal("2026-09-01", "omelette", models.MealLunch, 2, "")

	require.True(t, f.calendar.SetConsumption(entry.ID, models.ConsumptionEaten, 0))
	meals := f.calendar.MealsOn("2026-09-01")
	require.Len(t, meals, 1)
	assert.Equal(t, models.ConsumptionEaten, meals[0].Status)
	assert.Equal(t, 1.0, meals[0].ConsumedServings) // defaulted

	assert.False(t, f.calendar.SetConsumption("missing-id", models.ConsumptionEaten, 1))
}

func TestChangeEventsAndPersistence(t *testing.T) {
	f := newFixture(t)
	var events []Action
	f.calendar.Subscribe(func(ev ChangeEvent) { events = append(events, ev.Action) })

	entry, _ := f.calendar.AddMeal("2026-09-01", "omelette", models.MealLunch, 1, "")
	f.calendar.RemoveMeal(entry.ID)
	assert.Equal(t, []Action{ActionAdd, ActionRemove}, events)

	// restored calendar sees persisted state
	_, _ = f.calendar.AddMeal("2026-09-02", "pancakes", models.MealBreakfast, 2, "")
	restored := NewCalendar(testCatalog(), testRecipes(), f.ledger, f.store, nil)
	assert.Equal(t, 1, restored.Len())
	assert.Len(t, restored.MealsOn("2026-09-02"), 1)
}

func TestImportExportRoundTrip(t *testing.T) {
	f := newFixture(t)
	_, _ = f.calendar.AddMeal("2026-09-01", "omelette", models.MealBreakfast, 2, "prep ahead")
	_, _ = f.calendar.AddMeal("2026-09-02", "pancakes", models.MealBreakfast, 1, "")

	exported := f.calendar.Export()
	require.Equal(t, models.ExportVersion, exported.Version)

	other := newFixture(t)
	result := other.calendar.Import(exported, models.ImportReplace)
	require.True(t, result.Success)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, other.calendar.Len())
	assert.Len(t, other.calendar.MealsOn("2026-09-01"), 1)
	assert.Equal(t, "prep ahead", other.calendar.MealsOn("2026-09-01")[0].Notes)
}

func TestImportSkipsUnknownRecipesAndBadDates(t *testing.T) {
	f := newFixture(t)
	result := f.calendar.Import(models.CalendarExport{
		Version: models.ExportVersion,
		Meals: map[string][]models.MealEntry{
			"2026-09-01": {
				{RecipeID: "omelette", Servings: 1},
				{RecipeID: "ghost", Servings: 1},
			},
			"bogus-date": {
				{RecipeID: "omelette", Servings: 1},
			},
		},
	}, models.ImportMerge)

	require.True(t, result.Success)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 3, result.Total)
}

func TestImportRejectsMalformedPayload(t *testing.T) {
	f := newFixture(t)
	result := f.calendar.Import(models.CalendarExport{Version: models.ExportVersion}, models.ImportReplace)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}
