package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemocake/pantry-planner/catalog"
	"github.com/nemocake/pantry-planner/controllers"
	"github.com/nemocake/pantry-planner/mealplan"
	"github.com/nemocake/pantry-planner/models"
	"github.com/nemocake/pantry-planner/nutrition"
	"github.com/nemocake/pantry-planner/pantry"
	"github.com/nemocake/pantry-planner/storage"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	ix := catalog.NewIndex(
		[]models.Category{{ID: "dairy", Name: "Dairy"}, {ID: "grains", Name: "Grains"}},
		[]models.IngredientRecord{
			{ID: "egg", Name: "Egg", Category: "dairy", DefaultUnit: "piece",
				Nutrition: &models.Macros{Calories: 143, Protein: 12.6}},
			{ID: "flour", Name: "Flour", Category: "grains", DefaultUnit: "cup",
				Nutrition: &models.Macros{Calories: 364, Carbs: 76}},
		},
	)
	recipes := catalog.NewRecipeBook([]models.RecipeRecord{
		{ID: "omelette", Title: "Omelette", Servings: 2, Ingredients: []models.RecipeIngredient{
			{IngredientID: "egg", Quantity: 4, Unit: "piece"},
		}},
	})
	store := storage.NewMemory()
	ledger := pantry.NewLedger(ix, store, storage.NopSync{})
	plan := mealplan.NewCalendar(ix, recipes, ledger, store, storage.NopSync{})
	engine := nutrition.NewEngine(ix, recipes, plan, store, storage.NopSync{})
	api := controllers.NewAPI(ix, recipes, ledger, plan, engine)
	return SetupRouter(api, []string{"http://localhost:5173"})
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 2, body["ingredients"])
}

func TestPantryRoundTrip(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/pantry/items/egg", `{"quantity": 12}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var entry models.PantryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, 12.0, entry.Quantity)
	assert.Equal(t, "piece", entry.Unit)

	rec = doJSON(t, router, http.MethodGet, "/pantry/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []models.PantryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 1)

	rec = doJSON(t, router, http.MethodDelete, "/pantry/items/egg", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/pantry/items/egg", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPantryRejectsUnknownIngredient(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(t, router, http.MethodPut, "/pantry/items/unobtainium", `{"quantity": 1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMealLifecycle(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/calendar/meals",
		`{"date": "2026-09-01", "recipeId": "omelette", "mealType": "breakfast"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var entry models.MealEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	require.NotEmpty(t, entry.ID)
	assert.Equal(t, models.ConsumptionPlanned, entry.Status)

	rec = doJSON(t, router, http.MethodPut, "/calendar/meals/"+entry.ID+"/consumption",
		`{"status": "eaten", "consumedServings": 1.5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/calendar/meals?date=2026-09-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var meals []models.MealEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meals))
	require.Len(t, meals, 1)
	assert.Equal(t, models.ConsumptionEaten, meals[0].Status)

	rec = doJSON(t, router, http.MethodDelete, "/calendar/meals/"+entry.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMealRejectsBadDate(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/calendar/meals",
		`{"date": "not-a-date", "recipeId": "omelette"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecipeMatchesRankedByPantry(t *testing.T) {
	router := testRouter(t)
	doJSON(t, router, http.MethodPut, "/pantry/items/egg", `{"quantity": 6}`)

	rec := doJSON(t, router, http.MethodGet, "/recipes/matches", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "full", results[0]["match_type"])
}

func TestGoalsDefaultAndUpdate(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/nutrition/goals", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var goals models.Goals
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &goals))
	assert.Equal(t, 2000.0, goals["calories"].Target)

	rec = doJSON(t, router, http.MethodPut, "/nutrition/goals",
		`{"calories": {"target": 1800, "type": "limit"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &goals))
	assert.Equal(t, 1800.0, goals["calories"].Target)
}

func TestImportRejectsMalformedBody(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/pantry/import", `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var result models.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Success)
}
