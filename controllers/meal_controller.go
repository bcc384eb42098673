package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nemocake/pantry-planner/models"
)

type addMealRequest struct {
	Date     string  `json:"date"`
	RecipeID string  `json:"recipeId"`
	MealType string  `json:"mealType"`
	Servings float64 `json:"servings"`
	Notes    string  `json:"notes"`
}

// AddMeal handles POST /calendar/meals
func (a *API) AddMeal(w http.ResponseWriter, r *http.Request) {
	var req addMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := a.Plan.AddMeal(req.Date, req.RecipeID, models.MealType(req.MealType), req.Servings, req.Notes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// GetMeals handles GET /calendar/meals?date=YYYY-MM-DD
func (a *API) GetMeals(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusOK, a.Plan.All())
		return
	}
	writeJSON(w, http.StatusOK, a.Plan.MealsOn(date))
}

// RemoveMeal handles DELETE /calendar/meals/{meal_id}
func (a *API) RemoveMeal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "meal_id")
	if !a.Plan.RemoveMeal(id) {
		writeError(w, http.StatusNotFound, "meal entry not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

type consumptionRequest struct {
	Status           string  `json:"status"`
	ConsumedServings float64 `json:"consumedServings"`
}

// SetConsumption handles PUT /calendar/meals/{meal_id}/consumption
func (a *API) SetConsumption(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "meal_id")
	var req consumptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status := models.ConsumptionStatus(req.Status)
	switch status {
	case models.ConsumptionPlanned, models.ConsumptionEaten, models.ConsumptionSkipped:
	default:
		writeError(w, http.StatusBadRequest, "invalid consumption status")
		return
	}
	if !a.Plan.SetConsumption(id, status, req.ConsumedServings) {
		writeError(w, http.StatusNotFound, "meal entry not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ClearCalendar handles POST /calendar/clear?start=&end=
func (a *API) ClearCalendar(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	removed := a.Plan.ClearRange(start, end)
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

// GetShoppingList handles GET /calendar/shopping-list?start=&end=
func (a *API) GetShoppingList(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	writeJSON(w, http.StatusOK, a.Plan.ShoppingList(start, end))
}

// GetPlanStats handles GET /calendar/stats?start=&end=
func (a *API) GetPlanStats(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	writeJSON(w, http.StatusOK, a.Plan.Stats(start, end))
}

// ExportCalendar handles GET /calendar/export
func (a *API) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Plan.Export())
}

// ImportCalendar handles POST /calendar/import?mode=merge|replace
func (a *API) ImportCalendar(w http.ResponseWriter, r *http.Request) {
	var payload models.CalendarExport
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ImportResult{Success: false, Error: "invalid JSON payload"})
		return
	}
	mode := models.ImportMode(r.URL.Query().Get("mode"))
	result := a.Plan.Import(payload, mode)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, result)
}
