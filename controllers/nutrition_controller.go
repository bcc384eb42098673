package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/nemocake/pantry-planner/models"
	"github.com/nemocake/pantry-planner/nutrition"
)

func nutritionMode(r *http.Request) nutrition.Mode {
	if r.URL.Query().Get("mode") == string(nutrition.ModeActual) {
		return nutrition.ModeActual
	}
	return nutrition.ModePlanned
}

// GetDaySummary handles GET /nutrition/day?date=&mode=planned|actual
func (a *API) GetDaySummary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	writeJSON(w, http.StatusOK, a.Nutrition.DayTotal(date, nutritionMode(r)))
}

// GetWeekSummary handles GET /nutrition/week?start=&mode=planned|actual
func (a *API) GetWeekSummary(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	if start == "" {
		writeError(w, http.StatusBadRequest, "start is required")
		return
	}
	writeJSON(w, http.StatusOK, a.Nutrition.WeekTotal(start, nutritionMode(r)))
}

// GetRemainingBudget handles GET /nutrition/remaining?date=
func (a *API) GetRemainingBudget(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	writeJSON(w, http.StatusOK, a.Nutrition.RemainingBudget(date))
}

// GetGoals handles GET /nutrition/goals
func (a *API) GetGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Nutrition.Goals())
}

// SetGoals handles PUT /nutrition/goals
func (a *API) SetGoals(w http.ResponseWriter, r *http.Request) {
	var goals models.Goals
	if err := json.NewDecoder(r.Body).Decode(&goals); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, a.Nutrition.SetGoals(goals))
}
