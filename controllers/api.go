// Package controllers wires the engine stores to the HTTP surface. Handlers
// hold their collaborators explicitly; there are no package-level stores.
package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/nemocake/pantry-planner/catalog"
	"github.com/nemocake/pantry-planner/mealplan"
	"github.com/nemocake/pantry-planner/nutrition"
	"github.com/nemocake/pantry-planner/pantry"
)

// API bundles the stores and engines every handler needs.
type API struct {
	Catalog   *catalog.Index
	Recipes   *catalog.RecipeBook
	Pantry    *pantry.Ledger
	Plan      *mealplan.Calendar
	Nutrition *nutrition.Engine
}

// NewAPI builds the handler set.
func NewAPI(ix *catalog.Index, recipes *catalog.RecipeBook, ledger *pantry.Ledger, plan *mealplan.Calendar, engine *nutrition.Engine) *API {
	return &API{
		Catalog:   ix,
		Recipes:   recipes,
		Pantry:    ledger,
		Plan:      plan,
		Nutrition: engine,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Health reports liveness and catalog sizes.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"ingredients": a.Catalog.Len(),
		"recipes":     a.Recipes.Len(),
	})
}
