package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nemocake/pantry-planner/matching"
)

// GetRecipes handles GET /recipes
func (a *API) GetRecipes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Recipes.All())
}

// GetRecipe handles GET /recipes/{recipe_id}
func (a *API) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recipe_id")
	recipe := a.Recipes.Get(id)
	if recipe == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// GetRecipeMatches handles GET /recipes/matches. Recipes are ranked
// against what the pantry currently holds.
func (a *API) GetRecipeMatches(w http.ResponseWriter, r *http.Request) {
	results := matching.RankRecipes(a.Recipes.All(), a.Pantry.IDSet())
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 && limit < len(results) {
			results = results[:limit]
		}
	}
	writeJSON(w, http.StatusOK, results)
}

// GetRecipeAvailability handles GET /recipes/{recipe_id}/availability?servings=
func (a *API) GetRecipeAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recipe_id")
	recipe := a.Recipes.Get(id)
	if recipe == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	servings := float64(recipe.Servings)
	if v := r.URL.Query().Get("servings"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid servings")
			return
		}
		servings = parsed
	}
	writeJSON(w, http.StatusOK, a.Plan.CheckAvailability(recipe, servings))
}

// GetRecipeNutrition handles GET /recipes/{recipe_id}/nutrition
func (a *API) GetRecipeNutrition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recipe_id")
	recipe := a.Recipes.Get(id)
	if recipe == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, a.Nutrition.ForRecipe(recipe))
}

// GetRecipeFit handles GET /recipes/{recipe_id}/fits?date=YYYY-MM-DD
func (a *API) GetRecipeFit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recipe_id")
	recipe := a.Recipes.Get(id)
	if recipe == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	writeJSON(w, http.StatusOK, a.Nutrition.FitsBudget(recipe, date))
}
