package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const defaultSearchLimit = 20

// SearchIngredients handles GET /catalog/search?q=...&limit=...
func (a *API) SearchIngredients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(w, http.StatusOK, a.Catalog.Search(query, limit))
}

// GetCategories handles GET /catalog/categories
func (a *API) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Catalog.Categories())
}

// GetCategoryIngredients handles GET /catalog/categories/{category}
func (a *API) GetCategoryIngredients(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	writeJSON(w, http.StatusOK, a.Catalog.ByCategory(category))
}

// GetIngredient handles GET /catalog/ingredients/{ingredient_id}
func (a *API) GetIngredient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ingredient_id")
	rec := a.Catalog.Get(id)
	if rec == nil {
		writeError(w, http.StatusNotFound, "ingredient not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
