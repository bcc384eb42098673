package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nemocake/pantry-planner/models"
	"github.com/nemocake/pantry-planner/pantry"
)

// GetPantry handles GET /pantry/items
func (a *API) GetPantry(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Pantry.List())
}

// GetPantryItem handles GET /pantry/items/{ingredient_id}
func (a *API) GetPantryItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ingredient_id")
	entry := a.Pantry.Get(id)
	if entry == nil {
		writeError(w, http.StatusNotFound, "pantry item not found")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

type setPantryRequest struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Storage  string  `json:"storage"`
	Notes    string  `json:"notes"`
}

// SetPantryItem handles PUT /pantry/items/{ingredient_id}
func (a *API) SetPantryItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ingredient_id")
	var req setPantryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := a.Pantry.Set(id, req.Quantity, pantry.SetOptions{
		Unit:     req.Unit,
		Location: req.Storage,
		Notes:    req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// DeletePantryItem handles DELETE /pantry/items/{ingredient_id}
func (a *API) DeletePantryItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ingredient_id")
	if !a.Pantry.Remove(id) {
		writeError(w, http.StatusNotFound, "pantry item not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ClearPantry handles POST /pantry/clear
func (a *API) ClearPantry(w http.ResponseWriter, r *http.Request) {
	a.Pantry.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// ExportPantry handles GET /pantry/export
func (a *API) ExportPantry(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Pantry.Export())
}

// ImportPantry handles POST /pantry/import?mode=merge|replace
func (a *API) ImportPantry(w http.ResponseWriter, r *http.Request) {
	var payload models.PantryExport
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ImportResult{Success: false, Error: "invalid JSON payload"})
		return
	}
	mode := models.ImportMode(r.URL.Query().Get("mode"))
	result := a.Pantry.Import(payload, mode)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, result)
}
