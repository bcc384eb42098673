package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nemocake/pantry-planner/controllers"
)

// SetupRouter mounts every handler on a chi mux.
func SetupRouter(api *controllers.API, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", api.Health)

	// Catalog
	r.Get("/catalog/search", api.SearchIngredients)
	r.Get("/catalog/categories", api.GetCategories)
	r.Get("/catalog/categories/{category}", api.GetCategoryIngredients)
	r.Get("/catalog/ingredients/{ingredient_id}", api.GetIngredient)

	// Pantry
	r.Route("/pantry", func(r chi.Router) {
		r.Get("/items", api.GetPantry)
		r.Get("/items/{ingredient_id}", api.GetPantryItem)
		r.Put("/items/{ingredient_id}", api.SetPantryItem)
		r.Delete("/items/{ingredient_id}", api.DeletePantryItem)
		r.Post("/clear", api.ClearPantry)
		r.Get("/export", api.ExportPantry)
		r.Post("/import", api.ImportPantry)
	})

	// Recipes
	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", api.GetRecipes)
		r.Get("/matches", api.GetRecipeMatches)
		r.Get("/{recipe_id}", api.GetRecipe)
		r.Get("/{recipe_id}/availability", api.GetRecipeAvailability)
		r.Get("/{recipe_id}/nutrition", api.GetRecipeNutrition)
		r.Get("/{recipe_id}/fits", api.GetRecipeFit)
	})

	// Calendar
	r.Route("/calendar", func(r chi.Router) {
		r.Get("/meals", api.GetMeals)
		r.Post("/meals", api.AddMeal)
		r.Delete("/meals/{meal_id}", api.RemoveMeal)
		r.Put("/meals/{meal_id}/consumption", api.SetConsumption)
		r.Post("/clear", api.ClearCalendar)
		r.Get("/shopping-list", api.GetShoppingList)
		r.Get("/stats", api.GetPlanStats)
		r.Get("/export", api.ExportCalendar)
		r.Post("/import", api.ImportCalendar)
	})

	// Nutrition
	r.Route("/nutrition", func(r chi.Router) {
		r.Get("/day", api.GetDaySummary)
		r.Get("/week", api.GetWeekSummary)
		r.Get("/remaining", api.GetRemainingBudget)
		r.Get("/goals", api.GetGoals)
		r.Put("/goals", api.SetGoals)
	})

	return r
}
