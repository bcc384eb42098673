package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/nemocake/pantry-planner/catalog"
	"github.com/nemocake/pantry-planner/config"
	"github.com/nemocake/pantry-planner/controllers"
	"github.com/nemocake/pantry-planner/logger"
	"github.com/nemocake/pantry-planner/mealplan"
	"github.com/nemocake/pantry-planner/nutrition"
	"github.com/nemocake/pantry-planner/pantry"
	"github.com/nemocake/pantry-planner/routes"
	"github.com/nemocake/pantry-planner/storage"
)

func main() {
	// Missing .env is fine, system env vars still apply.
	_ = godotenv.Load()

	cfg, err := config.Load(config.GetEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		logger.Init("development")
		logger.Fatal("failed to load config", "error", err)
	}

	logger.Init(cfg.Environment)
	defer logger.Close()

	ix, err := catalog.LoadIndex(cfg.Data.CatalogPath)
	if err != nil {
		logger.Fatal("failed to load catalog", "path", cfg.Data.CatalogPath, "error", err)
	}
	recipes, err := catalog.LoadRecipeBook(cfg.Data.RecipesPath)
	if err != nil {
		logger.Fatal("failed to load recipes", "path", cfg.Data.RecipesPath, "error", err)
	}
	logger.Info("catalog loaded", "ingredients", ix.Len(), "recipes", recipes.Len())

	var store storage.Store
	db, err := storage.Open(cfg.Database)
	if err != nil {
		logger.Warn("snapshot store unavailable, state will not survive restarts", "error", err)
		store = storage.NewMemory()
	} else {
		store = db
	}

	sync := storage.NopSync{}
	ledger := pantry.NewLedger(ix, store, sync)
	plan := mealplan.NewCalendar(ix, recipes, ledger, store, sync)
	engine := nutrition.NewEngine(ix, recipes, plan, store, sync)

	api := controllers.NewAPI(ix, recipes, ledger, plan, engine)
	router := routes.SetupRouter(api, cfg.Server.AllowedOrigins)

	port := config.GetEnv("PORT", cfg.Server.Port)
	logger.Info("server starting", "port", port, "env", cfg.Environment)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
