package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds the full server configuration.
type Config struct {
	Environment string         `yaml:"environment"`
	Server      ServerConfig   `yaml:"server"`
	Database    DatabaseConfig `yaml:"database"`
	Data        DataConfig     `yaml:"data"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DatabaseConfig selects the snapshot store backend. Driver is "sqlite"
// (default, local-first) or "postgres".
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"` // sqlite file path
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Port     string `yaml:"port"`
	SSLMode  string `yaml:"sslmode"`
}

// DataConfig points at the static catalog and recipe payloads.
type DataConfig struct {
	CatalogPath string `yaml:"catalog_path"`
	RecipesPath string `yaml:"recipes_path"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		},
		Database: DatabaseConfig{
			Driver:  "sqlite",
			Path:    "pantry.db",
			Host:    "localhost",
			User:    "postgres",
			Name:    "pantryplanner",
			Port:    "5432",
			SSLMode: "disable",
		},
		Data: DataConfig{
			CatalogPath: "data/catalog.json",
			RecipesPath: "data/recipes.json",
		},
	}
}

// Load reads the YAML config at path (a missing file is fine, defaults apply)
// and then lets environment variables override the important knobs.
func Load(path string) (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Environment = GetEnv("ENV", cfg.Environment)
	cfg.Server.Port = GetEnv("PORT", cfg.Server.Port)
	cfg.Database.Driver = GetEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Path = GetEnv("DB_PATH", cfg.Database.Path)
	cfg.Database.Host = GetEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.User = GetEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = GetEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = GetEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.Port = GetEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.SSLMode = GetEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Data.CatalogPath = GetEnv("CATALOG_PATH", cfg.Data.CatalogPath)
	cfg.Data.RecipesPath = GetEnv("RECIPES_PATH", cfg.Data.RecipesPath)

	return cfg, nil
}

// GetEnv returns the environment variable or a fallback.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
