package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nemocake/pantry-planner/config"
	"github.com/nemocake/pantry-planner/models"
)

// snapshotRow is the single persistence table: one JSON snapshot per key.
type snapshotRow struct {
	Key       string    `gorm:"primaryKey;size:50"`
	Data      string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (snapshotRow) TableName() string { return "snapshots" }

// DB is the gorm-backed Store. SQLite by default, postgres when configured.
type DB struct {
	db *gorm.DB
}

// Open connects per config and runs migrations.
func Open(cfg config.DatabaseConfig) (*DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "sqlite":
		dialector = sqlite.Open(cfg.Path)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &DB{db: db}, nil
}

// Close releases the underlying connection.
func (s *DB) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *DB) save(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	row := snapshotRow{Key: key, Data: string(data)}
	return s.db.Save(&row).Error
}

func (s *DB) load(key string, out interface{}) (bool, error) {
	var row snapshotRow
	err := s.db.First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(row.Data), out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *DB) LoadPantry() (PantrySnapshot, error) {
	var snap PantrySnapshot
	ok, err := s.load(KeyPantry, &snap)
	if err != nil || !ok {
		return nil, err
	}
	return snap, nil
}

func (s *DB) SavePantry(snap PantrySnapshot) error {
	return s.save(KeyPantry, snap)
}

func (s *DB) LoadCalendar() (CalendarSnapshot, error) {
	var snap CalendarSnapshot
	ok, err := s.load(KeyCalendar, &snap)
	if err != nil || !ok {
		return nil, err
	}
	return snap, nil
}

func (s *DB) SaveCalendar(snap CalendarSnapshot) error {
	return s.save(KeyCalendar, snap)
}

func (s *DB) LoadGoals() (models.Goals, error) {
	var goals models.Goals
	ok, err := s.load(KeyGoals, &goals)
	if err != nil || !ok {
		return nil, err
	}
	return goals, nil
}

func (s *DB) SaveGoals(goals models.Goals) error {
	return s.save(KeyGoals, goals)
}
