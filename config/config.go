package config

import (
	"os"
	"time"

	"delivery-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config carries all runtime settings, loaded from the environment with an
// optional .env file.
type Config struct {
	Port       string
	GinMode    string
	Env        string // development | production
	DBPath     string
	JWTSecret  []byte
	AdminToken string // sole gate for granting MANAGER/MASTER at signup
	TokenTTL   time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	ttl := 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}

	return &Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		Env:        getEnv("APP_ENV", "development"),
		DBPath:     getEnv("DB_PATH", "delivery.db"),
		JWTSecret:  []byte(getEnv("JWT_SECRET", "delivery_backend_secret_2024")),
		AdminToken: getEnv("ADMIN_TOKEN", "AAABnvxRVklrnyxKZ0aHgTBcXukeZygoC"),
		TokenTTL:   ttl,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the sqlite database and migrates all models.
func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate auto-migrates every entity. Also used by tests against :memory:.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Store{},
		&models.StoreCategory{},
		&models.Menu{},
		&models.Order{},
		&models.MenuOrder{},
		&models.Payment{},
		&models.Review{},
		&models.DeliveryAddress{},
	)
}
