package database

import (
	"edu/config"
	"edu/logger"
	"edu/models"
	"edu/models/course"
	"edu/ordering"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db       *gorm.DB
	Ordering *ordering.Registry
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured database, wires sibling ordering and runs migrations
func ConnectDb() {
	cfg := config.AppConfig

	db, err := gorm.Open(dialector(cfg), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", cfg.DBDriver, err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	maxConns := cfg.DBMaxConns
	if cfg.DBDriver == "sqlite" {
		maxConns = 1 // sqlite has a single writer
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns / 2)
	sqlDB.SetConnMaxLifetime(0)

	registry, err := Setup(db)
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}

	Database = DbInstance{Db: db, Ordering: registry}
}

func dialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DBDriver {
	case "sqlite":
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = cfg.DBName + ".db?_foreign_keys=1"
		}
		return sqlite.Open(dsn)
	case "mysql":
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		}
		return mysql.Open(dsn)
	default:
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
				cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		}
		return postgres.Open(dsn)
	}
}

// Setup registers the ordered models, installs the ordering plugin and runs
// migrations. A bad ordering configuration is returned before anything else runs.
func Setup(db *gorm.DB) (*ordering.Registry, error) {
	registry := ordering.NewRegistry(db.NamingStrategy)
	if err := course.RegisterOrdering(registry); err != nil {
		return nil, err
	}
	if err := db.Use(ordering.NewPlugin(registry)); err != nil {
		return nil, err
	}
	if err := runMigrations(db); err != nil {
		return nil, err
	}
	return registry, nil
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) error {
	logger.Log.Info("Running migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Permission{},
		&course.Subject{},
		&course.Course{},
		&course.Module{},
		&course.Content{},
		&course.Text{},
		&course.Video{},
		&course.Image{},
		&course.File{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Log.Info("Migrations completed")
	return nil
}
