package repo

import (
	"strings"

	"GoMFiles/internal/model"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// IsPostgresDSN reports whether dsn addresses a PostgreSQL server.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// InitDB opens the fake vault database and migrates its schema. PostgreSQL
// DSNs use the pgx driver, anything else is an SQLite path or URI served by
// modernc.org/sqlite.
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if IsPostgresDSN(dsn) {
		dial = postgres.Open(dsn)
	} else {
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	if !IsPostgresDSN(dsn) {
		// one connection keeps in-memory databases shared and avoids SQLITE_BUSY
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table of the fake vault.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.ObjectType{},
		&model.Class{},
		&model.PropertyDef{},
		&model.ClassProperty{},
		&model.ValueList{},
		&model.ValueListItem{},
		&model.Object{},
		&model.ObjectProperty{},
		&model.ObjectFile{},
		&model.Upload{},
	)
}
