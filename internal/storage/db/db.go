// Package db implements the storage contract on a relational database
// through gorm. It is the remote variant of the persistence layer: filtering
// and ordering happen in the database, dates are stored as native timestamps
// in UTC.
//
// sqlite is the default driver; when a postgres DSN is configured the same
// code runs against postgres.
package db

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
)

// Store is the database-backed storage adapter.
type Store struct {
	db *gorm.DB
}

var _ storage.Storage = (*Store)(nil)

// Connect opens the sqlite database at the given path and configures the
// connection pool.
func Connect(dsn string) (*Store, error) {
	store, err := open(sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)))
	if err != nil {
		return nil, err
	}

	sqlDB, err := store.db.DB()
	if err != nil {
		return nil, err
	}

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return store, nil
}

// ConnectPostgres connects to postgres with the given DSN.
func ConnectPostgres(dsn string) (*Store, error) {
	return open(postgres.Open(dsn))
}

func open(dialector gorm.Dialector) (*Store, error) {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &gormLogger{Logger: log.Logger},
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	err = db.Callback().Query().After("*").Register("financetrackr:after_query", queryCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Create().After("*").Register("financetrackr:after_create", generalCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Update().After("*").Register("financetrackr:after_update", generalCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Delete().After("*").Register("financetrackr:after_delete", generalCallback)
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(models.Transaction{}, models.Budget{}, models.Goal{})
	if err != nil {
		return nil, fmt.Errorf("error during DB migration: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")
		name = strings.TrimRight(name, "s")

		db.Error = models.ResourceNotFound(name)
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = models.ErrGeneral

		return
	}
}
