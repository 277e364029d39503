package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgreSQL error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// SQLite returns the dialector for an SQLite database file with foreign keys enabled.
func SQLite(path string) gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)", path))
}

// Postgres returns the dialector for a PostgreSQL DSN.
func Postgres(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}

// Connect opens the database, registers the error translation callbacks
// and migrates the schema.
func Connect(dialector gorm.Dialector) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
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

	// SQLite allows one writer at a time. A single connection avoids SQLITE_BUSY.
	if dialector.Name() == "sqlite" {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	err = registerCallbacks(db)
	if err != nil {
		return nil, err
	}

	err = migrate(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "ledger:after_query", queryCallback},
		{db.Callback().Query().After("*"), "ledger:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "ledger:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "ledger:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "ledger:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "ledger:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "ledger:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return fmt.Errorf("registering callback %s: %w", c.name, err)
		}
	}

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// people is the only irregular plural in the schema
		if name == "people" {
			name = "person"
		}

		name = regexp.MustCompile("ies$").ReplaceAllString(name, "y")
		name = strings.TrimSuffix(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// uniqueConstraintErrors maps SQLite constraint messages and PostgreSQL
// constraint names to the errors returned to callers.
//
// The membership pair index must be checked before the single Project Manager
// index since the SQLite message of the latter is a prefix of the former.
var uniqueConstraintErrors = []struct {
	sqlite     string
	constraint string
	err        error
}{
	{"UNIQUE constraint failed: memberships.project_id, memberships.person_eid", "idx_membership_project_person", ErrAlreadyAssigned},
	{"UNIQUE constraint failed: memberships.project_id", "idx_memberships_single_pm", ErrProjectManagerExists},
	{"UNIQUE constraint failed: financial_years.label", "idx_financial_years_label", ErrFinancialYearExists},
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(db.Error, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			db.Error = ErrReferenceNotFound
			return
		case pgUniqueViolation:
			for _, c := range uniqueConstraintErrors {
				if pgErr.ConstraintName == c.constraint {
					db.Error = c.err
					return
				}
			}
			log.Error().Str("constraint", pgErr.ConstraintName).Msg("unmapped unique violation")
			db.Error = fmt.Errorf("%w: the resource already exists", ErrConflict)
			return
		}
	}

	msg := db.Error.Error()
	for _, c := range uniqueConstraintErrors {
		if strings.Contains(msg, c.sqlite) {
			db.Error = c.err
			return
		}
	}

	if strings.Contains(msg, "UNIQUE constraint failed") {
		log.Error().Str("message", msg).Msg("unmapped unique violation")
		db.Error = fmt.Errorf("%w: the resource already exists", ErrConflict)
		return
	}

	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		db.Error = ErrReferenceNotFound
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

	var pgErr *pgconn.PgError

	// "sql: database is closed" is hard-coded in the sql module
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) || errors.As(db.Error, &pgErr) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(Person{}, Department{}, Project{}, FinancialYear{}, FinancialRate{}, Membership{}, Allocation{}, ActivityLog{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	// gorm has no tag for partial indices
	err = db.Exec(fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS idx_memberships_single_pm ON memberships (project_id) WHERE role = '%s'", RoleProjectManager)).Error
	if err != nil {
		return fmt.Errorf("error creating Project Manager index: %w", err)
	}

	return nil
}
