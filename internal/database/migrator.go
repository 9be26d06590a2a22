package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// SchemaVersionTable stores the applied migration version.
const SchemaVersionTable = "schema_version"

// Embed all SQL files under migrations/ at compile time, so the binary
// carries its own schema.
//
//go:embed migrations/*.sql
var migrations embed.FS

// SchemaOutdatedError is returned by CheckSchema when migrations are pending.
type SchemaOutdatedError struct {
	Current int32
	Latest  int32
}

func (e *SchemaOutdatedError) Error() string {
	return fmt.Sprintf("database schema is at version %d, latest is %d: run `job-board migrate`", e.Current, e.Latest)
}

// loadMigrator opens a migrator on conn with the embedded migrations loaded.
func loadMigrator(ctx context.Context, conn *pgx.Conn) (*tern.Migrator, error) {
	m, err := tern.NewMigrator(ctx, conn, SchemaVersionTable)
	if err != nil {
		return nil, fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return nil, fmt.Errorf("loading database migrations: %w", err)
	}

	return m, nil
}

// Migrate applies all pending migrations on the database at dsn.
//
// It uses a single direct connection, not the pool: migrating is a one-time
// action run by `job-board migrate` before the service takes traffic.
// Running it against an up-to-date database is a no-op.
func Migrate(ctx context.Context, logger *zerolog.Logger, dsn string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := loadMigrator(ctx, conn)
	if err != nil {
		return err
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("applying database migrations: %w", err)
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}

// CheckSchema verifies that the database at dsn is at the latest embedded
// migration. serve calls it before opening the HTTP listener: the service
// must not answer requests against a missing or stale schema.
func CheckSchema(ctx context.Context, logger *zerolog.Logger, dsn string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting for schema check: %w", err)
	}
	defer conn.Close(ctx)

	m, err := loadMigrator(ctx, conn)
	if err != nil {
		return err
	}

	current, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	latest := int32(len(m.Migrations))
	if current != latest {
		return &SchemaOutdatedError{Current: current, Latest: latest}
	}

	logger.Info().Int32("version", current).Msg("database schema verified")
	return nil
}
