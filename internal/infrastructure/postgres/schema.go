package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// SchemaCheck is a readiness probe that fails until the embedded
// migrations are applied and clean.
type SchemaCheck struct {
	db   DB
	want uint
}

func NewSchemaCheck(db DB) (*SchemaCheck, error) {
	want, err := latestMigration(migrationsFS)
	if err != nil {
		return nil, err
	}
	return &SchemaCheck{db: db, want: want}, nil
}

func (s *SchemaCheck) Ping(ctx context.Context) error {
	var (
		version int64
		dirty   bool
	)
	err := s.db.QueryRow(ctx, `SELECT version, dirty FROM schema_migrations LIMIT 1`).Scan(&version, &dirty)
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.New("no migrations applied")
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration %d is dirty", version)
	}
	if uint(version) < s.want {
		return fmt.Errorf("schema at version %d, want %d", version, s.want)
	}
	return nil
}

func latestMigration(fsys fs.FS) (uint, error) {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return 0, fmt.Errorf("read migrations: %w", err)
	}
	var latest uint
	for _, e := range entries {
		prefix, _, ok := strings.Cut(e.Name(), "_")
		if !ok {
			continue
		}
		v, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			continue
		}
		latest = max(latest, uint(v))
	}
	if latest == 0 {
		return 0, errors.New("no migrations embedded")
	}
	return latest, nil
}
