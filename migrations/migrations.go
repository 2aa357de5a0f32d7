package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_users",
		SQL: `
			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL,
				password_hash TEXT NOT NULL,
				avatar_url TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
		`,
	},
	{
		Version: 2,
		Name:    "create_friends",
		SQL: `
			CREATE TABLE IF NOT EXISTS friends (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				friend_user_id UUID REFERENCES users(id),
				name TEXT NOT NULL,
				contact TEXT NOT NULL,
				contact_type TEXT NOT NULL,
				is_active BOOLEAN NOT NULL DEFAULT true,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE UNIQUE INDEX IF NOT EXISTS friends_user_contact_active
				ON friends (user_id, contact) WHERE is_active;
		`,
	},
	{
		Version: 3,
		Name:    "create_friend_requests",
		SQL: `
			CREATE TABLE IF NOT EXISTS friend_requests (
				id UUID PRIMARY KEY,
				sender_id UUID NOT NULL REFERENCES users(id),
				recipient_id UUID REFERENCES users(id),
				recipient_contact TEXT NOT NULL,
				contact_type TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				resolved_at TIMESTAMPTZ
			);
			CREATE INDEX IF NOT EXISTS friend_requests_recipient
				ON friend_requests (recipient_id, status);
		`,
	},
	{
		Version: 4,
		Name:    "create_circles",
		SQL: `
			CREATE TABLE IF NOT EXISTS circles (
				id UUID PRIMARY KEY,
				name TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				join_code TEXT NOT NULL UNIQUE,
				created_by UUID NOT NULL REFERENCES users(id),
				is_active BOOLEAN NOT NULL DEFAULT true,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE TABLE IF NOT EXISTS circle_members (
				circle_id UUID NOT NULL REFERENCES circles(id),
				user_id UUID NOT NULL REFERENCES users(id),
				name TEXT NOT NULL,
				contact TEXT NOT NULL,
				joined_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (circle_id, user_id)
			);
		`,
	},
	{
		Version: 5,
		Name:    "create_locations",
		SQL: `
			CREATE TABLE IF NOT EXISTS locations (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id),
				circle_id UUID REFERENCES circles(id),
				latitude DOUBLE PRECISION NOT NULL,
				longitude DOUBLE PRECISION NOT NULL,
				recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE INDEX IF NOT EXISTS locations_user_recorded
				ON locations (user_id, recorded_at DESC);
			CREATE INDEX IF NOT EXISTS locations_circle
				ON locations (circle_id, recorded_at DESC);
		`,
	},
	{
		Version: 6,
		Name:    "create_location_shares",
		SQL: `
			CREATE TABLE IF NOT EXISTS location_shares (
				owner_id UUID NOT NULL REFERENCES users(id),
				friend_id UUID NOT NULL REFERENCES users(id),
				enabled BOOLEAN NOT NULL DEFAULT true,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (owner_id, friend_id)
			);
		`,
	},
}

// Run executes all pending migrations against the pool
func Run(ctx context.Context, db *pgxpool.Pool) error {
	if err := createMigrationsTable(ctx, db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, m := range migrations {
		if _, ok := applied[m.Version]; ok {
			continue
		}

		log.Info().Int("version", m.Version).Str("name", m.Name).Msg("Applying migration")
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("failed to apply migration %03d_%s: %w", m.Version, m.Name, err)
		}
	}

	return nil
}

func createMigrationsTable(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

func appliedVersions(ctx context.Context, db *pgxpool.Pool) (map[int]struct{}, error) {
	rows, err := db.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]struct{})
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = struct{}{}
	}
	return applied, rows.Err()
}

func apply(ctx context.Context, db *pgxpool.Pool, m Migration) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
