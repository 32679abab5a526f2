// cmd/api/migrations.go
package main

import (
	"database/sql"
	"fmt"
	"log"
)

// runMigrations creates the schema if it does not exist yet.
func runMigrations(db *sql.DB) error {
	log.Println("   - Checking existing tables...")

	var userTableExists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = 'users'
		)
	`).Scan(&userTableExists)

	if err != nil {
		return fmt.Errorf("failed to check tables: %w", err)
	}

	if userTableExists {
		log.Println("   ✅ Tables already exist, running additional migrations if needed...")
	}

	log.Println("   - Creating/updating tables...")

	migrations := []string{
		// Users table: ids come from the identity provider, hence TEXT
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name VARCHAR(255) NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT '',
			birthdate TIMESTAMP,
			gender VARCHAR(20) NOT NULL DEFAULT '',
			seeking VARCHAR(20) NOT NULL DEFAULT '',
			location_lat DOUBLE PRECISION,
			location_lng DOUBLE PRECISION,
			city VARCHAR(255) NOT NULL DEFAULT '',
			interests JSONB NOT NULL DEFAULT '[]',
			age_min INTEGER NOT NULL DEFAULT 0,
			age_max INTEGER NOT NULL DEFAULT 0,
			max_distance_km INTEGER NOT NULL DEFAULT 0,
			plan VARCHAR(20) NOT NULL DEFAULT 'free',
			photos JSONB NOT NULL DEFAULT '[]',
			embedding JSONB,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			suspended BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Matches table
		`CREATE TABLE IF NOT EXISTS matches (
			id UUID PRIMARY KEY,
			user_a TEXT NOT NULL REFERENCES users(id),
			user_b TEXT NOT NULL REFERENCES users(id),
			state VARCHAR(20) NOT NULL DEFAULT 'active',
			opened_by TEXT NOT NULL DEFAULT '',
			closed_by TEXT,
			close_reason TEXT,
			score DOUBLE PRECISION,
			last_message_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Messages table
		`CREATE TABLE IF NOT EXISTS messages (
			id UUID PRIMARY KEY,
			match_id UUID NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			from_user TEXT NOT NULL REFERENCES users(id),
			text TEXT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'sent',
			moderation JSONB,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Conversation starters table
		`CREATE TABLE IF NOT EXISTS conversation_starters (
			id UUID PRIMARY KEY,
			match_id UUID NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			text TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Push tokens table
		`CREATE TABLE IF NOT EXISTS push_tokens (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token TEXT NOT NULL UNIQUE,
			platform VARCHAR(20) NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_users_active ON users(active, suspended)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_user_a ON matches(user_a, state)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_user_b ON matches(user_b, state)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_match_id ON messages(match_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_starters_match_id ON conversation_starters(match_id)`,
		`CREATE INDEX IF NOT EXISTS idx_push_tokens_user_id ON push_tokens(user_id)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
