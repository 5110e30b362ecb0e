package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id BIGINT PRIMARY KEY,
		username TEXT,
		first_name TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS google_tokens (
		user_id BIGINT PRIMARY KEY,
		access_token TEXT NOT NULL,
		refresh_token TEXT,
		token_type TEXT,
		expiry TIMESTAMP,
		email TEXT,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		user_id BIGINT,
		google_event_id TEXT,
		title TEXT,
		description TEXT,
		start_time TIMESTAMP,
		end_time TIMESTAMP,
		reminder_sent BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id SERIAL PRIMARY KEY,
		user_id BIGINT,
		note_id TEXT,
		title TEXT,
		content TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS preferences (
		user_id BIGINT PRIMARY KEY,
		language TEXT DEFAULT 'uz',
		timezone TEXT DEFAULT 'Asia/Tashkent',
		notifications BOOLEAN DEFAULT TRUE
	)`,
}

// InitSchema создает таблицы при старте, если их еще нет.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	for _, statement := range schemaStatements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("ошибка при инициализации схемы базы данных: %w", err)
		}
	}

	logrus.Info("Схема базы данных инициализирована")
	return nil
}
