package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) StoreUser(ctx context.Context, userID int64, username, firstName string) error {
	query := `
		INSERT INTO users (user_id, username, first_name, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET username = $2, first_name = $3
	`

	_, err := r.db.ExecContext(ctx, query, userID, username, firstName)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении пользователя %d: %w", userID, err)
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, userID int64) (*User, error) {
	query := `
		SELECT user_id, COALESCE(username, '') AS username, COALESCE(first_name, '') AS first_name, created_at
		FROM users
		WHERE user_id = $1
	`

	var user User
	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении пользователя %d: %w", userID, err)
	}
	return &user, nil
}

func (r *Repository) GetPreferences(ctx context.Context, userID int64) (*Preferences, error) {
	query := `
		SELECT user_id, language, timezone, notifications
		FROM preferences
		WHERE user_id = $1
	`

	var prefs Preferences
	err := r.db.GetContext(ctx, &prefs, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении настроек пользователя %d: %w", userID, err)
	}
	return &prefs, nil
}

func (r *Repository) SetPreference(ctx context.Context, userID int64, key string, value interface{}) error {
	// Имена колонок фиксированы; подставлять пользовательский ввод в
	// текст запроса нельзя.
	allowed := map[string]string{
		"language":      `INSERT INTO preferences (user_id, language) VALUES ($1, $2) ON CONFLICT (user_id) DO UPDATE SET language = $2`,
		"timezone":      `INSERT INTO preferences (user_id, timezone) VALUES ($1, $2) ON CONFLICT (user_id) DO UPDATE SET timezone = $2`,
		"notifications": `INSERT INTO preferences (user_id, notifications) VALUES ($1, $2) ON CONFLICT (user_id) DO UPDATE SET notifications = $2`,
	}

	query, ok := allowed[key]
	if !ok {
		return fmt.Errorf("недопустимый ключ настройки: %s", key)
	}

	_, err := r.db.ExecContext(ctx, query, userID, value)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении настройки %s пользователя %d: %w", key, userID, err)
	}
	return nil
}
