package notes

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

type Note struct {
	ID        int       `db:"id"`
	UserID    int64     `db:"user_id"`
	NoteID    string    `db:"note_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) StoreNote(ctx context.Context, userID int64, noteID, title, content string) (int, error) {
	query := `
		INSERT INTO notes (user_id, note_id, title, content, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`

	var id int
	err := r.db.GetContext(ctx, &id, query, userID, noteID, title, content)
	if err != nil {
		return 0, fmt.Errorf("не удалось сохранить заметку: %w", err)
	}

	return id, nil
}

func (r *Repository) GetUserNotes(ctx context.Context, userID int64, limit int) ([]Note, error) {
	query := `
		SELECT id, user_id, COALESCE(note_id, '') AS note_id, title, content, created_at
		FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var userNotes []Note
	err := r.db.SelectContext(ctx, &userNotes, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить заметки пользователя: %w", err)
	}

	return userNotes, nil
}
