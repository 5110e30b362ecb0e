package notes

import (
	"assistantbot/internal/googleauth"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/keep/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

type Service struct {
	repo         *Repository
	googleClient *googleauth.Client
}

func NewService(repo *Repository, googleClient *googleauth.Client) *Service {
	return &Service{
		repo:         repo,
		googleClient: googleClient,
	}
}

// CreateNote создает заметку в Google Keep пользователя и сохраняет копию
// локально. Keep API доступен не всем аккаунтам, поэтому при ошибке заметка
// создается задачей в Google Tasks.
func (s *Service) CreateNote(ctx context.Context, userID int64, title, content string) (string, error) {
	noteID, err := s.createKeepNote(ctx, userID, title, content)
	if err != nil {
		logrus.Warnf("Не удалось создать заметку в Google Keep, переключаюсь на Google Tasks: %v", err)
		noteID, err = s.createTaskNote(ctx, userID, title, content)
		if err != nil {
			return "", err
		}
	}

	if _, err := s.repo.StoreNote(ctx, userID, noteID, title, content); err != nil {
		logrus.Errorf("Ошибка при локальном сохранении заметки пользователя %d: %v", userID, err)
	}

	return noteID, nil
}

func (s *Service) ListNotes(ctx context.Context, userID int64, limit int) ([]Note, error) {
	return s.repo.GetUserNotes(ctx, userID, limit)
}

func (s *Service) createKeepNote(ctx context.Context, userID int64, title, content string) (string, error) {
	client, err := s.googleClient.HTTPClient(ctx, userID)
	if err != nil {
		return "", err
	}

	srv, err := keep.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", fmt.Errorf("не удалось создать сервис Keep: %v", err)
	}

	note := &keep.Note{
		Title: title,
		Body: &keep.Section{
			Text: &keep.TextContent{
				Text: content,
			},
		},
	}

	created, err := srv.Notes.Create(note).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("не удалось создать заметку в Keep: %v", err)
	}

	return created.Name, nil
}

func (s *Service) createTaskNote(ctx context.Context, userID int64, title, content string) (string, error) {
	client, err := s.googleClient.HTTPClient(ctx, userID)
	if err != nil {
		return "", err
	}

	srv, err := tasks.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", fmt.Errorf("не удалось создать сервис Tasks: %v", err)
	}

	task := &tasks.Task{
		Title: title,
		Notes: content,
	}

	created, err := srv.Tasks.Insert("@default", task).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("не удалось создать задачу: %v", err)
	}

	return created.Id, nil
}
