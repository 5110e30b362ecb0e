package users

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("пользователь не найден")

const (
	defaultLanguage = "uz"
	defaultTimezone = "Asia/Tashkent"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) StoreUser(ctx context.Context, userID int64, username, firstName string) error {
	return s.repo.StoreUser(ctx, userID, username, firstName)
}

func (s *Service) GetUser(ctx context.Context, userID int64) (*User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetPreferences возвращает настройки пользователя; при их отсутствии —
// значения по умолчанию.
func (s *Service) GetPreferences(ctx context.Context, userID int64) (*Preferences, error) {
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		return &Preferences{
			UserID:        userID,
			Language:      defaultLanguage,
			Timezone:      defaultTimezone,
			Notifications: true,
		}, nil
	}
	return prefs, nil
}

func (s *Service) SetLanguage(ctx context.Context, userID int64, language string) error {
	logrus.Debugf("Смена языка пользователя %d на %s", userID, language)
	return s.repo.SetPreference(ctx, userID, "language", language)
}

func (s *Service) SetTimezone(ctx context.Context, userID int64, timezone string) error {
	return s.repo.SetPreference(ctx, userID, "timezone", timezone)
}

func (s *Service) SetNotifications(ctx context.Context, userID int64, enabled bool) error {
	return s.repo.SetPreference(ctx, userID, "notifications", enabled)
}
