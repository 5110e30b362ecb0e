package calendar

import (
	"assistantbot/internal/googleauth"
	"assistantbot/pkg/config"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// Длительность события по умолчанию: сообщение задает только время начала.
const defaultEventDuration = 60 * time.Minute

type Service struct {
	db           *sqlx.DB
	cfg          *config.Config
	googleClient *googleauth.Client
}

type Event struct {
	ID            string    `db:"id"`
	UserID        int64     `db:"user_id"`
	GoogleEventID string    `db:"google_event_id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	StartTime     time.Time `db:"start_time"`
	EndTime       time.Time `db:"end_time"`
	ReminderSent  bool      `db:"reminder_sent"`
	CreatedAt     time.Time `db:"created_at"`
}

func NewService(db *sqlx.DB, cfg *config.Config, googleClient *googleauth.Client) *Service {
	return &Service{
		db:           db,
		cfg:          cfg,
		googleClient: googleClient,
	}
}

// CreateEvent сохраняет событие локально и создает его в Google Calendar
// пользователя. Возвращает локальный ID и ссылку на событие в календаре.
func (s *Service) CreateEvent(ctx context.Context, userID int64, title string, startTime time.Time, description string) (string, string, error) {
	eventID := uuid.New().String()
	endTime := startTime.Add(defaultEventDuration)

	event := &Event{
		ID:          eventID,
		UserID:      userID,
		Title:       title,
		Description: description,
		StartTime:   startTime,
		EndTime:     endTime,
		CreatedAt:   time.Now(),
	}

	query := `
		INSERT INTO events (id, user_id, title, description, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(ctx, query, eventID, userID, title, description, startTime, endTime, event.CreatedAt)
	if err != nil {
		return "", "", fmt.Errorf("ошибка при сохранении события: %v", err)
	}

	googleEventID, link, err := s.createGoogleEvent(ctx, userID, event)
	if err != nil {
		logrus.Warnf("Не удалось создать событие в Google Calendar: %v", err)
		return eventID, "", nil
	}

	updateQuery := `UPDATE events SET google_event_id = $1 WHERE id = $2`
	_, _ = s.db.ExecContext(ctx, updateQuery, googleEventID, eventID)
	logrus.Infof("Событие создано в Google Calendar (ID: %s)", googleEventID)

	return eventID, link, nil
}

func (s *Service) GetUpcomingEvents(ctx context.Context, userID int64, period time.Duration) ([]Event, error) {
	query := `
		SELECT id, user_id, COALESCE(google_event_id, '') AS google_event_id, title, description,
			start_time, end_time, reminder_sent, created_at
		FROM events
		WHERE user_id = $1 AND start_time BETWEEN $2 AND $3
		ORDER BY start_time ASC
	`

	now := time.Now()
	end := now.Add(period)

	var events []Event
	err := s.db.SelectContext(ctx, &events, query, userID, now, end)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении предстоящих событий: %v", err)
	}

	return events, nil
}

func (s *Service) checkReminders(ctx context.Context) ([]Event, error) {
	query := `
		SELECT e.id, e.user_id, COALESCE(e.google_event_id, '') AS google_event_id, e.title, e.description,
			e.start_time, e.end_time, e.reminder_sent, e.created_at
		FROM events e
		LEFT JOIN preferences p ON p.user_id = e.user_id
		WHERE e.start_time BETWEEN $1 AND $2
		AND e.reminder_sent = false
		AND COALESCE(p.notifications, true) = true
		ORDER BY e.start_time ASC
	`

	now := time.Now()
	halfHourLater := now.Add(30 * time.Minute)

	var events []Event
	err := s.db.SelectContext(ctx, &events, query, now, halfHourLater)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении событий для напоминаний: %v", err)
	}

	return events, nil
}

func (s *Service) markReminderSent(ctx context.Context, eventID string) error {
	query := `UPDATE events SET reminder_sent = true WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, eventID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении статуса напоминания: %v", err)
	}

	return nil
}

// StartReminderChecker запускает фоновую горутину, напоминающую пользователю
// о событии за полчаса до начала. Пользователи с выключенными уведомлениями
// пропускаются.
func (s *Service) StartReminderChecker(sendMessage func(int64, string) error) {
	go func() {
		ticker := time.NewTicker(20 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			ctx := context.Background()
			events, err := s.checkReminders(ctx)
			if err != nil {
				logrus.Errorf("Ошибка при проверке напоминаний: %v", err)
				continue
			}

			for _, event := range events {
				message := fmt.Sprintf("⏰ Eslatma / Напоминание: '%s' — %s",
					event.Title, event.StartTime.Format("15:04"))

				if err := sendMessage(event.UserID, message); err != nil {
					logrus.Errorf("Ошибка при отправке напоминания пользователю %d: %v", event.UserID, err)
					continue
				}

				if err := s.markReminderSent(ctx, event.ID); err != nil {
					logrus.Errorf("Ошибка при обновлении статуса напоминания: %v", err)
				}
			}
		}
	}()
}
