package calendar

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// createGoogleEvent создает событие в основном календаре пользователя.
// Время передается в настроенном часовом поясе, напоминания — всплывающие
// за 30 и за 10 минут.
func (s *Service) createGoogleEvent(ctx context.Context, userID int64, event *Event) (string, string, error) {
	client, err := s.googleClient.HTTPClient(ctx, userID)
	if err != nil {
		return "", "", err
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", "", fmt.Errorf("не удалось создать сервис календаря: %v", err)
	}

	calendarEvent := &calendar.Event{
		Summary:     event.Title,
		Description: event.Description,
		Start: &calendar.EventDateTime{
			DateTime: event.StartTime.Format(time.RFC3339),
			TimeZone: s.cfg.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: event.EndTime.Format(time.RFC3339),
			TimeZone: s.cfg.Timezone,
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: 30},
				{Method: "popup", Minutes: 10},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	createdEvent, err := srv.Events.Insert("primary", calendarEvent).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("не удалось создать событие: %v", err)
	}

	return createdEvent.Id, createdEvent.HtmlLink, nil
}

// ListUserCalendars возвращает календари пользователя.
func (s *Service) ListUserCalendars(ctx context.Context, userID int64) ([]*calendar.CalendarListEntry, error) {
	client, err := s.googleClient.HTTPClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("не удалось создать сервис календаря: %v", err)
	}

	calendarList, err := srv.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список календарей: %v", err)
	}

	return calendarList.Items, nil
}
