package api

import (
	"assistantbot/internal/calendar"
	"assistantbot/internal/googleauth"
	"assistantbot/internal/notes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sirupsen/logrus"
)

// Handler обслуживает HTTP API для веб-приложения: статус авторизации,
// OAuth-callback и создание событий и заметок.
type Handler struct {
	authClient      *googleauth.Client
	calendarService *calendar.Service
	notesService    *notes.Service
}

func NewHandler(
	authClient *googleauth.Client,
	calendarService *calendar.Service,
	notesService *notes.Service,
) *Handler {
	return &Handler{
		authClient:      authClient,
		calendarService: calendarService,
		notesService:    notesService,
	}
}

type AuthInitiateRequest struct {
	UserID int64 `json:"user_id"`
}

func (r AuthInitiateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
	)
}

type CalendarEventCreateRequest struct {
	UserID      int64  `json:"user_id"`
	Title       string `json:"title"`
	Datetime    string `json:"datetime"`
	Description string `json:"description"`
}

func (r CalendarEventCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Datetime, validation.Required),
	)
}

type NoteCreateRequest struct {
	UserID  int64  `json:"user_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r NoteCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
	)
}

// AuthStatusHandler отвечает на GET /api/auth/status/{user_id}.
func (h *Handler) AuthStatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	userID, err := userIDFromPath(r.URL.Path, "/api/auth/status/")
	if err != nil {
		http.Error(w, "Некорректный user_id", http.StatusBadRequest)
		return
	}

	response := map[string]interface{}{"authenticated": false}
	if h.authClient.IsAuthenticated(r.Context(), userID) {
		response["authenticated"] = true
		if email, err := h.authClient.Email(r.Context(), userID); err == nil && email != "" {
			response["email"] = email
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// AuthInitiateHandler отвечает на POST /api/auth/initiate.
func (h *Handler) AuthInitiateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	var req AuthInitiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Некорректное тело запроса", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	authURL, err := h.authClient.AuthURL(req.UserID)
	if err != nil {
		logrus.Errorf("Ошибка при генерации ссылки авторизации: %v", err)
		http.Error(w, "Не удалось сгенерировать ссылку авторизации", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"auth_url": authURL})
}

// OAuthCallbackHandler отвечает на GET /oauth/callback от Google.
func (h *Handler) OAuthCallbackHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		http.Error(w, "Отсутствуют параметры code или state", http.StatusBadRequest)
		return
	}

	email, userID, err := h.authClient.HandleCallback(r.Context(), code, state)
	if err != nil {
		logrus.Errorf("Ошибка при обработке OAuth callback: %v", err)
		http.Error(w, "Не удалось завершить авторизацию", http.StatusInternalServerError)
		return
	}

	logrus.Infof("OAuth callback успешно обработан для пользователя %d", userID)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, callbackSuccessPage, email)
}

// AuthRevokeHandler отвечает на DELETE /api/auth/revoke/{user_id}.
func (h *Handler) AuthRevokeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	userID, err := userIDFromPath(r.URL.Path, "/api/auth/revoke/")
	if err != nil {
		http.Error(w, "Некорректный user_id", http.StatusBadRequest)
		return
	}

	if err := h.authClient.Revoke(r.Context(), userID); err != nil {
		logrus.Errorf("Ошибка при отзыве авторизации пользователя %d: %v", userID, err)
		http.Error(w, "Не удалось отозвать авторизацию", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}

// CreateCalendarEventHandler отвечает на POST /api/calendar/create.
func (h *Handler) CreateCalendarEventHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	var req CalendarEventCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Некорректное тело запроса", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.authClient.IsAuthenticated(r.Context(), req.UserID) {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	startTime, err := parseEventDatetime(req.Datetime)
	if err != nil {
		http.Error(w, "Некорректный формат datetime", http.StatusBadRequest)
		return
	}

	eventID, link, err := h.calendarService.CreateEvent(r.Context(), req.UserID, req.Title, startTime, req.Description)
	if err != nil {
		logrus.Errorf("Ошибка при создании события через API: %v", err)
		http.Error(w, "Не удалось создать событие", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "created",
		"event_id": eventID,
		"link":     link,
	})
}

// ListCalendarsHandler отвечает на GET /api/calendar/list/{user_id}.
func (h *Handler) ListCalendarsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	userID, err := userIDFromPath(r.URL.Path, "/api/calendar/list/")
	if err != nil {
		http.Error(w, "Некорректный user_id", http.StatusBadRequest)
		return
	}

	if !h.authClient.IsAuthenticated(r.Context(), userID) {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	entries, err := h.calendarService.ListUserCalendars(r.Context(), userID)
	if err != nil {
		logrus.Errorf("Ошибка при получении календарей пользователя %d: %v", userID, err)
		http.Error(w, "Не удалось получить календари", http.StatusInternalServerError)
		return
	}

	type calendarInfo struct {
		ID         string `json:"id"`
		Summary    string `json:"summary"`
		Primary    bool   `json:"primary"`
		AccessRole string `json:"accessRole"`
	}

	calendars := make([]calendarInfo, 0, len(entries))
	for _, entry := range entries {
		calendars = append(calendars, calendarInfo{
			ID:         entry.Id,
			Summary:    entry.Summary,
			Primary:    entry.Primary,
			AccessRole: entry.AccessRole,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"calendars": calendars})
}

// CreateNoteHandler отвечает на POST /api/notes/create.
func (h *Handler) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	var req NoteCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Некорректное тело запроса", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.authClient.IsAuthenticated(r.Context(), req.UserID) {
		http.Error(w, "Пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	noteID, err := h.notesService.CreateNote(r.Context(), req.UserID, req.Title, req.Content)
	if err != nil {
		logrus.Errorf("Ошибка при создании заметки через API: %v", err)
		http.Error(w, "Не удалось создать заметку", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "created",
		"note_id": noteID,
	})
}

// parseEventDatetime принимает ISO-время с зоной или без нее.
func parseEventDatetime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", value, time.Local)
}

func userIDFromPath(path, prefix string) (int64, error) {
	raw := strings.TrimPrefix(path, prefix)
	return strconv.ParseInt(raw, 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Ошибка при записи JSON-ответа: %v", err)
	}
}

const callbackSuccessPage = `<html>
	<head>
		<title>Authentication Successful</title>
		<style>
			body { font-family: Arial, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background-color: #f0f0f0; }
			.container { text-align: center; background: white; padding: 40px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
			.success { color: #4CAF50; font-size: 24px; margin-bottom: 20px; }
			.email { color: #666; margin-bottom: 20px; }
			.message { color: #333; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="success">✓ Authentication Successful!</div>
			<div class="email">Authenticated as: %s</div>
			<div class="message">You can now close this window and return to Telegram.</div>
		</div>
	</body>
</html>`
