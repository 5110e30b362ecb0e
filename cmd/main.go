package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assistantbot/internal/api"
	"assistantbot/internal/calendar"
	"assistantbot/internal/googleauth"
	"assistantbot/internal/middleware"
	"assistantbot/internal/notes"
	"assistantbot/internal/telegram"
	"assistantbot/internal/users"
	"assistantbot/pkg/config"
	"assistantbot/pkg/db"

	"github.com/sirupsen/logrus"
)

func main() {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	cfg := config.LoadConfig()

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logrus.Fatalf("Ошибка при подключении к базе данных: %v", err)
	}
	defer database.Close()

	if err := db.InitSchema(context.Background(), database); err != nil {
		logrus.Fatalf("Ошибка при инициализации схемы: %v", err)
	}

	stateService := googleauth.NewStateService()
	authClient, err := googleauth.NewClient(cfg, database, stateService)
	if err != nil {
		logrus.Fatalf("Ошибка при инициализации Google OAuth: %v", err)
	}

	calendarService := calendar.NewService(database, cfg, authClient)
	notesService := notes.NewService(notes.NewRepository(database), authClient)
	userService := users.NewService(users.NewRepository(database))

	telegramHandler, err := telegram.NewHandler(cfg, authClient, calendarService, notesService, userService)
	if err != nil {
		logrus.Fatalf("Ошибка при инициализации Telegram бота: %v", err)
	}

	apiHandler := api.NewHandler(authClient, calendarService, notesService)

	calendarService.StartReminderChecker(telegramHandler.SendMessage)

	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", telegramHandler.HandleWebhook)

	mux.Handle("/api/auth/status/", middleware.CORSMiddleware(http.HandlerFunc(apiHandler.AuthStatusHandler)))
	mux.Handle("/api/auth/initiate", middleware.CORSMiddleware(http.HandlerFunc(apiHandler.AuthInitiateHandler)))
	mux.Handle("/api/auth/revoke/", middleware.CORSMiddleware(http.HandlerFunc(apiHandler.AuthRevokeHandler)))
	mux.Handle("/oauth/callback", middleware.CORSMiddleware(http.HandlerFunc(apiHandler.OAuthCallbackHandler)))

	mux.Handle("/api/calendar/create", middleware.CORSMiddleware(http.HandlerFunc(apiHandler.CreateCalendarEventHandler)))
	mux.Handle("/api/calendar/list/", middleware.CORSMiddleware(http.HandlerFunc(apiHandler.ListCalendarsHandler)))
	mux.Handle("/api/notes/create", middleware.CORSMiddleware(http.HandlerFunc(apiHandler.CreateNoteHandler)))

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: mux,
	}

	go func() {
		logrus.Infof("Сервер запущен на порту %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Ошибка при запуске сервера: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Завершение работы сервера...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Fatalf("Ошибка при остановке сервера: %v", err)
	}

	logrus.Info("Сервер остановлен")
}
