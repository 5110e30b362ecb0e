package telegram

import (
	"assistantbot/internal/calendar"
	"assistantbot/internal/googleauth"
	"assistantbot/internal/notes"
	"assistantbot/internal/parser"
	"assistantbot/internal/users"
	"assistantbot/pkg/config"
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	bot             *tgbotapi.BotAPI
	cfg             *config.Config
	authClient      *googleauth.Client
	calendarService *calendar.Service
	notesService    *notes.Service
	userService     *users.Service
	location        *time.Location
}

func NewHandler(
	cfg *config.Config,
	authClient *googleauth.Client,
	calendarService *calendar.Service,
	notesService *notes.Service,
	userService *users.Service,
) (*Handler, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка при инициализации Telegram бота: %v", err)
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logrus.Warnf("Не удалось загрузить часовой пояс %s, используется UTC: %v", cfg.Timezone, err)
		location = time.UTC
	}

	logrus.Infof("Telegram бот запущен: %s", bot.Self.UserName)

	return &Handler{
		bot:             bot,
		cfg:             cfg,
		authClient:      authClient,
		calendarService: calendarService,
		notesService:    notesService,
		userService:     userService,
		location:        location,
	}, nil
}

func (h *Handler) GetBotInfo() *tgbotapi.User {
	return &h.bot.Self
}

func (h *Handler) SetupWebhook() error {
	webhookURL := fmt.Sprintf("https://%s:%s/webhook", h.cfg.ServerHost, h.cfg.ServerPort)

	webhookConfig, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return fmt.Errorf("ошибка при создании конфига вебхука: %w", err)
	}

	if _, err := h.bot.Request(webhookConfig); err != nil {
		return fmt.Errorf("ошибка при установке вебхука: %v", err)
	}

	return nil
}

func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := h.bot.HandleUpdate(r)
	if err != nil {
		logrus.Errorf("Ошибка при обработке обновления: %v", err)
		return
	}

	h.handleUpdate(*update)
}

func (h *Handler) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := h.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("ошибка при отправке сообщения: %v", err)
	}
	return nil
}

func (h *Handler) handleUpdate(update tgbotapi.Update) {
	ctx := context.Background()

	if update.Message == nil {
		return
	}

	err := h.userService.StoreUser(ctx, update.Message.From.ID, update.Message.From.UserName, update.Message.From.FirstName)
	if err != nil {
		logrus.Errorf("Ошибка при сохранении пользователя: %v", err)
	}

	switch update.Message.Command() {
	case "start":
		h.handleStart(ctx, update)
		return
	case "help":
		h.handleHelp(update)
		return
	case "auth":
		h.handleAuth(ctx, update)
		return
	case "status":
		h.handleStatus(ctx, update)
		return
	}

	if update.Message.Text != "" {
		h.handleTextMessage(ctx, update)
	}
}

func (h *Handler) handleStart(ctx context.Context, update tgbotapi.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if h.authClient.IsAuthenticated(ctx, userID) {
		h.SendMessage(chatID,
			"🎉 Salom! Men sizning shaxsiy yordamchingizman.\n"+
				"👋 Привет! Я ваш персональный помощник.\n\n"+
				"Menga xabar yozing va men:\n"+
				"📅 Google Calendar'ga voqea qo'shaman\n"+
				"📝 Google Keep'ga eslatma yarataman\n\n"+
				"Напишите мне, и я:\n"+
				"📅 Добавлю событие в Google Calendar\n"+
				"📝 Создам заметку в Google Keep\n\n"+
				"Misol/Пример:\n"+
				"• 'Ertaga soat 3 da uchrashuv' → Calendar\n"+
				"• 'Non va sut sotib olish' → Keep")
		return
	}

	h.sendAuthKeyboard(chatID, userID,
		"👋 Assalomu alaykum! Google hisobingizni ulash kerak.\n"+
			"👋 Здравствуйте! Необходимо подключить ваш Google аккаунт.\n\n"+
			"Tugmani bosing / Нажмите кнопку:")
}

func (h *Handler) handleHelp(update tgbotapi.Update) {
	h.SendMessage(update.Message.Chat.ID,
		"📖 Yordam / Помощь:\n\n"+
			"Men tabiiy tilda yozilgan xabarlarni tushunaman:\n"+
			"Я понимаю сообщения на естественном языке:\n\n"+
			"📅 Calendar uchun / для Calendar:\n"+
			"• 'Ertaga soat 14:00 da doktor'\n"+
			"• 'Завтра в 14:00 к врачу'\n"+
			"• 'Dushanba kuni soat 10 da yig'ilish'\n"+
			"• 'В понедельник в 10 собрание'\n\n"+
			"📝 Keep uchun / для Keep:\n"+
			"• 'Eslatma: non va sut olish'\n"+
			"• 'Заметка: купить хлеб и молоко'\n"+
			"• 'Kitob o'qishni unutma'\n"+
			"• 'Не забыть прочитать книгу'\n\n"+
			"Buyruqlar / Команды:\n"+
			"/start - Boshlash / Начать\n"+
			"/help - Yordam / Помощь\n"+
			"/auth - Qayta kirish / Переавторизация\n"+
			"/status - Holat / Статус")
}

func (h *Handler) handleAuth(ctx context.Context, update tgbotapi.Update) {
	h.sendAuthKeyboard(update.Message.Chat.ID, update.Message.From.ID,
		"Google hisobingizni ulash uchun tugmani bosing:\n"+
			"Нажмите кнопку для подключения Google аккаунта:")
}

func (h *Handler) handleStatus(ctx context.Context, update tgbotapi.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if !h.authClient.IsAuthenticated(ctx, userID) {
		h.SendMessage(chatID,
			"❌ Ulanmagan / Не подключено\n"+
				"/auth buyrug'ini ishga tushiring\n"+
				"Используйте команду /auth")
		return
	}

	email, err := h.authClient.Email(ctx, userID)
	if err != nil || email == "" {
		email = "N/A"
	}

	h.SendMessage(chatID, fmt.Sprintf(
		"✅ Ulangan / Подключено\n"+
			"📧 Email: %s\n"+
			"📅 Calendar: ✅\n"+
			"📝 Keep: ✅", email))
}

func (h *Handler) handleTextMessage(ctx context.Context, update tgbotapi.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := update.Message.Text

	if !h.authClient.IsAuthenticated(ctx, userID) {
		h.sendAuthKeyboard(chatID, userID,
			"⚠️ Avval Google hisobingizni ulang\n"+
				"⚠️ Сначала подключите Google аккаунт")
		return
	}

	typing := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := h.bot.Request(typing); err != nil {
		logrus.Debugf("Не удалось отправить индикатор набора: %v", err)
	}

	parsed := parser.Parse(text, time.Now().In(h.location))
	if parsed == nil {
		h.SendMessage(chatID,
			"🤔 Tushunmadim. Iltimos, aniqroq yozing.\n"+
				"🤔 Не понял. Пожалуйста, напишите точнее.\n\n"+
				"Yordam uchun /help buyrug'ini ishlating")
		return
	}

	switch parsed.Intent {
	case parser.IntentCalendar:
		h.createEvent(ctx, chatID, userID, parsed)
	case parser.IntentNote:
		h.createNote(ctx, chatID, userID, parsed)
	}
}

func (h *Handler) createEvent(ctx context.Context, chatID, userID int64, parsed *parser.ParsedMessage) {
	_, link, err := h.calendarService.CreateEvent(ctx, userID, parsed.Title, parsed.StartTime, parsed.Description)
	if err != nil {
		logrus.Errorf("Ошибка при создании события для пользователя %d: %v", userID, err)
		h.sendErrorReply(chatID)
		return
	}

	reply := fmt.Sprintf(
		"✅ Calendar'ga qo'shildi / Добавлено в Calendar\n\n"+
			"📅 %s\n"+
			"🕐 %s", parsed.Title, parsed.StartTime.Format("02.01.2006 15:04"))
	if link != "" {
		reply += fmt.Sprintf("\n🔗 %s", link)
	}

	h.SendMessage(chatID, reply)
}

func (h *Handler) createNote(ctx context.Context, chatID, userID int64, parsed *parser.ParsedMessage) {
	_, err := h.notesService.CreateNote(ctx, userID, parsed.Title, parsed.Content)
	if err != nil {
		logrus.Errorf("Ошибка при создании заметки для пользователя %d: %v", userID, err)
		h.sendErrorReply(chatID)
		return
	}

	h.SendMessage(chatID, fmt.Sprintf(
		"✅ Keep'ga saqlandi / Сохранено в Keep\n\n"+
			"📝 %s", parsed.Title))
}

func (h *Handler) sendErrorReply(chatID int64) {
	h.SendMessage(chatID,
		"❌ Xatolik yuz berdi / Произошла ошибка\n"+
			"Iltimos qayta urinib ko'ring / Попробуйте еще раз")
}

func (h *Handler) sendAuthKeyboard(chatID, userID int64, text string) {
	authURL, err := h.authClient.AuthURL(userID)
	if err != nil {
		logrus.Errorf("Ошибка при генерации ссылки авторизации для пользователя %d: %v", userID, err)
		h.sendErrorReply(chatID)
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔐 Google bilan kirish / Войти через Google", authURL),
		),
	)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := h.bot.Send(msg); err != nil {
		logrus.Errorf("Ошибка при отправке сообщения с кнопкой авторизации: %v", err)
	}
}
