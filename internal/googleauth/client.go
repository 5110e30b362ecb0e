package googleauth

import (
	"assistantbot/pkg/config"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/keep/v1"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

// Client хранит OAuth-конфигурацию Google и токены пользователей в Postgres.
// Токены обновляются по refresh_token при истечении срока действия.
type Client struct {
	config *oauth2.Config
	db     *sqlx.DB
	states *StateService
}

func NewClient(cfg *config.Config, db *sqlx.DB, states *StateService) (*Client, error) {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return nil, fmt.Errorf("не заданы GOOGLE_CLIENT_ID и GOOGLE_CLIENT_SECRET")
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURI,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"openid",
			oauth2api.UserinfoEmailScope,
			oauth2api.UserinfoProfileScope,
			calendar.CalendarScope,
			tasks.TasksScope,
			keep.KeepScope,
		},
	}

	return &Client{
		config: oauthConfig,
		db:     db,
		states: states,
	}, nil
}

// AuthURL выдает ссылку авторизации Google для пользователя Telegram.
// В state кладется одноразовый токен, привязанный к user_id.
func (c *Client) AuthURL(userID int64) (string, error) {
	state, err := c.states.GenerateStateToken(userID)
	if err != nil {
		return "", err
	}

	return c.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// HandleCallback обменивает код авторизации на токены, запрашивает email
// пользователя и сохраняет все в базе. Возвращает email и Telegram user_id.
func (c *Client) HandleCallback(ctx context.Context, code, state string) (string, int64, error) {
	userID, err := c.states.ValidateAndUseStateToken(state)
	if err != nil {
		return "", 0, err
	}

	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return "", 0, fmt.Errorf("не удалось обменять код на токен: %v", err)
	}

	email, err := c.fetchUserEmail(ctx, token)
	if err != nil {
		logrus.Warnf("Не удалось получить email пользователя %d: %v", userID, err)
	}

	if err := c.saveToken(ctx, userID, token, email); err != nil {
		return "", 0, err
	}

	logrus.Infof("Пользователь %d авторизован в Google (%s)", userID, email)
	return email, userID, nil
}

func (c *Client) fetchUserEmail(ctx context.Context, token *oauth2.Token) (string, error) {
	srv, err := oauth2api.NewService(ctx, option.WithTokenSource(c.config.TokenSource(ctx, token)))
	if err != nil {
		return "", fmt.Errorf("не удалось создать сервис userinfo: %v", err)
	}

	userInfo, err := srv.Userinfo.Get().Do()
	if err != nil {
		return "", fmt.Errorf("не удалось запросить userinfo: %v", err)
	}

	return userInfo.Email, nil
}

// HTTPClient возвращает авторизованный HTTP-клиент пользователя, при
// необходимости обновляя истекший токен.
func (c *Client) HTTPClient(ctx context.Context, userID int64) (*http.Client, error) {
	token, email, err := c.loadToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("пользователь не авторизован в Google: %v", err)
	}

	if token.Expiry.Before(time.Now()) {
		newToken, err := c.config.TokenSource(ctx, token).Token()
		if err != nil {
			return nil, fmt.Errorf("не удалось обновить токен: %v", err)
		}
		if newToken.AccessToken != token.AccessToken {
			token = newToken
			if err := c.saveToken(ctx, userID, token, email); err != nil {
				return nil, err
			}
		}
	}

	return c.config.Client(ctx, token), nil
}

// IsAuthenticated сообщает, есть ли у пользователя рабочая авторизация
// Google: сохраненный токен должен быть либо действующим, либо обновляемым.
func (c *Client) IsAuthenticated(ctx context.Context, userID int64) bool {
	token, _, err := c.loadToken(ctx, userID)
	if err != nil {
		return false
	}

	if token.Expiry.After(time.Now()) {
		return true
	}

	return token.RefreshToken != ""
}

// Email возвращает сохраненный при авторизации адрес пользователя.
func (c *Client) Email(ctx context.Context, userID int64) (string, error) {
	_, email, err := c.loadToken(ctx, userID)
	return email, err
}
