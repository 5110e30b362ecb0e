package googleauth

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

func (c *Client) saveToken(ctx context.Context, userID int64, token *oauth2.Token, email string) error {
	query := `
		INSERT INTO google_tokens (user_id, access_token, refresh_token, token_type, expiry, email, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			access_token = $2,
			refresh_token = COALESCE($3, google_tokens.refresh_token),
			token_type = $4,
			expiry = $5,
			email = COALESCE(NULLIF($6, ''), google_tokens.email),
			updated_at = NOW()
	`

	var refreshToken interface{} = nil
	if token.RefreshToken != "" {
		refreshToken = token.RefreshToken
	}

	_, err := c.db.ExecContext(ctx, query,
		userID,
		token.AccessToken,
		refreshToken,
		token.TokenType,
		token.Expiry,
		email)
	if err != nil {
		return fmt.Errorf("не удалось сохранить токен пользователя %d: %v", userID, err)
	}

	return nil
}

func (c *Client) loadToken(ctx context.Context, userID int64) (*oauth2.Token, string, error) {
	query := `
		SELECT access_token, COALESCE(refresh_token, '') AS refresh_token, token_type, expiry, COALESCE(email, '') AS email
		FROM google_tokens
		WHERE user_id = $1
	`

	var tokenData struct {
		AccessToken  string    `db:"access_token"`
		RefreshToken string    `db:"refresh_token"`
		TokenType    string    `db:"token_type"`
		Expiry       time.Time `db:"expiry"`
		Email        string    `db:"email"`
	}

	err := c.db.GetContext(ctx, &tokenData, query, userID)
	if err != nil {
		return nil, "", fmt.Errorf("токен не найден: %v", err)
	}

	token := &oauth2.Token{
		AccessToken:  tokenData.AccessToken,
		RefreshToken: tokenData.RefreshToken,
		TokenType:    tokenData.TokenType,
		Expiry:       tokenData.Expiry,
	}

	return token, tokenData.Email, nil
}

// Revoke удаляет авторизацию пользователя вместе с его событиями и заметками.
func (c *Client) Revoke(ctx context.Context, userID int64) error {
	statements := []string{
		`DELETE FROM notes WHERE user_id = $1`,
		`DELETE FROM events WHERE user_id = $1`,
		`DELETE FROM preferences WHERE user_id = $1`,
		`DELETE FROM google_tokens WHERE user_id = $1`,
	}

	for _, statement := range statements {
		if _, err := c.db.ExecContext(ctx, statement, userID); err != nil {
			return fmt.Errorf("ошибка при отзыве авторизации пользователя %d: %v", userID, err)
		}
	}

	logrus.Infof("Авторизация пользователя %d отозвана", userID)
	return nil
}
