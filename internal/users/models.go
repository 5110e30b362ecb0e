package users

import "time"

type User struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username,omitempty"`
	FirstName string    `db:"first_name" json:"first_name,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Preferences — настройки пользователя: язык ответов (uz/ru), часовой пояс
// и включены ли напоминания.
type Preferences struct {
	UserID        int64  `db:"user_id" json:"user_id"`
	Language      string `db:"language" json:"language"`
	Timezone      string `db:"timezone" json:"timezone"`
	Notifications bool   `db:"notifications" json:"notifications"`
}
