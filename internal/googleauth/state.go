package googleauth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrStateNotFound         = errors.New("state-токен не найден или истек")
	ErrStateAlreadyUsed      = errors.New("state-токен уже был использован")
	ErrFailedToGenerateState = errors.New("не удалось сгенерировать state-токен")
)

const (
	stateTokenTTL         = 10 * time.Minute
	stateTokenLengthBytes = 16
)

type stateTokenInfo struct {
	UserID    int64
	ExpiresAt time.Time
	Used      bool
}

// StateService выдает одноразовые state-токены для OAuth-потока: токен
// связывает callback от Google с пользователем Telegram и защищает от
// подмены state. Истекшие токены вычищаются фоновой горутиной.
type StateService struct {
	tokens map[string]stateTokenInfo
	mu     sync.RWMutex
}

func NewStateService() *StateService {
	s := &StateService{
		tokens: make(map[string]stateTokenInfo),
	}
	go s.cleanupExpiredTokens()
	return s
}

func (s *StateService) GenerateStateToken(userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bytes := make([]byte, stateTokenLengthBytes)
	if _, err := rand.Read(bytes); err != nil {
		logrus.Errorf("Ошибка генерации случайных байт для state-токена: %v", err)
		return "", ErrFailedToGenerateState
	}
	token := hex.EncodeToString(bytes)

	s.tokens[token] = stateTokenInfo{
		UserID:    userID,
		ExpiresAt: time.Now().Add(stateTokenTTL),
		Used:      false,
	}
	logrus.Debugf("Сгенерирован state-токен для user_id %d, истекает в %v", userID, s.tokens[token].ExpiresAt)
	return token, nil
}

func (s *StateService) ValidateAndUseStateToken(token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, exists := s.tokens[token]
	if !exists {
		logrus.Warnf("Попытка использовать несуществующий state-токен: %s", token)
		return 0, ErrStateNotFound
	}

	if time.Now().After(info.ExpiresAt) {
		logrus.Warnf("Попытка использовать истекший state-токен (истек %v)", info.ExpiresAt)
		delete(s.tokens, token)
		return 0, ErrStateNotFound
	}

	if info.Used {
		logrus.Warnf("Попытка повторно использовать state-токен: %s", token)
		return 0, ErrStateAlreadyUsed
	}

	info.Used = true
	s.tokens[token] = info

	return info.UserID, nil
}

func (s *StateService) cleanupExpiredTokens() {
	ticker := time.NewTicker(stateTokenTTL / 2)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for token, info := range s.tokens {
			if now.After(info.ExpiresAt) || info.Used {
				delete(s.tokens, token)
			}
		}
		s.mu.Unlock()
	}
}
