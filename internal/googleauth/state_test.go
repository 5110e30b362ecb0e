package googleauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateTokenRoundTrip(t *testing.T) {
	s := NewStateService()

	token, err := s.GenerateStateToken(42)
	require.NoError(t, err)
	assert.Len(t, token, stateTokenLengthBytes*2)

	userID, err := s.ValidateAndUseStateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestStateTokenSingleUse(t *testing.T) {
	s := NewStateService()

	token, err := s.GenerateStateToken(42)
	require.NoError(t, err)

	_, err = s.ValidateAndUseStateToken(token)
	require.NoError(t, err)

	_, err = s.ValidateAndUseStateToken(token)
	assert.ErrorIs(t, err, ErrStateAlreadyUsed)
}

func TestStateTokenUnknown(t *testing.T) {
	s := NewStateService()

	_, err := s.ValidateAndUseStateToken("deadbeef")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestStateTokenExpired(t *testing.T) {
	s := NewStateService()

	token, err := s.GenerateStateToken(42)
	require.NoError(t, err)

	s.mu.Lock()
	info := s.tokens[token]
	info.ExpiresAt = time.Now().Add(-time.Minute)
	s.tokens[token] = info
	s.mu.Unlock()

	_, err = s.ValidateAndUseStateToken(token)
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestStateTokensAreUnique(t *testing.T) {
	s := NewStateService()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := s.GenerateStateToken(int64(i))
		require.NoError(t, err)
		_, dup := seen[token]
		assert.False(t, dup)
		seen[token] = struct{}{}
	}
}
