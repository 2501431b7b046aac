package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerTokenRoundTrip(t *testing.T) {
	m := NewTriggerTokenManager("secret", time.Minute)

	token, err := m.Generate("scheduler")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "scheduler", claims.Source)
}

func TestTriggerTokenWrongSecret(t *testing.T) {
	m := NewTriggerTokenManager("secret", time.Minute)
	other := NewTriggerTokenManager("different", time.Minute)

	token, err := m.Generate("scheduler")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestTriggerTokenExpired(t *testing.T) {
	m := NewTriggerTokenManager("secret", -time.Minute)

	token, err := m.Generate("scheduler")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}
