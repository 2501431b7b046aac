package application

import (
	"context"
	"testing"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardingCreatesProfile(t *testing.T) {
	profiles := &fakeProfileRepo{}
	logger, _ := logrustest.NewNullLogger()
	s := NewOnboardingService(profiles, logger, nil, "")

	ev := UserCreatedEvent{UID: "u1", Name: "Ryan", Email: "ryan@example.com"}
	require.NoError(t, s.HandleUserCreated(context.Background(), ev))

	p, err := profiles.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ryan", p.Name)
	assert.Equal(t, "ryan@example.com", p.Email)
}
