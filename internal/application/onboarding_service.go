package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/ryanly/mirum-notify/internal/domain/entity"
	repo "github.com/ryanly/mirum-notify/internal/domain/repository"
)

// UserCreatedEvent is the payload the auth provider's user-creation hook
// delivers.
type UserCreatedEvent struct {
	UID   string
	Name  string
	Email string
}

// OnboardingService creates a profile for every new user so the notification
// paths can resolve them. Fire-and-forget: there is no response path back to
// the auth provider.
type OnboardingService struct {
	Profiles        repo.ProfileRepository
	Logger          *logrus.Logger
	ES              *elasticsearch.Client
	ESProfilesIndex string
}

func NewOnboardingService(profiles repo.ProfileRepository, logger *logrus.Logger, es *elasticsearch.Client, esProfilesIndex string) *OnboardingService {
	return &OnboardingService{
		Profiles:        profiles,
		Logger:          logger,
		ES:              es,
		ESProfilesIndex: esProfilesIndex,
	}
}

func (s *OnboardingService) HandleUserCreated(ctx context.Context, ev UserCreatedEvent) error {
	p := &entity.Profile{ID: ev.UID, Name: ev.Name, Email: ev.Email}
	if err := s.Profiles.Create(ctx, p); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": p.ID, "email": p.Email}).Info("profile created")
	}
	// Search index is a convenience; never fail onboarding over it.
	_ = s.indexProfile(ctx, p)
	return nil
}

func (s *OnboardingService) indexProfile(ctx context.Context, p *entity.Profile) error {
	if s.ES == nil || s.ESProfilesIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         p.ID,
		"name":       p.Name,
		"email":      p.Email,
		"created_at": p.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESProfilesIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", p.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", p.ID).Warn("es index response error")
	}
	return nil
}
