package router

import (
	"github.com/ryanly/mirum-notify/internal/application"
	"github.com/ryanly/mirum-notify/internal/container"
	pginfra "github.com/ryanly/mirum-notify/internal/infrastructure/postgres"
	handlers "github.com/ryanly/mirum-notify/internal/interface/http"
	"github.com/ryanly/mirum-notify/internal/router/modules"
	"github.com/ryanly/mirum-notify/pkg/trivia"
)

func buildTriggerHandler() *handlers.TriggerHandler {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pub := container.GetRabbitPub()

	profiles := pginfra.NewProfileRepository(container.GetPGPool())
	proposals := pginfra.NewProposalRepository(container.GetPGPool())
	archive := pginfra.NewQuestionArchive(container.GetPGPool())

	daily := &application.DailyQuestionService{
		Profiles:    profiles,
		Archive:     archive,
		Trivia:      trivia.NewClient(cfg.TriviaBaseURL),
		Pub:         pub,
		Logger:      logger,
		Redis:       container.GetRedis(),
		GCS:         container.GetGCS(),
		GCSBucket:   cfg.GCSBucket,
		AppURL:      cfg.AppURL,
		Categories:  cfg.TriviaCategoryIDs(),
		MaxAttempts: cfg.TriviaMaxAttempts,
	}

	points := application.NewPointsNotifier(profiles, pub, logger, cfg.AppURL)
	props := application.NewProposalService(profiles, proposals, pub, logger, cfg.AppURL)
	onboarding := application.NewOnboardingService(profiles, logger, container.GetES(), cfg.ESProfilesIndex)

	return handlers.NewTriggerHandler(daily, points, props, onboarding, logger)
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	r.Add(modules.NewTriggerModule(buildTriggerHandler(), container.GetTriggerTokens()))
}
