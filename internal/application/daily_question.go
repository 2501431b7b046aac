package application

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ryanly/mirum-notify/internal/domain/entity"
	repo "github.com/ryanly/mirum-notify/internal/domain/repository"
	"github.com/ryanly/mirum-notify/pkg/helpers"
	"github.com/ryanly/mirum-notify/pkg/mailer"
	mailtpl "github.com/ryanly/mirum-notify/pkg/mailer/templates"
	"github.com/ryanly/mirum-notify/pkg/trivia"
)

// DailyQuestionService runs the question-of-the-day job: pick a category,
// fetch a clue, archive it, mail everyone the question.
type DailyQuestionService struct {
	Profiles repo.ProfileRepository
	Archive  repo.QuestionArchive
	Trivia   *trivia.Client
	Pub      Publisher
	Logger   *logrus.Logger

	// Optional: dedupe lock across overlapping scheduler ticks.
	Redis *redis.Client
	// Optional: raw clue snapshot archive.
	GCS       *storage.Client
	GCSBucket string

	AppURL      string
	Categories  []int
	MaxAttempts int

	// Optional: fixed source for deterministic tests. Leave nil in
	// production; each run then draws its own source.
	Rand *rand.Rand
}

// rng returns the random source for one run. Ticks can overlap (the dedupe
// lock is best-effort) and *rand.Rand is not safe for concurrent use, so
// every run without an injected source gets a fresh one, seeded off the
// lock-protected package generator.
func (s *DailyQuestionService) rng() *rand.Rand {
	if s.Rand != nil {
		return s.Rand
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

// Run executes one daily tick. The caller (the trigger handler) logs the
// error and reports success=false; nothing retries.
func (s *DailyQuestionService) Run(ctx context.Context) error {
	if s.Redis != nil {
		day := time.Now().UTC().Format("2006-01-02")
		won, err := helpers.AcquireOnce(ctx, s.Redis, "daily_question:"+day, 23*time.Hour)
		if err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).Warn("daily lock unavailable, running anyway")
			}
		} else if !won {
			if s.Logger != nil {
				s.Logger.WithField("day", day).Info("daily question already sent")
			}
			return nil
		}
	}

	profiles, err := s.Profiles.List(ctx)
	if err != nil {
		return fmt.Errorf("read profile directory: %w", err)
	}

	if len(s.Categories) == 0 {
		return fmt.Errorf("no trivia categories configured")
	}
	rng := s.rng()
	categoryID := s.Categories[rng.Intn(len(s.Categories))]

	cat, err := s.Trivia.Category(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("fetch category %d: %w", categoryID, err)
	}

	clue, err := trivia.PickClue(cat.Clues, rng, s.MaxAttempts)
	if err != nil {
		return fmt.Errorf("category %d: %w", categoryID, err)
	}

	title := trivia.TitleCase(cat.Title)

	q := &entity.Question{Category: title, Question: clue.Question, Answer: clue.Answer}
	if err := s.Archive.Append(ctx, q); err != nil {
		return fmt.Errorf("archive question: %w", err)
	}

	s.snapshotClues(ctx, cat)

	if len(profiles) == 0 {
		if s.Logger != nil {
			s.Logger.Info("no profiles to mail, question archived only")
		}
		return nil
	}
	recipients := make([]string, 0, len(profiles))
	for _, p := range profiles {
		recipients = append(recipients, p.Email)
	}

	job := mailer.EmailJob{
		Recipients: recipients,
		Template:   mailtpl.DailyQuestion,
		Data:       mailtpl.NewDailyQuestionData(s.AppURL, title, clue.Question),
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		return fmt.Errorf("enqueue daily question: %w", err)
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"category":   title,
			"recipients": len(recipients),
			"archive_id": q.ID,
		}).Info("daily question sent")
	}
	return nil
}

// snapshotClues uploads the raw category payload to GCS as an audit artifact.
// Best-effort; a failed upload only logs.
func (s *DailyQuestionService) snapshotClues(ctx context.Context, cat *trivia.Category) {
	if s.GCS == nil || s.GCSBucket == "" {
		return
	}
	b, err := json.Marshal(cat)
	if err != nil {
		return
	}
	path := fmt.Sprintf("clues/%s-category-%d.json", time.Now().UTC().Format("2006-01-02"), cat.ID)
	if _, err := helpers.UploadJSON(ctx, s.GCS, s.GCSBucket, path, b); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("path", path).Warn("clue snapshot upload failed")
		}
	}
}
