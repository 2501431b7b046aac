package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ryanly/mirum-notify/internal/domain/entity"
	repo "github.com/ryanly/mirum-notify/internal/domain/repository"
	"github.com/ryanly/mirum-notify/pkg/mailer"
	mailtpl "github.com/ryanly/mirum-notify/pkg/mailer/templates"
)

var ErrEmptyChange = errors.New("points change has neither a before nor an after snapshot")

// PointsNotifier reacts to writes on the points table with before/after
// snapshots from the change feed. Creations mail the new owner, deletions are
// logged silently, updates mail everyone the entry touched.
type PointsNotifier struct {
	Profiles repo.ProfileRepository
	Pub      Publisher
	Logger   *logrus.Logger
	AppURL   string
}

func NewPointsNotifier(profiles repo.ProfileRepository, pub Publisher, logger *logrus.Logger, appURL string) *PointsNotifier {
	return &PointsNotifier{Profiles: profiles, Pub: pub, Logger: logger, AppURL: appURL}
}

func (n *PointsNotifier) HandleChange(ctx context.Context, before, after *entity.PointsEntry) error {
	switch {
	case before == nil && after == nil:
		return ErrEmptyChange
	case before == nil:
		return n.notifyCreated(ctx, after)
	case after == nil:
		// Deletions stay silent on purpose; recipients never hear about
		// removed entries.
		if n.Logger != nil {
			n.Logger.WithFields(logrus.Fields{
				"entry_id": before.ID,
				"user_id":  before.UserID,
				"points":   before.Points,
			}).Info("points entry deleted, no notification")
		}
		return nil
	default:
		return n.notifyUpdated(ctx, before, after)
	}
}

func (n *PointsNotifier) notifyCreated(ctx context.Context, e *entity.PointsEntry) error {
	p, err := n.Profiles.GetByID(ctx, e.UserID)
	if err != nil {
		return fmt.Errorf("lookup profile %s: %w", e.UserID, err)
	}
	job := mailer.EmailJob{
		To:       p.Email,
		Template: mailtpl.PointsAwarded,
		Data:     mailtpl.NewPointsAwardedData(n.AppURL, p.Name, e.Points, e.Reason),
	}
	return n.Pub.PublishJSON(ctx, job)
}

func (n *PointsNotifier) notifyUpdated(ctx context.Context, before, after *entity.PointsEntry) error {
	// Union of before/after owners covers re-assignment to another user.
	ids := []string{before.UserID}
	if after.UserID != before.UserID {
		ids = append(ids, after.UserID)
	}

	profiles := make(map[string]*entity.Profile, len(ids))
	for _, id := range ids {
		p, err := n.Profiles.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("lookup profile %s: %w", id, err)
		}
		profiles[id] = p
	}

	// Every recipient sees the same before/after diff, attributed to the
	// current owner.
	data := mailtpl.NewPointsUpdatedData(n.AppURL, profiles[after.UserID].Name, before.Points, after.Points, after.Reason)

	for _, id := range ids {
		job := mailer.EmailJob{
			To:       profiles[id].Email,
			Template: mailtpl.PointsUpdated,
			Data:     data,
		}
		if err := n.Pub.PublishJSON(ctx, job); err != nil {
			return err
		}
	}
	return nil
}
