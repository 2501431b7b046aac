package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ryanly/mirum-notify/internal/domain/entity"
	repo "github.com/ryanly/mirum-notify/internal/domain/repository"
	"github.com/ryanly/mirum-notify/pkg/mailer"
	mailtpl "github.com/ryanly/mirum-notify/pkg/mailer/templates"
)

// ProposalService seeds approval flags when a proposal appears and decides
// when a proposal crosses into "approved" as flags flip.
type ProposalService struct {
	Profiles  repo.ProfileRepository
	Proposals repo.ProposalRepository
	Pub       Publisher
	Logger    *logrus.Logger
	AppURL    string
}

func NewProposalService(profiles repo.ProfileRepository, proposals repo.ProposalRepository, pub Publisher, logger *logrus.Logger, appURL string) *ProposalService {
	return &ProposalService{
		Profiles:  profiles,
		Proposals: proposals,
		Pub:       pub,
		Logger:    logger,
		AppURL:    appURL,
	}
}

// fullyApproved holds iff the mapping is non-empty and every flag is set. An
// empty mapping never approves; a household with no profiles can't reach
// unanimity vacuously.
func fullyApproved(flags map[string]entity.ApprovalFlag) bool {
	if len(flags) == 0 {
		return false
	}
	for _, f := range flags {
		if !f.Approved {
			return false
		}
	}
	return true
}

// HandleCreated seeds the approval set for every profile known right now and
// notifies everyone except the proposer. The approval key set stays frozen
// afterwards; later profiles are not added to it.
func (s *ProposalService) HandleCreated(ctx context.Context, p *entity.Proposal) error {
	profiles, err := s.Profiles.List(ctx)
	if err != nil {
		return fmt.Errorf("read profile directory: %w", err)
	}

	ids := make([]string, 0, len(profiles))
	for _, pr := range profiles {
		ids = append(ids, pr.ID)
	}
	if err := s.Proposals.SeedApprovals(ctx, p.ID, ids); err != nil {
		return fmt.Errorf("seed approvals: %w", err)
	}

	proposerName := p.UserID
	recipients := make([]string, 0, len(profiles))
	for _, pr := range profiles {
		if pr.ID == p.UserID {
			proposerName = pr.Name
			continue
		}
		recipients = append(recipients, pr.Email)
	}
	if len(recipients) == 0 {
		if s.Logger != nil {
			s.Logger.WithField("proposal_id", p.ID).Info("no recipients for proposal notification")
		}
		return nil
	}

	// The seed above is already committed; a failed enqueue doesn't undo it.
	job := mailer.EmailJob{
		Recipients: recipients,
		Template:   mailtpl.ProposalCreated,
		Data:       mailtpl.NewProposalCreatedData(s.AppURL, proposerName, p.Points, p.Reason),
	}
	return s.Pub.PublishJSON(ctx, job)
}

// HandleApprovalWrite runs after any write to a proposal's approval flags. It
// reports whether this invocation performed the approved transition.
//
// The stamp plus flag re-assert happens in one conditional transaction inside
// Finalize, replacing the original's read-then-decide-then-rewrite pattern;
// the flags are re-checked under a row lock so a racing partial write can't
// slip a premature stamp through, and a second racing flip sees the stamp and
// backs off.
func (s *ProposalService) HandleApprovalWrite(ctx context.Context, proposalID string) (bool, error) {
	flags, err := s.Proposals.Approvals(ctx, proposalID)
	if err != nil {
		return false, fmt.Errorf("read approvals: %w", err)
	}
	if !fullyApproved(flags) {
		return false, nil
	}

	stamped, err := s.Proposals.Finalize(ctx, proposalID)
	if err != nil {
		return false, fmt.Errorf("finalize proposal: %w", err)
	}
	if !stamped {
		// Another invocation won the stamp and owns the fan-out.
		return false, nil
	}

	p, err := s.Proposals.GetByID(ctx, proposalID)
	if err != nil {
		return true, err
	}

	// Directory read happens after the stamp commits, so profiles added
	// since creation still get the approved mail even though they were
	// never part of the approval requirement.
	profiles, err := s.Profiles.List(ctx)
	if err != nil {
		return true, fmt.Errorf("read profile directory: %w", err)
	}

	proposerName := p.UserID
	recipients := make([]string, 0, len(profiles))
	for _, pr := range profiles {
		if pr.ID == p.UserID {
			proposerName = pr.Name
		}
		recipients = append(recipients, pr.Email)
	}
	if len(recipients) == 0 {
		return true, nil
	}

	job := mailer.EmailJob{
		Recipients: recipients,
		Template:   mailtpl.ProposalApproved,
		Data:       mailtpl.NewProposalApprovedData(s.AppURL, proposerName, p.Points, p.Reason),
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		return true, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"proposal_id": proposalID, "recipients": len(recipients)}).Info("proposal approved")
	}
	return true, nil
}
