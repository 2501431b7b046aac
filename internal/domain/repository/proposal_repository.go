package repository

import (
	"context"

	"github.com/ryanly/mirum-notify/internal/domain/entity"
)

// ProposalRepository defines the interface for proposal and approval-flag
// operations.
type ProposalRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Proposal, error)
	// SeedApprovals writes approved=false/complete=false for every given
	// user in one transaction, so no reader observes a partially-seeded
	// set.
	SeedApprovals(ctx context.Context, proposalID string, userIDs []string) error
	// Approvals returns the current flag mapping for a proposal, keyed by
	// user id.
	Approvals(ctx context.Context, proposalID string) (map[string]entity.ApprovalFlag, error)
	// Finalize stamps the proposal approved and re-asserts every flag true,
	// in a single transaction conditional on the proposal not already being
	// stamped. It reports whether this call performed the stamp.
	Finalize(ctx context.Context, proposalID string) (bool, error)
}
