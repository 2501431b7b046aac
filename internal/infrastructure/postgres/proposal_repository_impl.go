package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ryanly/mirum-notify/internal/domain/entity"
	"github.com/ryanly/mirum-notify/internal/domain/repository"
)

type ProposalRepository struct {
	pool *pgxpool.Pool
}

func NewProposalRepository(pool *pgxpool.Pool) *ProposalRepository {
	return &ProposalRepository{pool: pool}
}

func (r *ProposalRepository) GetByID(ctx context.Context, id string) (*entity.Proposal, error) {
	p := &entity.Proposal{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, points, reason, approved_at, created_at
		FROM proposals
		WHERE id = $1
	`, id)

	if err := row.Scan(&p.ID, &p.UserID, &p.Points, &p.Reason, &p.ApprovedAt, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

// SeedApprovals inserts the false/false placeholder rows for every given user
// in one transaction. Readers never see a partially-seeded set.
func (r *ProposalRepository) SeedApprovals(ctx context.Context, proposalID string, userIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, uid := range userIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO proposal_approvals (proposal_id, user_id, approved, complete)
			VALUES ($1, $2, false, false)
			ON CONFLICT (proposal_id, user_id) DO NOTHING
		`, proposalID, uid); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ProposalRepository) Approvals(ctx context.Context, proposalID string) (map[string]entity.ApprovalFlag, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT proposal_id, user_id, approved, complete
		FROM proposal_approvals
		WHERE proposal_id = $1
	`, proposalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]entity.ApprovalFlag)
	for rows.Next() {
		var f entity.ApprovalFlag
		if err := rows.Scan(&f.ProposalID, &f.UserID, &f.Approved, &f.Complete); err != nil {
			return nil, err
		}
		out[f.UserID] = f
	}
	return out, rows.Err()
}

// Finalize stamps approved_at and re-asserts every flag in one transaction.
// The proposal row is locked first, so a second concurrent flip observes the
// stamp and returns false. The flag rows are re-checked under the same lock:
// a partial write racing the caller's read cannot produce a premature stamp.
func (r *ProposalRepository) Finalize(ctx context.Context, proposalID string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var stamped bool
	row := tx.QueryRow(ctx, `
		SELECT approved_at IS NOT NULL
		FROM proposals
		WHERE id = $1
		FOR UPDATE
	`, proposalID)
	if err := row.Scan(&stamped); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}
	if stamped {
		return false, nil
	}

	var total, approved int
	row = tx.QueryRow(ctx, `
		SELECT count(*), count(*) FILTER (WHERE approved)
		FROM proposal_approvals
		WHERE proposal_id = $1
	`, proposalID)
	if err := row.Scan(&total, &approved); err != nil {
		return false, err
	}
	// An empty flag set never approves.
	if total == 0 || approved < total {
		return false, nil
	}

	if _, err := tx.Exec(ctx, `
		UPDATE proposals SET approved_at = now() WHERE id = $1
	`, proposalID); err != nil {
		return false, err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE proposal_approvals SET approved = true, complete = true WHERE proposal_id = $1
	`, proposalID); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

var _ repository.ProposalRepository = (*ProposalRepository)(nil)
