package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ryanly/mirum-notify/internal/domain/entity"
	"github.com/ryanly/mirum-notify/internal/domain/repository"
)

type QuestionArchive struct {
	pool *pgxpool.Pool
}

func NewQuestionArchive(pool *pgxpool.Pool) *QuestionArchive {
	return &QuestionArchive{pool: pool}
}

func (a *QuestionArchive) Append(ctx context.Context, q *entity.Question) error {
	row := a.pool.QueryRow(ctx, `
		INSERT INTO questions (category, question, answer)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, q.Category, q.Question, q.Answer)

	return row.Scan(&q.ID, &q.CreatedAt)
}

var _ repository.QuestionArchive = (*QuestionArchive)(nil)
