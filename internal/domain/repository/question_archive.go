package repository

import (
	"context"

	"github.com/ryanly/mirum-notify/internal/domain/entity"
)

// QuestionArchive defines the interface for the insert-only
// question-of-the-day archive.
type QuestionArchive interface {
	// Append stores a clue with a server-assigned timestamp and fills in
	// the assigned id.
	Append(ctx context.Context, q *entity.Question) error
}
