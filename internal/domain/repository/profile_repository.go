package repository

import (
	"context"

	"github.com/ryanly/mirum-notify/internal/domain/entity"
)

// ProfileRepository defines the interface for profile directory operations.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	// List returns the full directory. Every notification path reads it
	// fresh; there is no cached copy.
	List(ctx context.Context) ([]entity.Profile, error)
}
