package service

import (
	"context"

	"github.com/seekers/backend/internal/model"
)

// BackgroundService manages per-section background configuration.
type BackgroundService interface {
	// List returns every background sorted by section with media populated.
	List(ctx context.Context) ([]*model.Background, error)
	Get(ctx context.Context, id string) (*model.Background, error)
	// Upsert updates the record for patch.Section or creates one with defaults.
	// created reports which of the two happened.
	Upsert(ctx context.Context, patch model.BackgroundPatch) (bg *model.Background, created bool, err error)
	// Update applies a partial update to the record with id.
	Update(ctx context.Context, id string, patch model.BackgroundPatch) (*model.Background, error)
	Delete(ctx context.Context, id string) error
	// Resolve returns what the site renders for section: its active record or the default.
	Resolve(ctx context.Context, section string) (*model.ResolvedBackground, error)
}
