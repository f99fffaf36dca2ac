package repository

import (
	"context"

	"github.com/seekers/backend/internal/model"
)

// populateMedia resolves Background.MediaID through media. Dangling references
// leave Media nil; the background keeps its own MediaURL.
func populateMedia(ctx context.Context, media MediaRepository, bgs ...*model.Background) error {
	var ids []string
	for _, b := range bgs {
		if b.MediaID != nil && *b.MediaID != "" {
			ids = append(ids, *b.MediaID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	found, err := media.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[string]*model.Media, len(found))
	for _, m := range found {
		byID[m.ID] = m
	}
	for _, b := range bgs {
		if b.MediaID != nil {
			b.Media = byID[*b.MediaID]
		}
	}
	return nil
}
