package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	observationWindowDays = 30
	activityWindowDays    = 7
	activityLimit         = 20
)

// collect gathers the five inputs for one (owner, pet) pair. The reads are
// independent so they fan out concurrently; any single failure aborts the run.
func (s *analysisService) collect(ctx context.Context, ownerID, petID uuid.UUID, now time.Time) (*analysisBundle, error) {
	observationsSince := now.AddDate(0, 0, -observationWindowDays)
	activitySince := now.AddDate(0, 0, -activityWindowDays)

	bundle := &analysisBundle{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pet, err := s.pets.GetByID(gctx, nil, ownerID, petID)
		if err != nil {
			return fmt.Errorf("load pet profile: %w", err)
		}
		bundle.Pet = pet
		return nil
	})
	g.Go(func() error {
		entries, err := s.diary.ListSince(gctx, nil, ownerID, petID, observationsSince)
		if err != nil {
			return fmt.Errorf("load diary entries: %w", err)
		}
		bundle.Diary = entries
		return nil
	})
	g.Go(func() error {
		metrics, err := s.metrics.ListSince(gctx, nil, ownerID, petID, observationsSince)
		if err != nil {
			return fmt.Errorf("load health metrics: %w", err)
		}
		bundle.Metrics = metrics
		return nil
	})
	g.Go(func() error {
		scores, err := s.wellness.ListSince(gctx, nil, ownerID, petID, observationsSince)
		if err != nil {
			return fmt.Errorf("load wellness scores: %w", err)
		}
		bundle.Wellness = scores
		return nil
	})
	g.Go(func() error {
		activity, err := s.activity.ListRecent(gctx, nil, ownerID, petID, activitySince, activityLimit)
		if err != nil {
			return fmt.Errorf("load activity log: %w", err)
		}
		bundle.Activity = activity
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bundle, nil
}
