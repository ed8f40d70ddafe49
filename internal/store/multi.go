package store

import (
	"context"

	"github.com/RSangDev/weather-analytics-dashboard/internal/pipeline"
)

// Multi fans a run out to several stores in order, stopping at the first
// failure.
type Multi []pipeline.Store

// SaveRun implements pipeline.Store.
func (m Multi) SaveRun(ctx context.Context, run *pipeline.RunResult) error {
	for _, s := range m {
		if err := s.SaveRun(ctx, run); err != nil {
			return err
		}
	}
	return nil
}
