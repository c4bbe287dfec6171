package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gamepulse/gamepulse/internal/domain"
)

// BatchItem is the per-title outcome of a batch run. Exactly one of
// Result or Err is set.
type BatchItem struct {
	AppID  int
	Result *domain.AnalysisResult
	Err    error
}

// AnalyzeMany analyzes a list of titles with a bounded worker pool.
// One bad id never fails the batch: each item settles independently and
// the output preserves input order. Dispatch is paced to respect
// upstream rate limits; per-provider token buckets still apply inside
// the clients.
func (o *Orchestrator) AnalyzeMany(ctx context.Context, appIDs []int, opts Options) []BatchItem {
	items := make([]BatchItem, len(appIDs))
	if len(appIDs) == 0 {
		return items
	}

	type job struct {
		idx   int
		appID int
	}
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < o.cfg.BatchWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				result, err := o.Analyze(ctx, j.appID, opts)
				items[j.idx] = BatchItem{AppID: j.appID, Result: result, Err: err}
				if err != nil {
					log.Warn().Err(err).Int("app_id", j.appID).Msg("batch item failed")
				}
			}
		}()
	}

	pacer := time.NewTicker(pacingOrMinimum(o.cfg.BatchPacing))
	defer pacer.Stop()

dispatch:
	for i, appID := range appIDs {
		select {
		case jobs <- job{idx: i, appID: appID}:
		case <-ctx.Done():
			for k := i; k < len(appIDs); k++ {
				items[k] = BatchItem{AppID: appIDs[k], Err: ctx.Err()}
			}
			break dispatch
		}
		if i < len(appIDs)-1 {
			select {
			case <-pacer.C:
			case <-ctx.Done():
			}
		}
	}
	close(jobs)
	wg.Wait()

	return items
}

func pacingOrMinimum(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Millisecond
	}
	return d
}
