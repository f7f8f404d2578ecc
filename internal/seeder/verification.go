package seeder

import (
	"context"
	"fmt"

	"github.com/okian/proctord/pkg/logger"
)

// verifyLeaderboard checks the invariants of the returned ranking: ordered
// by points descending, with hour totals matching slot counts.
func verifyLeaderboard(ctx context.Context, entries []Entry, verbose bool) error {
	logger.Get().Info(ctx, "verifying leaderboard", logger.Int("entries", len(entries)))

	if len(entries) == 0 {
		return fmt.Errorf("empty leaderboard")
	}

	for i := 1; i < len(entries); i++ {
		if entries[i].Points > entries[i-1].Points {
			return fmt.Errorf("leaderboard not sorted: entry %d has more points than entry %d", i, i-1)
		}
	}
	for i, e := range entries {
		if e.Hours != e.Slots {
			return fmt.Errorf("entry %d (%s): hours %d does not match slot count %d", i, e.ID, e.Hours, e.Slots)
		}
	}

	displayTopEntries(ctx, entries, verbose)
	logger.Get().Info(ctx, "leaderboard verified")
	return nil
}

// displayTopEntries shows the highest ranked people.
func displayTopEntries(ctx context.Context, entries []Entry, verbose bool) {
	topN := 10
	if len(entries) < topN {
		topN = len(entries)
	}

	for i := 0; i < topN; i++ {
		e := entries[i]
		logger.Get().Info(ctx, "leaderboard entry",
			logger.Int("rank", i+1),
			logger.String("id", e.ID),
			logger.String("name", e.Name),
			logger.Int("points", e.Points),
			logger.Int("slots", e.Slots))
	}

	if verbose && len(entries) > 0 {
		total := 0
		for _, e := range entries {
			total += e.Points
		}
		logger.Get().Info(ctx, "point statistics",
			logger.Int("maxPoints", entries[0].Points),
			logger.Int("minPoints", entries[len(entries)-1].Points),
			logger.Int("totalPoints", total))
	}
}
