package service

import (
	"context"

	"github.com/notch-0314/heattech-backend/internal"
	"github.com/notch-0314/heattech-backend/internal/oura"
	"github.com/notch-0314/heattech-backend/internal/storage"
)

// ContributorFetcher supplies today's readiness entry with its contributor
// sub-scores, or nil when the wearable has no reading.
type ContributorFetcher interface {
	TodayContributors(ctx context.Context, apiKey, day string) (*oura.ReadinessEntry, error)
}

type ConditionResult struct {
	DailyMessage *internal.DailyMessage
	Contributors *oura.Contributors
	Day          string
}

// Condition combines today's daily narrative with the wearable's contributor
// sub-scores. A contributor fetch failure degrades to empty sub-scores
// rather than failing the request; the narrative itself must exist.
func Condition(ctx context.Context, daily storage.DailyMessageRepository, contributors ContributorFetcher, logger internal.Logger, apiKey string, userID int64, day string) (*ConditionResult, error) {
	message, err := daily.GetDailyMessageForDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	result := &ConditionResult{DailyMessage: message}
	entry, err := contributors.TodayContributors(ctx, apiKey, day)
	if err != nil {
		logger.Errorf("fetching contributors for user %d: %v", userID, err)
	} else if entry != nil {
		result.Contributors = &entry.Contributors
		result.Day = entry.Day
	}
	return result, nil
}
