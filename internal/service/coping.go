package service

import (
	"context"
	"errors"

	"github.com/notch-0314/heattech-backend/internal/storage"
)

// Fixed result messages for the coping-finish comparison.
const (
	RelaxationImprovedMessage    = "休息により心拍数が下がり、リラックス傾向が高まりました。この調子で、定期的に休憩を取りましょう！"
	RelaxationNotImprovedMessage = "休息前と比べて、心拍数が変わっていない、または少し心拍数が上がっているようです。休息が十分でない可能性があるので、他の休息も取り入れてみると良いかもしれません。"
)

var (
	// ErrNoHeartRate means the wearable API had no heart-rate samples.
	ErrNoHeartRate = errors.New("no heart rate data available")
	// ErrNoBaselineHeartRate means coping_finish was called before
	// coping_start recorded heart_rate_before.
	ErrNoBaselineHeartRate = errors.New("heart_rate_before has not been recorded")
	// ErrNoMessagesToday means the user has no coping messages for today.
	ErrNoMessagesToday = errors.New("no coping messages for today")
)

// HeartRateFetcher supplies the latest heart-rate sample, or nil when the
// wearable has none.
type HeartRateFetcher interface {
	LatestHeartRate(ctx context.Context, apiKey string) (*int, error)
}

type CopingMessageItem struct {
	CopingMessageID   int64  `json:"coping_message_id"`
	CopingMessageText string `json:"coping_message_text"`
}

type CopingMessagesResult struct {
	AssistantText string
	Items         []CopingMessageItem
}

// CopingMessagesToday returns today's assistant preamble and up to the three
// most recent coping message id/text pairs.
func CopingMessagesToday(ctx context.Context, messages storage.CopingMessageRepository, userID int64, day string) (*CopingMessagesResult, error) {
	list, err := messages.ListCopingMessagesForDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNoMessagesToday
	}
	if len(list) > 3 {
		list = list[len(list)-3:]
	}
	result := &CopingMessagesResult{AssistantText: list[0].AssistantText}
	for _, m := range list {
		result.Items = append(result.Items, CopingMessageItem{
			CopingMessageID:   m.CopingMessageID,
			CopingMessageText: m.CopingMessageText,
		})
	}
	return result, nil
}

// CopingStart fetches the live heart rate and records it as the session's
// heart_rate_before.
func CopingStart(ctx context.Context, messages storage.CopingMessageRepository, hr HeartRateFetcher, apiKey string, copingMessageID int64) (int, error) {
	if _, err := messages.GetCopingMessage(ctx, copingMessageID); err != nil {
		return 0, err
	}
	bpm, err := hr.LatestHeartRate(ctx, apiKey)
	if err != nil {
		return 0, err
	}
	if bpm == nil {
		return 0, ErrNoHeartRate
	}
	if err := messages.SetHeartRateBefore(ctx, copingMessageID, *bpm); err != nil {
		return 0, err
	}
	return *bpm, nil
}

type CopingFinishResult struct {
	Message           string `json:"message"`
	HeartRateBefore   int    `json:"heart_rate_before"`
	LatestHeartRate   int    `json:"latest_heart_rate"`
	SatisfactionScore string `json:"satisfaction_score"`
}

// CopingFinish records the satisfaction label and the post-session heart
// rate, then reports whether relaxation improved by comparing the two
// samples. heart_rate_after is never written while heart_rate_before is
// unset.
func CopingFinish(ctx context.Context, messages storage.CopingMessageRepository, hr HeartRateFetcher, apiKey string, copingMessageID int64, satisfactionScore string) (*CopingFinishResult, error) {
	msg, err := messages.GetCopingMessage(ctx, copingMessageID)
	if err != nil {
		return nil, err
	}
	if msg.HeartRateBefore == nil {
		return nil, ErrNoBaselineHeartRate
	}

	bpm, err := hr.LatestHeartRate(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	if bpm == nil {
		return nil, ErrNoHeartRate
	}

	if err := messages.SetSatisfactionScore(ctx, copingMessageID, satisfactionScore); err != nil {
		return nil, err
	}
	if err := messages.SetHeartRateAfter(ctx, copingMessageID, *bpm); err != nil {
		return nil, err
	}

	message := RelaxationNotImprovedMessage
	if *bpm < *msg.HeartRateBefore {
		message = RelaxationImprovedMessage
	}
	return &CopingFinishResult{
		Message:           message,
		HeartRateBefore:   *msg.HeartRateBefore,
		LatestHeartRate:   *bpm,
		SatisfactionScore: satisfactionScore,
	}, nil
}
