package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/notch-0314/heattech-backend/internal"
	"github.com/notch-0314/heattech-backend/internal/oura"
	"github.com/notch-0314/heattech-backend/internal/storage"
)

const testDay = "2024-07-10"

var testTime = time.Date(2024, 7, 10, 6, 0, 0, 0, time.UTC)

func newTestStorage(t *testing.T) *storage.FileStorage {
	t.Helper()
	dir := t.TempDir()
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	s, err := storage.NewFileStorage(
		filepath.Join(dir, "users.json"),
		filepath.Join(dir, "coping_master.json"),
		filepath.Join(dir, "coping_messages.json"),
		filepath.Join(dir, "daily_messages.json"),
		logger,
	)
	assert.NoError(t, err)
	return s
}

func seedCopingMessage(t *testing.T, s *storage.FileStorage, userID int64, text string) *internal.CopingMessage {
	t.Helper()
	msg := &internal.CopingMessage{
		UserID:            userID,
		AssistantText:     "おはようございます。",
		CopingMessageText: text,
		CreateDatetime:    testTime,
		UpdateDatetime:    testTime,
	}
	assert.NoError(t, s.SaveCopingMessage(context.Background(), msg))
	return msg
}

// stubHeartRate returns a fixed bpm, nil when unset.
type stubHeartRate struct {
	bpm *int
	err error
}

func (s stubHeartRate) LatestHeartRate(ctx context.Context, apiKey string) (*int, error) {
	return s.bpm, s.err
}

func bpmPtr(v int) *int { return &v }

func TestCopingMessagesToday(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for _, text := range []string{"insight", "walk", "stretch", "breathe"} {
		seedCopingMessage(t, s, 1, text)
	}

	result, err := CopingMessagesToday(ctx, s, 1, testDay)
	assert.NoError(t, err)
	assert.Equal(t, "おはようございます。", result.AssistantText)
	assert.Len(t, result.Items, 3)
	assert.Equal(t, "walk", result.Items[0].CopingMessageText)
	assert.Equal(t, "breathe", result.Items[2].CopingMessageText)
}

func TestCopingMessagesTodayEmpty(t *testing.T) {
	s := newTestStorage(t)
	_, err := CopingMessagesToday(context.Background(), s, 1, testDay)
	assert.ErrorIs(t, err, ErrNoMessagesToday)
}

func TestCopingStart(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	msg := seedCopingMessage(t, s, 1, "walk")

	bpm, err := CopingStart(ctx, s, stubHeartRate{bpm: bpmPtr(72)}, "key-1", msg.CopingMessageID)
	assert.NoError(t, err)
	assert.Equal(t, 72, bpm)

	got, err := s.GetCopingMessage(ctx, msg.CopingMessageID)
	assert.NoError(t, err)
	if assert.NotNil(t, got.HeartRateBefore) {
		assert.Equal(t, 72, *got.HeartRateBefore)
	}
}

func TestCopingStartNoHeartRate(t *testing.T) {
	s := newTestStorage(t)
	msg := seedCopingMessage(t, s, 1, "walk")

	_, err := CopingStart(context.Background(), s, stubHeartRate{}, "key-1", msg.CopingMessageID)
	assert.ErrorIs(t, err, ErrNoHeartRate)
}

func TestCopingStartUnknownMessage(t *testing.T) {
	s := newTestStorage(t)
	_, err := CopingStart(context.Background(), s, stubHeartRate{bpm: bpmPtr(72)}, "key-1", 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCopingFinishImproved(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	msg := seedCopingMessage(t, s, 1, "walk")
	assert.NoError(t, s.SetHeartRateBefore(ctx, msg.CopingMessageID, 70))

	result, err := CopingFinish(ctx, s, stubHeartRate{bpm: bpmPtr(65)}, "key-1", msg.CopingMessageID, "とても良い")
	assert.NoError(t, err)
	assert.Equal(t, RelaxationImprovedMessage, result.Message)
	assert.Equal(t, 70, result.HeartRateBefore)
	assert.Equal(t, 65, result.LatestHeartRate)
	assert.Equal(t, "とても良い", result.SatisfactionScore)

	got, err := s.GetCopingMessage(ctx, msg.CopingMessageID)
	assert.NoError(t, err)
	if assert.NotNil(t, got.HeartRateAfter) {
		assert.Equal(t, 65, *got.HeartRateAfter)
	}
	if assert.NotNil(t, got.SatisfactionScore) {
		assert.Equal(t, "とても良い", *got.SatisfactionScore)
	}
}

func TestCopingFinishNotImproved(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	msg := seedCopingMessage(t, s, 1, "walk")
	assert.NoError(t, s.SetHeartRateBefore(ctx, msg.CopingMessageID, 70))

	for _, after := range []int{70, 75} {
		result, err := CopingFinish(ctx, s, stubHeartRate{bpm: bpmPtr(after)}, "key-1", msg.CopingMessageID, "普通")
		assert.NoError(t, err)
		assert.Equal(t, RelaxationNotImprovedMessage, result.Message)
	}
}

func TestCopingFinishWithoutBaseline(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	msg := seedCopingMessage(t, s, 1, "walk")

	_, err := CopingFinish(ctx, s, stubHeartRate{bpm: bpmPtr(65)}, "key-1", msg.CopingMessageID, "とても良い")
	assert.ErrorIs(t, err, ErrNoBaselineHeartRate)

	// Nothing was written.
	got, err := s.GetCopingMessage(ctx, msg.CopingMessageID)
	assert.NoError(t, err)
	assert.Nil(t, got.HeartRateAfter)
	assert.Nil(t, got.SatisfactionScore)
}

// stubContributors returns a fixed readiness entry.
type stubContributors struct {
	entry *oura.ReadinessEntry
	err   error
}

func (s stubContributors) TodayContributors(ctx context.Context, apiKey, day string) (*oura.ReadinessEntry, error) {
	return s.entry, s.err
}

func TestCondition(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	logger := internal.NewZapLogger(zap.NewNop().Sugar())

	score := 90
	assert.NoError(t, s.SaveDailyMessage(ctx, &internal.DailyMessage{
		UserID: 1, DailyMessageText: "narrative", PreviousDaysScore: 80, TodaysDaysScore: &score,
		CreateDatetime: testTime, UpdateDatetime: testTime,
	}))

	sleep := 88
	entry := &oura.ReadinessEntry{Day: testDay, Score: score}
	entry.Contributors.SleepBalance = &sleep

	result, err := Condition(ctx, s, stubContributors{entry: entry}, logger, "key-1", 1, testDay)
	assert.NoError(t, err)
	assert.Equal(t, "narrative", result.DailyMessage.DailyMessageText)
	if assert.NotNil(t, result.Contributors) {
		assert.Equal(t, 88, *result.Contributors.SleepBalance)
	}
	assert.Equal(t, testDay, result.Day)
}

func TestConditionDegradesWithoutContributors(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	logger := internal.NewZapLogger(zap.NewNop().Sugar())

	assert.NoError(t, s.SaveDailyMessage(ctx, &internal.DailyMessage{
		UserID: 1, DailyMessageText: "narrative",
		CreateDatetime: testTime, UpdateDatetime: testTime,
	}))

	result, err := Condition(ctx, s, stubContributors{err: errors.New("oura down")}, logger, "key-1", 1, testDay)
	assert.NoError(t, err)
	assert.Nil(t, result.Contributors)
	assert.Equal(t, "narrative", result.DailyMessage.DailyMessageText)
}

func TestConditionMissingNarrative(t *testing.T) {
	s := newTestStorage(t)
	logger := internal.NewZapLogger(zap.NewNop().Sugar())

	_, err := Condition(context.Background(), s, stubContributors{}, logger, "key-1", 1, testDay)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
