package recommend

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/notch-0314/heattech-backend/internal"
	"github.com/notch-0314/heattech-backend/internal/storage"
)

func nopLogger() internal.Logger {
	return internal.NewZapLogger(zap.NewNop().Sugar())
}

func newTestStorage(t *testing.T) *storage.FileStorage {
	t.Helper()
	dir := t.TempDir()
	s, err := storage.NewFileStorage(
		filepath.Join(dir, "users.json"),
		filepath.Join(dir, "coping_master.json"),
		filepath.Join(dir, "coping_messages.json"),
		filepath.Join(dir, "daily_messages.json"),
		nopLogger(),
	)
	assert.NoError(t, err)
	return s
}

func seedMaster(t *testing.T, s *storage.FileStorage, bucket int, durations ...int) {
	t.Helper()
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	var records []internal.CopingMaster
	for _, d := range durations {
		records = append(records, internal.CopingMaster{
			TypeNo:         1,
			TypeName:       CopingTypeName,
			ScoreID:        bucket,
			Time:           d,
			Tone:           "calm",
			RestType:       fmt.Sprintf("rest-%d-%d", bucket, d),
			HowToRest:      fmt.Sprintf("how-%d-%d", bucket, d),
			CreateDatetime: now,
			UpdateDatetime: now,
		})
	}
	assert.NoError(t, s.ReplaceAll(context.Background(), records))
}

// stubCompleter echoes the final user message, optionally failing on marked
// inputs.
type stubCompleter struct {
	failOn map[string]bool
	calls  int
}

func (s *stubCompleter) Complete(ctx context.Context, system string, user ...string) (string, error) {
	s.calls++
	last := user[len(user)-1]
	if s.failOn[last] {
		return "", fmt.Errorf("completion failed for %s", last)
	}
	return "advice: " + last, nil
}

// stubReadiness returns a fixed score map or error.
type stubReadiness struct {
	scores map[string]int
	err    error
}

func (s *stubReadiness) DailyScores(ctx context.Context, apiKey, startDate, endDate string) (map[string]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.scores, nil
}
