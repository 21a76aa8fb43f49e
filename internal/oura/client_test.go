package oura

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/notch-0314/heattech-backend/internal"
)

func newStubServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithBaseURL(srv.URL, internal.NewZapLogger(zap.NewNop().Sugar()))
}

func TestDailyScores(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/usercollection/daily_readiness", r.URL.Path)
		assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))
		assert.Equal(t, "2024-07-09", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2024-07-10", r.URL.Query().Get("end_date"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"day": "2024-07-09", "score": 80},
				{"day": "2024-07-10", "score": 90},
			},
		})
	})

	scores, err := client.DailyScores(context.Background(), "key-1", "2024-07-09", "2024-07-10")
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"2024-07-09": 80, "2024-07-10": 90}, scores)
}

func TestDailyScoresServerError(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.DailyScores(context.Background(), "key-1", "2024-07-09", "2024-07-10")
	assert.ErrorContains(t, err, "status 401")
}

func TestTodayContributors(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{
					"day":   "2024-07-10",
					"score": 90,
					"contributors": map[string]interface{}{
						"sleep_balance":      88,
						"resting_heart_rate": 95,
					},
				},
			},
		})
	})

	entry, err := client.TodayContributors(context.Background(), "key-1", "2024-07-10")
	assert.NoError(t, err)
	if assert.NotNil(t, entry) {
		assert.Equal(t, "2024-07-10", entry.Day)
		assert.Equal(t, 90, entry.Score)
		if assert.NotNil(t, entry.Contributors.SleepBalance) {
			assert.Equal(t, 88, *entry.Contributors.SleepBalance)
		}
		assert.Nil(t, entry.Contributors.HrvBalance)
	}
}

func TestTodayContributorsNoReading(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}})
	})

	entry, err := client.TodayContributors(context.Background(), "key-1", "2024-07-10")
	assert.NoError(t, err)
	assert.Nil(t, entry)
}

func TestLatestHeartRate(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/usercollection/heartrate", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"bpm": 62, "source": "ppg", "timestamp": "2024-07-10T05:00:00+00:00"},
				{"bpm": 70, "source": "ppg", "timestamp": "2024-07-10T06:00:00+00:00"},
			},
		})
	})

	bpm, err := client.LatestHeartRate(context.Background(), "key-1")
	assert.NoError(t, err)
	if assert.NotNil(t, bpm) {
		assert.Equal(t, 70, *bpm)
	}
}

func TestLatestHeartRateEmpty(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}})
	})

	bpm, err := client.LatestHeartRate(context.Background(), "key-1")
	assert.NoError(t, err)
	assert.Nil(t, bpm)
}

func TestCredentialsResolve(t *testing.T) {
	creds := Credentials{Key1: "key-1", Key2: "key-2"}

	key, ok := creds.Resolve(1)
	assert.True(t, ok)
	assert.Equal(t, "key-1", key)

	key, ok = creds.Resolve(2)
	assert.True(t, ok)
	assert.Equal(t, "key-2", key)

	_, ok = creds.Resolve(3)
	assert.False(t, ok)

	_, ok = Credentials{Key2: "key-2"}.Resolve(1)
	assert.False(t, ok)
}
