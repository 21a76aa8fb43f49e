package oura

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/notch-0314/heattech-backend/internal"
)

const defaultBaseURL = "https://api.ouraring.com"

// Client wraps the Oura v2 API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     internal.Logger
}

func NewClient(logger internal.Logger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(baseURL string, logger internal.Logger) *Client {
	c := NewClient(logger)
	c.baseURL = baseURL
	return c
}

// Contributors are the readiness sub-scores passed through to /condition.
type Contributors struct {
	ActivityBalance     *int `json:"activity_balance"`
	BodyTemperature     *int `json:"body_temperature"`
	HrvBalance          *int `json:"hrv_balance"`
	PreviousDayActivity *int `json:"previous_day_activity"`
	PreviousNight       *int `json:"previous_night"`
	RecoveryIndex       *int `json:"recovery_index"`
	RestingHeartRate    *int `json:"resting_heart_rate"`
	SleepBalance        *int `json:"sleep_balance"`
}

type ReadinessEntry struct {
	Day          string       `json:"day"`
	Score        int          `json:"score"`
	Contributors Contributors `json:"contributors"`
}

type readinessResponse struct {
	Data []ReadinessEntry `json:"data"`
}

type heartRateSample struct {
	Bpm       int    `json:"bpm"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

type heartRateResponse struct {
	Data []heartRateSample `json:"data"`
}

func (c *Client) get(ctx context.Context, apiKey, path string, params url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("oura API returned status %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// DailyReadiness fetches the readiness entries for [startDate, endDate]
// (inclusive, YYYY-MM-DD).
func (c *Client) DailyReadiness(ctx context.Context, apiKey, startDate, endDate string) ([]ReadinessEntry, error) {
	params := url.Values{}
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)

	var body readinessResponse
	if err := c.get(ctx, apiKey, "/v2/usercollection/daily_readiness", params, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// DailyScores returns readiness scores keyed by ISO date for the window
// [startDate, endDate]. Days without a reading are simply absent.
func (c *Client) DailyScores(ctx context.Context, apiKey, startDate, endDate string) (map[string]int, error) {
	entries, err := c.DailyReadiness(ctx, apiKey, startDate, endDate)
	if err != nil {
		return nil, err
	}
	scores := make(map[string]int, len(entries))
	for _, e := range entries {
		scores[e.Day] = e.Score
	}
	return scores, nil
}

// TodayContributors returns the readiness entry for the given day, or nil
// when the API has no reading for it.
func (c *Client) TodayContributors(ctx context.Context, apiKey, day string) (*ReadinessEntry, error) {
	entries, err := c.DailyReadiness(ctx, apiKey, day, day)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	entry := entries[0]
	return &entry, nil
}

// LatestHeartRate returns the most recent heart-rate sample's bpm, or nil
// when the API has no samples.
func (c *Client) LatestHeartRate(ctx context.Context, apiKey string) (*int, error) {
	var body heartRateResponse
	if err := c.get(ctx, apiKey, "/v2/usercollection/heartrate", nil, &body); err != nil {
		return nil, err
	}
	if len(body.Data) == 0 {
		return nil, nil
	}
	bpm := body.Data[len(body.Data)-1].Bpm
	return &bpm, nil
}
