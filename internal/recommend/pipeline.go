package recommend

import (
	"context"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/notch-0314/heattech-backend/internal"
	"github.com/notch-0314/heattech-backend/internal/oura"
	"github.com/notch-0314/heattech-backend/internal/storage"
)

// ReadinessFetcher supplies readiness scores keyed by ISO date for a date
// window. Days without a reading are absent from the map.
type ReadinessFetcher interface {
	DailyScores(ctx context.Context, apiKey, startDate, endDate string) (map[string]int, error)
}

// Pipeline runs the daily score-to-recommendation flow for every user:
// fetch scores, classify, look up coping candidates, rewrite through the
// language model, persist coping messages, then persist the daily narrative.
// Users are processed strictly one at a time; a per-user failure never aborts
// the run.
type Pipeline struct {
	Users       storage.UserRepository
	Master      storage.CopingMasterRepository
	Messages    storage.CopingMessageRepository
	Daily       storage.DailyMessageRepository
	Readiness   ReadinessFetcher
	Credentials oura.Credentials
	Rewriter    *Rewriter
	Clock       clockwork.Clock
	Rng         *rand.Rand
	Location    *time.Location
	Logger      internal.Logger
}

func (p *Pipeline) Run(ctx context.Context) error {
	now := p.Clock.Now().In(p.Location)
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	durations := DurationsFor(now)

	users, err := p.Users.ListUsers(ctx)
	if err != nil {
		return err
	}

	for i := range users {
		p.runUser(ctx, &users[i], now, yesterday, today, durations)
	}
	return nil
}

func (p *Pipeline) runUser(ctx context.Context, user *internal.User, now time.Time, yesterday, today string, durations []int) {
	apiKey, ok := p.Credentials.Resolve(user.OuraID)
	if !ok {
		p.Logger.Warnf("no Oura credential for user %s (oura_id=%d), skipping", user.UserName, user.OuraID)
		return
	}

	var todaysScore *int
	var yesterdaysScore int
	scores, err := p.Readiness.DailyScores(ctx, apiKey, yesterday, today)
	if err != nil {
		p.Logger.Errorf("fetching readiness for user %s: %v", user.UserName, err)
	} else {
		if v, found := scores[today]; found {
			score := v
			todaysScore = &score
		}
		yesterdaysScore = scores[yesterday]
	}

	// No reading for today: skip all coping generation and record the fixed
	// no-comparison narrative.
	if todaysScore == nil {
		p.Logger.Infof("no readiness score today for user %s", user.UserName)
		p.saveDailyMessage(ctx, user, now, GenerateDailyMessage(nil, yesterdaysScore, false), yesterdaysScore, nil)
		return
	}

	bucket := ClassifyScore(*todaysScore)
	if bucket == NoBucket {
		p.Logger.Warnf("score %d for user %s is out of range, skipping", *todaysScore, user.UserName)
		return
	}
	p.Logger.Infof("user %s: score=%d bucket=%d", user.UserName, *todaysScore, bucket)

	copingRecords, err := LookupCoping(ctx, p.Master, bucket, durations, p.Rng)
	if err != nil {
		p.Logger.Errorf("coping lookup for user %s: %v", user.UserName, err)
		return
	}

	preamble, err := SelectPreamble(bucket, p.Rng)
	if err != nil {
		p.Logger.Errorf("preamble selection for user %s: %v", user.UserName, err)
		return
	}

	advice := p.Rewriter.Rewrite(ctx, copingRecords)
	for _, text := range advice {
		msg := &internal.CopingMessage{
			UserID:            user.UserID,
			AssistantText:     preamble,
			CopingMessageText: text,
			CreateDatetime:    now,
			UpdateDatetime:    now,
		}
		if err := p.Messages.SaveCopingMessage(ctx, msg); err != nil {
			p.Logger.Errorf("saving coping message for user %s: %v", user.UserName, err)
		}
	}

	hasFeedback := false
	feedback, err := p.Messages.ListFeedbackForDay(ctx, user.UserID, today)
	if err != nil {
		p.Logger.Errorf("querying coping feedback for user %s: %v", user.UserName, err)
	} else {
		hasFeedback = len(feedback) > 0
	}

	text := GenerateDailyMessage(todaysScore, yesterdaysScore, hasFeedback)
	p.saveDailyMessage(ctx, user, now, text, yesterdaysScore, todaysScore)
}

func (p *Pipeline) saveDailyMessage(ctx context.Context, user *internal.User, now time.Time, text string, yesterdaysScore int, todaysScore *int) {
	msg := &internal.DailyMessage{
		UserID:            user.UserID,
		DailyMessageText:  text,
		PreviousDaysScore: yesterdaysScore,
		TodaysDaysScore:   todaysScore,
		CreateDatetime:    now,
		UpdateDatetime:    now,
	}
	if err := p.Daily.SaveDailyMessage(ctx, msg); err != nil {
		p.Logger.Errorf("saving daily message for user %s: %v", user.UserName, err)
	}
}
