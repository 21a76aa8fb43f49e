package internal

import "time"

type User struct {
	UserID         int64     `json:"user_id"`
	UserName       string    `json:"user_name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // bcrypt hash
	OuraID         int       `json:"oura_id"`
	TypeID         int       `json:"type_id"`
	OccupationID   string    `json:"occupation_id"`
	OvertimeID     int       `json:"overtime_id"`
	CreateDatetime time.Time `json:"create_datetime"`
	UpdateDatetime time.Time `json:"update_datetime"`
}

// CopingMaster is a static reference entry describing one rest activity.
// Rows are read-only at runtime; cmd/masterload reloads the table in bulk.
type CopingMaster struct {
	CopingMasterID int64     `json:"coping_master_id"`
	TypeNo         int       `json:"type_no"`
	TypeName       string    `json:"type_name"`
	ScoreID        int       `json:"score_id"`
	Time           int       `json:"time"` // duration in minutes
	Tone           string    `json:"tone"`
	RestType       string    `json:"rest_type"`
	HowToRest      string    `json:"how_to_rest"`
	CreateDatetime time.Time `json:"create_datetime"`
	UpdateDatetime time.Time `json:"update_datetime"`
}

// CopingMessage is one persisted coping interaction. The daily batch creates
// it with only the two texts; the live API later fills heart_rate_before on
// session start, then satisfaction_score and heart_rate_after on finish.
type CopingMessage struct {
	CopingMessageID   int64     `json:"coping_message_id"`
	UserID            int64     `json:"user_id"`
	AssistantText     string    `json:"assistant_text"`
	CopingMessageText string    `json:"coping_message_text"`
	SatisfactionScore *string   `json:"satisfaction_score,omitempty"`
	HeartRateBefore   *int      `json:"heart_rate_before,omitempty"`
	HeartRateAfter    *int      `json:"heart_rate_after,omitempty"`
	CreateDatetime    time.Time `json:"create_datetime"`
	UpdateDatetime    time.Time `json:"update_datetime"`
}

// DailyMessage is one narrative per user per batch run. TodaysDaysScore is
// null only when the wearable API returned no reading for that day.
type DailyMessage struct {
	DailyMessageID    int64     `json:"daily_message_id"`
	UserID            int64     `json:"user_id"`
	DailyMessageText  string    `json:"daily_message_text"`
	PreviousDaysScore int       `json:"previous_days_score"`
	TodaysDaysScore   *int      `json:"todays_days_score,omitempty"`
	CreateDatetime    time.Time `json:"create_datetime"`
	UpdateDatetime    time.Time `json:"update_datetime"`
}
