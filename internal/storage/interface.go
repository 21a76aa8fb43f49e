package storage

import (
	"context"
	"errors"

	"github.com/notch-0314/heattech-backend/internal"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	CreateUser(ctx context.Context, u *internal.User) error
	GetUserByName(ctx context.Context, userName string) (*internal.User, error)
	ListUsers(ctx context.Context) ([]internal.User, error)
}

type CopingMasterRepository interface {
	// FindCoping returns all rows matching the given category, score bucket
	// and duration. Zero matches is not an error.
	FindCoping(ctx context.Context, typeName string, scoreID, timeValue int) ([]internal.CopingMaster, error)
	// ReplaceAll deletes every row and inserts the given ones.
	ReplaceAll(ctx context.Context, records []internal.CopingMaster) error
}

type CopingMessageRepository interface {
	SaveCopingMessage(ctx context.Context, m *internal.CopingMessage) error
	GetCopingMessage(ctx context.Context, copingMessageID int64) (*internal.CopingMessage, error)
	// ListCopingMessagesForDay returns the user's messages created on the
	// given day (YYYY-MM-DD), oldest first.
	ListCopingMessagesForDay(ctx context.Context, userID int64, day string) ([]internal.CopingMessage, error)
	// ListFeedbackForDay is ListCopingMessagesForDay restricted to rows with
	// a non-null satisfaction score.
	ListFeedbackForDay(ctx context.Context, userID int64, day string) ([]internal.CopingMessage, error)
	SetHeartRateBefore(ctx context.Context, copingMessageID int64, bpm int) error
	SetSatisfactionScore(ctx context.Context, copingMessageID int64, score string) error
	SetHeartRateAfter(ctx context.Context, copingMessageID int64, bpm int) error
}

type DailyMessageRepository interface {
	SaveDailyMessage(ctx context.Context, m *internal.DailyMessage) error
	GetDailyMessageForDay(ctx context.Context, userID int64, day string) (*internal.DailyMessage, error)
}

// Repositories bundles every repository of one storage backend.
type Repositories struct {
	Users    UserRepository
	Master   CopingMasterRepository
	Messages CopingMessageRepository
	Daily    DailyMessageRepository
}
