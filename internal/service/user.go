package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"

	"github.com/notch-0314/heattech-backend/internal"
	"github.com/notch-0314/heattech-backend/internal/auth"
	"github.com/notch-0314/heattech-backend/internal/storage"
)

var validate = validator.New()

var ErrInvalidCredentials = errors.New("incorrect username or password")

type RegisterRequest struct {
	UserName string `json:"user_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func ValidateRegisterRequest(body *RegisterRequest) error {
	return validate.Struct(body)
}

// RegisterUser creates a user with a bcrypt password hash and placeholder
// profile values, mirroring the registration flow's defaults.
func RegisterUser(ctx context.Context, users storage.UserRepository, clock clockwork.Clock, loc *time.Location, body *RegisterRequest) (*internal.User, error) {
	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		return nil, err
	}
	now := clock.Now().In(loc)
	user := &internal.User{
		UserName:       body.UserName,
		Email:          body.Email,
		Password:       hash,
		TypeID:         0,
		OccupationID:   "unknown",
		OvertimeID:     0,
		CreateDatetime: now,
		UpdateDatetime: now,
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues an access token.
func Login(ctx context.Context, users storage.UserRepository, issuer *auth.TokenIssuer, userName, password string) (string, error) {
	user, err := users.GetUserByName(ctx, userName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !auth.VerifyPassword(password, user.Password) {
		return "", ErrInvalidCredentials
	}
	return issuer.CreateAccessToken(user.UserName)
}
