package service

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"github.com/notch-0314/heattech-backend/internal/auth"
)

func TestValidateRegisterRequest(t *testing.T) {
	valid := RegisterRequest{UserName: "tanaka", Email: "tanaka@example.com", Password: "password123"}
	assert.NoError(t, ValidateRegisterRequest(&valid))

	cases := map[string]RegisterRequest{
		"missing name":   {Email: "tanaka@example.com", Password: "password123"},
		"bad email":      {UserName: "tanaka", Email: "not-an-email", Password: "password123"},
		"short password": {UserName: "tanaka", Email: "tanaka@example.com", Password: "short"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, ValidateRegisterRequest(&body))
		})
	}
}

func TestRegisterUserAndLogin(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(testTime)
	issuer := auth.NewTokenIssuer("secret", clock)

	body := &RegisterRequest{UserName: "tanaka", Email: "tanaka@example.com", Password: "password123"}
	user, err := RegisterUser(ctx, s, clock, time.UTC, body)
	assert.NoError(t, err)
	assert.NotZero(t, user.UserID)
	assert.Equal(t, "unknown", user.OccupationID)
	assert.NotEqual(t, "password123", user.Password)
	assert.Equal(t, testTime, user.CreateDatetime)

	token, err := Login(ctx, s, issuer, "tanaka", "password123")
	assert.NoError(t, err)

	subject, err := issuer.ParseAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "tanaka", subject)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(testTime)
	issuer := auth.NewTokenIssuer("secret", clock)

	body := &RegisterRequest{UserName: "tanaka", Email: "tanaka@example.com", Password: "password123"}
	_, err := RegisterUser(ctx, s, clock, time.UTC, body)
	assert.NoError(t, err)

	_, err = Login(ctx, s, issuer, "tanaka", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Login(ctx, s, issuer, "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
