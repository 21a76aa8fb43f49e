package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notch-0314/heattech-backend/internal/auth"
	"github.com/notch-0314/heattech-backend/internal/service"
	"github.com/notch-0314/heattech-backend/internal/storage"
)

// --- Request Structs ---

type CopingStartRequest struct {
	CopingMessageID int64 `json:"coping_message_id" binding:"required"`
}

type CopingFinishRequest struct {
	CopingMessageID   int64  `json:"coping_message_id" binding:"required"`
	SatisfactionScore string `json:"satisfaction_score" binding:"required"`
}

// --- Handlers ---

// PostToken exchanges form-encoded username/password for a bearer token.
func PostToken(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")
		if username == "" || password == "" {
			HandleError(c, app.Logger(), errors.New("missing form fields"), 400, "username and password are required")
			return
		}

		token, err := service.Login(c.Request.Context(), app.Users(), app.Issuer(), username, password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				c.Header("WWW-Authenticate", "Bearer")
				HandleError(c, app.Logger(), err, 401, "Incorrect username or password")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to authenticate")
			return
		}

		c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
	}
}

func PostRegister(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.RegisterRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateRegisterRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		user, err := service.RegisterUser(c.Request.Context(), app.Users(), app.Clock(), app.Location(), &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to register user")
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// GetCopingMessage returns today's assistant preamble and up to the three
// most recent coping message id/text pairs for the caller.
func GetCopingMessage(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		day := app.Clock().Now().In(app.Location()).Format("2006-01-02")

		result, err := service.CopingMessagesToday(c.Request.Context(), app.Messages(), user.UserID, day)
		if err != nil {
			if errors.Is(err, service.ErrNoMessagesToday) {
				HandleError(c, app.Logger(), err, 404, "No coping messages for today")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to fetch coping messages")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user_name":       user.UserName,
			"assistant_text":  result.AssistantText,
			"coping_messages": result.Items,
		})
	}
}

// GetCondition returns today's daily narrative plus the wearable contributor
// sub-scores passed through verbatim.
func GetCondition(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		apiKey, ok := app.Credentials().Resolve(user.OuraID)
		if !ok {
			HandleError(c, app.Logger(), errors.New("no credential for oura_id"), 400, "No wearable credential configured for this user")
			return
		}
		day := app.Clock().Now().In(app.Location()).Format("2006-01-02")

		result, err := service.Condition(c.Request.Context(), app.Daily(), app.Contributors(), app.Logger(), apiKey, user.UserID, day)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "No daily message for today")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to fetch condition")
			return
		}

		body := gin.H{
			"user_name":           user.UserName,
			"daily_message_text":  result.DailyMessage.DailyMessageText,
			"previous_days_score": result.DailyMessage.PreviousDaysScore,
			"todays_days_score":   result.DailyMessage.TodaysDaysScore,
		}
		if result.Contributors != nil {
			body["activity_balance"] = result.Contributors.ActivityBalance
			body["body_temperature"] = result.Contributors.BodyTemperature
			body["hrv_balance"] = result.Contributors.HrvBalance
			body["previous_day_activity"] = result.Contributors.PreviousDayActivity
			body["previous_night"] = result.Contributors.PreviousNight
			body["recovery_index"] = result.Contributors.RecoveryIndex
			body["resting_heart_rate"] = result.Contributors.RestingHeartRate
			body["sleep_balance"] = result.Contributors.SleepBalance
			body["day"] = result.Day
		}
		c.JSON(http.StatusOK, body)
	}
}

// PostCopingStart fetches the live heart rate and stores it as
// heart_rate_before for the given coping message.
func PostCopingStart(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		var body CopingStartRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "coping_message_id is required")
			return
		}

		apiKey, ok := app.Credentials().Resolve(user.OuraID)
		if !ok {
			HandleError(c, app.Logger(), errors.New("no credential for oura_id"), 400, "No wearable credential configured for this user")
			return
		}

		bpm, err := service.CopingStart(c.Request.Context(), app.Messages(), app.HeartRate(), apiKey, body.CopingMessageID)
		if err != nil {
			handleCopingError(c, app, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":           "心拍数を登録しました",
			"heart_rate_before": bpm,
		})
	}
}

// PostCopingFinish stores the satisfaction label and post-session heart rate
// and reports whether relaxation improved.
func PostCopingFinish(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		var body CopingFinishRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "coping_message_id and satisfaction_score are required")
			return
		}

		apiKey, ok := app.Credentials().Resolve(user.OuraID)
		if !ok {
			HandleError(c, app.Logger(), errors.New("no credential for oura_id"), 400, "No wearable credential configured for this user")
			return
		}

		result, err := service.CopingFinish(c.Request.Context(), app.Messages(), app.HeartRate(), apiKey, body.CopingMessageID, body.SatisfactionScore)
		if err != nil {
			handleCopingError(c, app, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":            result.Message,
			"heart_rate_before":  result.HeartRateBefore,
			"latest_heart_rate":  result.LatestHeartRate,
			"satisfaction_score": result.SatisfactionScore,
		})
	}
}

func handleCopingError(c *gin.Context, app App, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		HandleError(c, app.Logger(), err, 404, "Coping message not found")
	case errors.Is(err, service.ErrNoHeartRate):
		HandleError(c, app.Logger(), err, 404, "心拍数が見つかりません")
	case errors.Is(err, service.ErrNoBaselineHeartRate):
		HandleError(c, app.Logger(), err, 400, "Coping session has not been started")
	default:
		HandleError(c, app.Logger(), err, 500, "Failed to update coping message")
	}
}
