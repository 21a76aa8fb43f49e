package api

import (
	"github.com/gin-gonic/gin"

	"github.com/notch-0314/heattech-backend/internal/auth"
)

// Register wires every route onto the engine. /token and /register are
// public; everything else requires a bearer token.
func Register(r *gin.Engine, app App) {
	r.Use(RequestIDMiddleware())

	r.POST("/token", PostToken(app))
	r.POST("/register", PostRegister(app))

	authorized := r.Group("/", auth.Middleware(app.Issuer(), app.Users(), app.Logger()))
	authorized.GET("/coping_message", GetCopingMessage(app))
	authorized.GET("/condition", GetCondition(app))
	authorized.POST("/coping_start", PostCopingStart(app))
	authorized.POST("/coping_finish", PostCopingFinish(app))
}
