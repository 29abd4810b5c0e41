package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hireform/hireform/internal/api/handlers"
	"github.com/hireform/hireform/internal/api/middleware"
)

type Deps struct {
	Form     *handlers.FormHandler
	Followup *handlers.FollowupHandler
	Response *handlers.ResponseHandler
	Resume   *handlers.ResumeHandler
	WS       *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Owner routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.POST("/forms", d.Form.Create)
	auth.GET("/forms", d.Form.List)
	auth.GET("/forms/:id", d.Form.Get)
	auth.PATCH("/forms/:id", d.Form.Update)

	auth.POST("/forms/:id/resume", d.Resume.UploadOwner)
	auth.POST("/forms/:id/ai-next", d.Followup.Owner)
	auth.POST("/forms/:id/responses", d.Response.SubmitOwner)
	auth.GET("/forms/:id/results", d.Response.Results)
	auth.GET("/forms/:id/ai-logs", d.Followup.Audit)

	auth.GET("/responses/:responseId", d.Response.Detail)
	auth.POST("/responses/:responseId/summary", d.Response.RegenerateSummary)

	// WebSocket: live results feed
	auth.GET("/ws/forms/:id/results", d.WS.ResultsWS)

	// Public routes (share token, no auth)
	pub := r.Group("/public")
	pub.GET("/forms/:shareToken", d.Form.GetPublic)
	pub.POST("/forms/:shareToken/resume", d.Resume.UploadPublic)
	pub.POST("/forms/:shareToken/ai-next", d.Followup.Public)
	pub.POST("/forms/:shareToken/responses", d.Response.SubmitPublic)
}
