package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hireform/hireform/internal/models"
	"github.com/hireform/hireform/internal/services"
	"github.com/hireform/hireform/internal/utils"
)

// FollowupHandler serves the "next question or completion" operation. The
// owner and public routes differ only in how the form is resolved; the
// follow-up behavior itself is one code path.
type FollowupHandler struct {
	forms     services.FormService
	followups services.FollowupService
}

func NewFollowupHandler(forms services.FormService, followups services.FollowupService) *FollowupHandler {
	return &FollowupHandler{forms: forms, followups: followups}
}

type NextQuestionRequest struct {
	Summary       *string               `json:"summary"`
	BaseQuestions []string              `json:"baseQuestions"`
	History       []models.QA           `json:"history"`
	ResumeProfile *models.ResumeProfile `json:"resumeProfile"`
}

func (h *FollowupHandler) Owner(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	access, err := h.forms.ResolveOwner(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	h.next(c, access)
}

func (h *FollowupHandler) Public(c *gin.Context) {
	access, err := h.forms.ResolvePublic(c.Request.Context(), c.Param("shareToken"))
	if err != nil {
		writeError(c, err)
		return
	}

	h.next(c, access)
}

// Audit serves the owner's view of recent AI invocations on a form.
func (h *FollowupHandler) Audit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	access, err := h.forms.ResolveOwner(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)

	logs, err := h.followups.AuditTrail(c.Request.Context(), access, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (h *FollowupHandler) next(c *gin.Context, access *services.AccessContext) {
	var req NextQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "FollowupHandler", "invalid request body", err))
		return
	}

	out, err := h.followups.NextQuestion(c.Request.Context(), access, services.NextQuestionInput{
		Summary:       req.Summary,
		BaseQuestions: req.BaseQuestions,
		History:       req.History,
		Resume:        req.ResumeProfile,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
