package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hireform/hireform/internal/models"
	"github.com/hireform/hireform/internal/services"
	"github.com/hireform/hireform/internal/utils"
)

type FormHandler struct {
	svc services.FormService
}

func NewFormHandler(svc services.FormService) *FormHandler {
	return &FormHandler{svc: svc}
}

type CreateFormRequest struct {
	Name           string   `json:"name" binding:"required"`
	Summary        string   `json:"summary"`
	BaseQuestions  []string `json:"baseQuestions"`
	AIEnabled      bool     `json:"aiEnabled"`
	MaxAIQuestions *int     `json:"maxAiQuestions"`
	Public         bool     `json:"public"`
}

type UpdateFormRequest struct {
	Name           *string  `json:"name"`
	Summary        *string  `json:"summary"`
	BaseQuestions  []string `json:"baseQuestions"`
	AIEnabled      *bool    `json:"aiEnabled"`
	MaxAIQuestions *int     `json:"maxAiQuestions"`
	Public         *bool    `json:"public"`
	Archived       *bool    `json:"archived"`
}

func (h *FormHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "FormHandler.Create", "invalid request body", err))
		return
	}

	form, err := h.svc.Create(c.Request.Context(), userID, services.CreateFormInput{
		Name:           req.Name,
		Summary:        req.Summary,
		BaseQuestions:  req.BaseQuestions,
		AIEnabled:      req.AIEnabled,
		MaxAIQuestions: req.MaxAIQuestions,
		Public:         req.Public,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"form": form})
}

func (h *FormHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	includeArchived := c.Query("archived") == "true" || c.Query("archived") == "1"

	forms, err := h.svc.List(c.Request.Context(), userID, includeArchived)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forms": forms})
}

func (h *FormHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	form, err := h.svc.GetOwned(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"form": form})
}

func (h *FormHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "FormHandler.Update", "invalid request body", err))
		return
	}

	form, err := h.svc.Update(c.Request.Context(), userID, c.Param("id"), services.UpdateFormInput{
		Name:           req.Name,
		Summary:        req.Summary,
		BaseQuestions:  req.BaseQuestions,
		AIEnabled:      req.AIEnabled,
		MaxAIQuestions: req.MaxAIQuestions,
		Public:         req.Public,
		Archived:       req.Archived,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"form": form})
}

// publicForm is the candidate-facing view of a form: no owner id, no share
// token, no archival state.
type publicForm struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Summary        string   `json:"summary"`
	BaseQuestions  []string `json:"baseQuestions"`
	AIEnabled      bool     `json:"aiEnabled"`
	MaxAIQuestions int      `json:"maxAiQuestions"`
}

func toPublicForm(f *models.Form) publicForm {
	return publicForm{
		ID:             f.ID,
		Name:           f.Name,
		Summary:        f.Summary,
		BaseQuestions:  []string(f.BaseQuestions),
		AIEnabled:      f.AIEnabled,
		MaxAIQuestions: f.MaxAIQuestions,
	}
}

// GetPublic serves an unauthenticated form fetch by share token.
func (h *FormHandler) GetPublic(c *gin.Context) {
	access, err := h.svc.ResolvePublic(c.Request.Context(), c.Param("shareToken"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"form": toPublicForm(access.Form)})
}
