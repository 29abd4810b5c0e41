package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hireform/hireform/internal/models"
	"github.com/hireform/hireform/internal/services"
	"github.com/hireform/hireform/internal/utils"
)

type ResponseHandler struct {
	forms     services.FormService
	responses services.ResponseService
}

func NewResponseHandler(forms services.FormService, responses services.ResponseService) *ResponseHandler {
	return &ResponseHandler{forms: forms, responses: responses}
}

type SubmitResponseRequest struct {
	Answers       []models.QA           `json:"answers"`
	ResumeProfile *models.ResumeProfile `json:"resumeProfile"`
}

func (h *ResponseHandler) SubmitOwner(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	access, err := h.forms.ResolveOwner(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	h.submit(c, access)
}

func (h *ResponseHandler) SubmitPublic(c *gin.Context) {
	access, err := h.forms.ResolvePublic(c.Request.Context(), c.Param("shareToken"))
	if err != nil {
		writeError(c, err)
		return
	}

	h.submit(c, access)
}

func (h *ResponseHandler) submit(c *gin.Context, access *services.AccessContext) {
	var req SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResponseHandler", "invalid request body", err))
		return
	}

	saved, err := h.responses.Submit(c.Request.Context(), access, req.Answers, req.ResumeProfile)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": saved})
}

func (h *ResponseHandler) Results(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	form, rows, err := h.responses.Results(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"form": form, "responses": rows})
}

func (h *ResponseHandler) Detail(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	resp, form, err := h.responses.Detail(c.Request.Context(), userID, c.Param("responseId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": resp, "formName": form.Name})
}

func (h *ResponseHandler) RegenerateSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	resp, err := h.responses.RegenerateSummary(c.Request.Context(), userID, c.Param("responseId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": resp})
}
