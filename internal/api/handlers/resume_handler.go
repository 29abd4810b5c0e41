package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hireform/hireform/internal/services"
	"github.com/hireform/hireform/internal/utils"
)

const maxResumeBytes = 10 << 20

type ResumeHandler struct {
	forms   services.FormService
	resumes services.ResumeService
}

func NewResumeHandler(forms services.FormService, resumes services.ResumeService) *ResumeHandler {
	return &ResumeHandler{forms: forms, resumes: resumes}
}

func (h *ResumeHandler) UploadOwner(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	access, err := h.forms.ResolveOwner(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	h.upload(c, access)
}

func (h *ResumeHandler) UploadPublic(c *gin.Context) {
	access, err := h.forms.ResolvePublic(c.Request.Context(), c.Param("shareToken"))
	if err != nil {
		writeError(c, err)
		return
	}

	h.upload(c, access)
}

func (h *ResumeHandler) upload(c *gin.Context, access *services.AccessContext) {
	const op = "ResumeHandler.upload"

	fh, err := c.FormFile("resume")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "No file uploaded", err))
		return
	}

	if ext := strings.ToLower(filepath.Ext(fh.Filename)); ext != ".pdf" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "Resume must be a PDF", nil))
		return
	}
	if fh.Size <= 0 || fh.Size > maxResumeBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file too large (max 10MB)", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxResumeBytes+1))
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to read upload", err))
		return
	}
	if len(data) > maxResumeBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file too large (max 10MB)", nil))
		return
	}

	// sniff, don't trust the extension
	if ct := http.DetectContentType(data); ct != "application/pdf" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "Resume must be a PDF", nil))
		return
	}

	out, err := h.resumes.Process(c.Request.Context(), access, fh.Filename, data)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
