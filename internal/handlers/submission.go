package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/MoamenFouad/UniQuest/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
	uploadDir         string
}

func NewSubmissionHandler(submissionService *services.SubmissionService, uploadDir string) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService, uploadDir: uploadDir}
}

const maxUploadSize = 50 << 20

// Submit godoc
// @Summary      Submit proof for a task
// @Description  Multipart upload. Fails once the deadline has passed or an active submission already exists.
// @Tags         submissions
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Task ID"
// @Param        file formData file true "Proof file"
// @Success      201 {object} Submission
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/tasks/{id}/submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	userID := c.GetUint("user_id")
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid task id"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no file provided"})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file too large (max 50MB)"})
		return
	}

	// File content is never inspected; the submission only keeps the handle.
	filename := fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(file.Filename))
	os.MkdirAll(h.uploadDir, 0755)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save file"})
		return
	}

	sub, err := h.submissionService.Submit(uint(taskID), userID, filename, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	userID := c.GetUint("user_id")
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid task id"})
		return
	}

	subs, err := h.submissionService.ListSubmissions(uint(taskID), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

type VerifyRequest struct {
	Decision string `json:"decision" binding:"required" example:"verified"`
}

// Verify godoc
// @Summary      Review a submission
// @Description  Admin-only. Decision is "verified" or "rejected". Verification is final; rejection allows resubmission.
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Task ID"
// @Param        sid path int true "Submission ID"
// @Param        request body VerifyRequest true "Review decision"
// @Success      200 {object} Submission
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/tasks/{id}/submissions/{sid}/verify [post]
func (h *SubmissionHandler) Verify(c *gin.Context) {
	userID := c.GetUint("user_id")
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid task id"})
		return
	}
	subID, err := strconv.ParseUint(c.Param("sid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid submission id"})
		return
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	sub, err := h.submissionService.Verify(uint(taskID), uint(subID), userID, req.Decision, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
