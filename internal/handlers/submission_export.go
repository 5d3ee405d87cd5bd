package handlers

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExportSubmissions streams every submission in the room as CSV, one row per
// (task, user) pair with its review state.
func (h *SubmissionHandler) ExportSubmissions(c *gin.Context) {
	userID := c.GetUint("user_id")
	code := c.Param("code")

	rows, err := h.submissionService.ListRoomSubmissions(code, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_submissions.csv\"", code))

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"task_id", "task_title", "username", "status", "xp_value", "submitted_at", "reviewed_at"})
	for _, r := range rows {
		reviewedAt := ""
		if r.ReviewedAt != nil {
			reviewedAt = r.ReviewedAt.Format("2006-01-02 15:04:05")
		}
		w.Write([]string{
			strconv.FormatUint(uint64(r.TaskID), 10),
			r.TaskTitle,
			r.Username,
			r.Status,
			strconv.Itoa(r.XPValue),
			r.SubmittedAt.Format("2006-01-02 15:04:05"),
			reviewedAt,
		})
	}
	w.Flush()
}
