package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MoamenFouad/UniQuest/internal/services"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask godoc
// @Summary      Create a task in a room
// @Description  Admin-only. Deadline is a wall-clock value in the platform timezone (YYYY-MM-DDTHH:MM) and must be in the future.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Param        request body services.CreateTaskInput true "Task data"
// @Success      201 {object} Task
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID := c.GetUint("user_id")
	var req services.CreateTaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(c.Param("code"), userID, req, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID := c.GetUint("user_id")
	tasks, err := h.taskService.ListTasks(c.Param("code"), userID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID := c.GetUint("user_id")
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid task id"})
		return
	}

	if err := h.taskService.DeleteTask(c.Param("code"), userID, uint(taskID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "task deleted"})
}
