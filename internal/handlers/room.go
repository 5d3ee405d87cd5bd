package handlers

import (
	"net/http"
	"strconv"

	"github.com/MoamenFouad/UniQuest/internal/services"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomService *services.RoomService
}

func NewRoomHandler(roomService *services.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required" example:"Algorithms 101"`
	Description string `json:"description" example:"Weekly problem sets"`
	IsPublic    *bool  `json:"is_public"`
}

type SetRoleRequest struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID := c.GetUint("user_id")
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	room, err := h.roomService.CreateRoom(userID, req.Name, req.Description, isPublic)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) MyRooms(c *gin.Context) {
	userID := c.GetUint("user_id")
	rooms, err := h.roomService.MyRooms(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	userID := c.GetUint("user_id")
	room, err := h.roomService.GetRoomByCode(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	isAdmin, isMember, archived := false, false, false
	if member := h.roomService.GetMember(room.ID, userID); member != nil {
		isMember = true
		isAdmin = member.IsAdmin
		archived = member.Archived
	}

	c.JSON(http.StatusOK, gin.H{
		"room":        room,
		"is_member":   isMember,
		"is_admin":    isAdmin,
		"is_archived": archived,
	})
}

func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	userID := c.GetUint("user_id")
	var req services.UpdateRoomInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	room, err := h.roomService.UpdateRoom(c.Param("code"), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	userID := c.GetUint("user_id")
	if err := h.roomService.DeleteRoom(c.Param("code"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "room deleted"})
}

// JoinRoom godoc
// @Summary      Join a room by code
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Success      200 {object} Room
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/rooms/{code}/join [post]
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	userID := c.GetUint("user_id")
	room, err := h.roomService.JoinRoom(c.Param("code"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	userID := c.GetUint("user_id")
	if err := h.roomService.LeaveRoom(c.Param("code"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "left room"})
}

func (h *RoomHandler) ListMembers(c *gin.Context) {
	members, err := h.roomService.ListMembers(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *RoomHandler) SetMemberRole(c *gin.Context) {
	userID := c.GetUint("user_id")
	targetID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.roomService.SetRole(c.Param("code"), userID, uint(targetID), *req.IsAdmin); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "role updated"})
}

func (h *RoomHandler) ArchiveRoom(c *gin.Context) {
	userID := c.GetUint("user_id")
	if err := h.roomService.SetArchived(c.Param("code"), userID, true); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "room archived"})
}

func (h *RoomHandler) UnarchiveRoom(c *gin.Context) {
	userID := c.GetUint("user_id")
	if err := h.roomService.SetArchived(c.Param("code"), userID, false); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "room unarchived"})
}
