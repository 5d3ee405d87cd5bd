package services

import (
	"strings"
	"time"

	"github.com/MoamenFouad/UniQuest/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomService struct {
	db *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{db: db}
}

func (s *RoomService) CreateRoom(creatorID uint, name, description string, isPublic bool) (*models.Room, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.ErrValidation("room name is required")
	}

	room := models.Room{
		Name:        strings.TrimSpace(name),
		Description: description,
		Code:        s.generateUniqueCode(),
		CreatorID:   creatorID,
		IsPublic:    isPublic,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		member := models.RoomMember{
			RoomID:   room.ID,
			UserID:   creatorID,
			IsAdmin:  true,
			JoinedAt: time.Now(),
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) GetRoomByCode(code string) (*models.Room, error) {
	var room models.Room
	if err := s.db.Where("code = ?", code).First(&room).Error; err != nil {
		return nil, models.ErrNotFound("room not found")
	}
	return &room, nil
}

// GetMember returns the user's membership in the room, or nil if they are
// not a member.
func (s *RoomService) GetMember(roomID, userID uint) *models.RoomMember {
	var member models.RoomMember
	if err := s.db.Where("room_id = ? AND user_id = ?", roomID, userID).First(&member).Error; err != nil {
		return nil
	}
	return &member
}

type RoomSummary struct {
	models.Room
	IsAdmin  bool `json:"is_admin"`
	Archived bool `json:"is_archived"`
}

func (s *RoomService) MyRooms(userID uint) ([]RoomSummary, error) {
	var memberships []models.RoomMember
	if err := s.db.Where("user_id = ?", userID).Order("joined_at ASC").Find(&memberships).Error; err != nil {
		return nil, err
	}

	result := make([]RoomSummary, 0, len(memberships))
	for _, m := range memberships {
		var room models.Room
		if err := s.db.First(&room, m.RoomID).Error; err != nil {
			continue
		}
		result = append(result, RoomSummary{Room: room, IsAdmin: m.IsAdmin, Archived: m.Archived})
	}
	return result, nil
}

type UpdateRoomInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
}

func (s *RoomService) UpdateRoom(code string, actorID uint, in UpdateRoomInput) (*models.Room, error) {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return nil, err
	}
	if !s.isAdmin(s.db, room.ID, actorID) {
		return nil, models.ErrPermissionDenied("only room admins can update the room")
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, models.ErrValidation("room name is required")
		}
		room.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		room.Description = *in.Description
	}
	if in.IsPublic != nil {
		room.IsPublic = *in.IsPublic
	}

	if err := s.db.Save(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) DeleteRoom(code string, actorID uint) error {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if !s.isAdmin(tx, room.ID, actorID) {
			return models.ErrPermissionDenied("only room admins can delete the room")
		}
		return deleteRoomCascade(tx, room.ID)
	})
}

// JoinRoom adds the user as a regular member. The join code is the invite:
// private rooms are joinable only by whoever holds the exact code.
func (s *RoomService) JoinRoom(code string, userID uint) (*models.Room, error) {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return nil, err
	}

	if s.GetMember(room.ID, userID) != nil {
		return nil, models.ErrConflict("already a member of this room")
	}

	member := models.RoomMember{
		RoomID:   room.ID,
		UserID:   userID,
		IsAdmin:  false,
		JoinedAt: time.Now(),
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) LeaveRoom(code string, userID uint) error {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var member models.RoomMember
		if err := tx.Where("room_id = ? AND user_id = ?", room.ID, userID).First(&member).Error; err != nil {
			return models.ErrNotFound("not a member of this room")
		}

		if member.IsAdmin {
			var adminCount, memberCount int64
			tx.Model(&models.RoomMember{}).Where("room_id = ? AND is_admin = ?", room.ID, true).Count(&adminCount)
			tx.Model(&models.RoomMember{}).Where("room_id = ?", room.ID).Count(&memberCount)
			if adminCount == 1 {
				if memberCount > 1 {
					return models.ErrInvalidState("promote another admin before leaving, or delete the room")
				}
				// Sole remaining member: the room cannot outlive its last
				// admin, so leaving removes it entirely.
				return deleteRoomCascade(tx, room.ID)
			}
		}

		return tx.Delete(&member).Error
	})
}

func (s *RoomService) SetRole(code string, actorID, targetUserID uint, makeAdmin bool) error {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if !s.isAdmin(tx, room.ID, actorID) {
			return models.ErrPermissionDenied("only room admins can change roles")
		}

		var target models.RoomMember
		if err := tx.Where("room_id = ? AND user_id = ?", room.ID, targetUserID).First(&target).Error; err != nil {
			return models.ErrNotFound("member not found in this room")
		}

		if target.IsAdmin == makeAdmin {
			return nil
		}

		if !makeAdmin {
			var adminCount int64
			tx.Model(&models.RoomMember{}).Where("room_id = ? AND is_admin = ?", room.ID, true).Count(&adminCount)
			if adminCount <= 1 {
				return models.ErrInvalidState("cannot demote the last admin")
			}
		}

		target.IsAdmin = makeAdmin
		return tx.Save(&target).Error
	})
}

type MemberInfo struct {
	UserID   uint      `json:"user_id"`
	Username string    `json:"username"`
	IsAdmin  bool      `json:"is_admin"`
	JoinedAt time.Time `json:"joined_at"`
}

func (s *RoomService) ListMembers(code string) ([]MemberInfo, error) {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return nil, err
	}

	var members []models.RoomMember
	if err := s.db.Where("room_id = ?", room.ID).Order("joined_at ASC").Find(&members).Error; err != nil {
		return nil, err
	}

	result := make([]MemberInfo, 0, len(members))
	for _, m := range members {
		var user models.User
		if err := s.db.First(&user, m.UserID).Error; err != nil {
			continue
		}
		result = append(result, MemberInfo{
			UserID:   m.UserID,
			Username: user.Username,
			IsAdmin:  m.IsAdmin,
			JoinedAt: m.JoinedAt,
		})
	}
	return result, nil
}

// SetArchived toggles the per-member archive flag; it hides the room from
// the member's default listing without touching the room itself.
func (s *RoomService) SetArchived(code string, userID uint, archived bool) error {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return err
	}

	var member models.RoomMember
	if err := s.db.Where("room_id = ? AND user_id = ?", room.ID, userID).First(&member).Error; err != nil {
		return models.ErrNotFound("not a member of this room")
	}

	member.Archived = archived
	return s.db.Save(&member).Error
}

func (s *RoomService) isAdmin(tx *gorm.DB, roomID, userID uint) bool {
	var member models.RoomMember
	if err := tx.Where("room_id = ? AND user_id = ? AND is_admin = ?", roomID, userID, true).First(&member).Error; err != nil {
		return false
	}
	return true
}

// deleteRoomCascade removes the room with its memberships, tasks and
// submissions. XP contributions disappear with the submissions since XP is
// always recomputed by summation.
func deleteRoomCascade(tx *gorm.DB, roomID uint) error {
	if err := tx.Where("task_id IN (?)",
		tx.Model(&models.Task{}).Select("id").Where("room_id = ?", roomID),
	).Delete(&models.Submission{}).Error; err != nil {
		return err
	}
	if err := tx.Where("room_id = ?", roomID).Delete(&models.Task{}).Error; err != nil {
		return err
	}
	if err := tx.Where("room_id = ?", roomID).Delete(&models.RoomMember{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Room{}, roomID).Error
}

func (s *RoomService) generateUniqueCode() string {
	for {
		code := strings.ToUpper(uuid.NewString()[:8])
		var count int64
		s.db.Model(&models.Room{}).Where("code = ?", code).Count(&count)
		if count == 0 {
			return code
		}
	}
}
