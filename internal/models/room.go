package models

import "time"

type Room struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"size:200;not null" json:"name"`
	Description string       `gorm:"size:1000" json:"description,omitempty"`
	Code        string       `gorm:"size:8;uniqueIndex;not null" json:"code"`
	CreatorID   uint         `gorm:"not null;index" json:"creator_id"`
	Creator     User         `gorm:"foreignKey:CreatorID" json:"-"`
	IsPublic    bool         `gorm:"not null;default:true" json:"is_public"`
	Members     []RoomMember `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Tasks       []Task       `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

type RoomMember struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	RoomID   uint      `gorm:"not null;uniqueIndex:idx_room_user" json:"room_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_room_user" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	IsAdmin  bool      `gorm:"not null;default:false" json:"is_admin"`
	Archived bool      `gorm:"not null;default:false" json:"archived"`
	JoinedAt time.Time `json:"joined_at"`
}
