package models

import (
	"time"
)

type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	RoomID    uint      `gorm:"not null;index" json:"room_id"`
	Room      *Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageOrder lists messages newest first.
const MessageOrder = "messages.created_at DESC, messages.id DESC"
