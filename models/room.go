package models

import (
	"time"
)

type Room struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	TopicID      uint      `gorm:"not null;index" json:"topic_id"`
	Topic        Topic     `gorm:"foreignKey:TopicID" json:"topic"`
	HostID       uint      `gorm:"not null;index" json:"host_id"`
	Host         User      `gorm:"foreignKey:HostID" json:"host"`
	Participants []User    `gorm:"many2many:room_participants;" json:"participants,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoomParticipant is the join row behind Room.Participants.
type RoomParticipant struct {
	RoomID    uint      `gorm:"primaryKey" json:"room_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomOrder is the default listing order: most recently updated first.
const RoomOrder = "rooms.updated_at DESC, rooms.created_at DESC, rooms.id DESC"
