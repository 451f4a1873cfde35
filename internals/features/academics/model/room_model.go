package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomModel struct {
	RoomID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:room_id" json:"room_id"`

	// kode unik di poster QR ruangan
	RoomCode string `gorm:"type:varchar(30);not null;uniqueIndex:uq_rooms_code;column:room_code" json:"room_code"`
	RoomName string `gorm:"type:varchar(80);not null;column:room_name" json:"room_name"`

	RoomCampusID *uuid.UUID `gorm:"type:uuid;column:room_campus_id" json:"room_campus_id,omitempty"`

	RoomCreatedAt time.Time      `gorm:"column:room_created_at;autoCreateTime" json:"room_created_at"`
	RoomUpdatedAt time.Time      `gorm:"column:room_updated_at;autoUpdateTime" json:"room_updated_at"`
	RoomDeletedAt gorm.DeletedAt `gorm:"column:room_deleted_at;index" json:"room_deleted_at,omitempty"`
}

func (RoomModel) TableName() string { return "rooms" }
