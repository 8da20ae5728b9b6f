package model

import (
	"time"
)

// PublicFile 公开文件元数据，Key 指向对象存储中的实际对象
type PublicFile struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Key       string `gorm:"type:varchar(512);uniqueIndex:idx_public_key;not null" json:"key"`
	URL       string `gorm:"type:varchar(1024);not null" json:"url"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PublicFile) TableName() string {
	return "public_files"
}

// PrivateFile 私有文件元数据，仅属主可访问
type PrivateFile struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Key       string `gorm:"type:varchar(512);uniqueIndex:idx_private_key;not null" json:"key"`
	OwnerID   uint64 `gorm:"not null;index:idx_owner_id" json:"owner_id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Owner User `gorm:"foreignKey:OwnerID;references:ID"`
}

func (PrivateFile) TableName() string {
	return "private_files"
}
