package model

import (
	"time"
)

type User struct {
	ID        uint64  `gorm:"primaryKey"`
	Email     string  `gorm:"type:varchar(255);uniqueIndex:idx_email;not null"`
	Name      string  `gorm:"type:varchar(100);not null"`
	Password  string  `gorm:"type:varchar(255);not null"`
	AvatarID  *uint64 `gorm:"index:idx_avatar_id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// 头像为用户独占的一对一公开文件，最多一个
	Avatar *PublicFile   `gorm:"foreignKey:AvatarID;references:ID"`
	Files  []PrivateFile `gorm:"foreignKey:OwnerID;references:ID"`
}

func (User) TableName() string {
	return "users"
}
