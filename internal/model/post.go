package model

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/goccy/go-json"
)

// Paragraphs 帖子正文，段落有序列表，按 JSON 存储
type Paragraphs []string

func (p Paragraphs) Value() (driver.Value, error) {
	return json.Marshal([]string(p))
}

func (p *Paragraphs) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = nil
		return nil
	}
	return errors.New("unsupported paragraphs column type")
}

type Post struct {
	ID         uint64     `gorm:"primaryKey" json:"id"`
	UserID     uint64     `gorm:"not null;index:idx_user_id" json:"user_id"`
	Title      string     `gorm:"type:varchar(255);not null" json:"title"`
	Paragraphs Paragraphs `gorm:"type:json;not null" json:"paragraphs"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// 关联关系
	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
