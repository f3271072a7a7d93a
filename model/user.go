package model

import "time"

// User 用户模型
type User struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Username       string    `gorm:"unique;not null;size:50" json:"username"`
	Email          string    `gorm:"unique;not null;size:100" json:"email"`
	PasswordHash   string    `gorm:"not null;size:100" json:"-"` // 忽略JSON序列化
	ImageURL       string    `gorm:"size:255" json:"image_url"`
	HeaderImageURL string    `gorm:"size:255" json:"header_image_url"`
	Bio            string    `gorm:"type:text" json:"bio"`
	Location       string    `gorm:"size:100" json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
