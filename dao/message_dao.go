package dao

import (
	"warbler/model"

	"gorm.io/gorm"
)

type MessageDAO struct {
	db *gorm.DB
}

// NewMessageDAO 创建一个新的 MessageDAO 实例
func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{db: db}
}

// Create 创建新消息
func (dao *MessageDAO) Create(msg *model.Message) error {
	return dao.db.Create(msg).Error
}

// GetByID 根据 ID 获取消息
func (dao *MessageDAO) GetByID(id uint64) (*model.Message, error) {
	var msg model.Message
	err := dao.db.First(&msg, id).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListByUser returns a user's messages, newest first.
func (dao *MessageDAO) ListByUser(userID uint64, limit int) ([]model.Message, error) {
	var msgs []model.Message
	err := dao.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

// Delete 删除消息
func (dao *MessageDAO) Delete(id uint64) error {
	return dao.db.Delete(&model.Message{}, id).Error
}

// CountByUser 统计用户消息数
func (dao *MessageDAO) CountByUser(userID uint64) (int64, error) {
	var count int64
	err := dao.db.Model(&model.Message{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
