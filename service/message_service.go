package service

import (
	"errors"
	"strings"

	"warbler/dao"
	"warbler/model"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

const maxMessageLength = 140

// MessageService persists messages. It enforces the storage invariants
// (text present, author real) but no authorization; that lives with the
// callers' guard checks.
type MessageService struct {
	messages dao.MessageStore
	users    dao.UserStore
}

// NewMessageService 创建一个新的 MessageService 实例
func NewMessageService(messages dao.MessageStore, users dao.UserStore) *MessageService {
	return &MessageService{messages: messages, users: users}
}

// Compose creates a message owned by authorID. Empty text, overlong text
// or an unknown author rejects the write with no partial row.
func (s *MessageService) Compose(authorID uint64, text string) (*model.Message, error) {
	if strings.TrimSpace(text) == "" || len(text) > maxMessageLength {
		return nil, ErrValidation
	}
	if _, err := s.users.GetByID(authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}
	msg := &model.Message{
		UserID: authorID,
		Text:   text,
	}
	if err := s.messages.Create(msg); err != nil {
		var mysqlErr *mysql.MySQLError
		// 1048: NOT NULL violation, 1452: FK violation
		if errors.As(err, &mysqlErr) && (mysqlErr.Number == 1048 || mysqlErr.Number == 1452) {
			return nil, ErrValidation
		}
		return nil, err
	}
	return msg, nil
}

// Get 根据 ID 获取消息
func (s *MessageService) Get(id uint64) (*model.Message, error) {
	msg, err := s.messages.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return msg, nil
}

// Delete removes the message. Ownership is checked by the caller.
func (s *MessageService) Delete(id uint64) error {
	return s.messages.Delete(id)
}

// ListByUser returns a user's messages, newest first.
func (s *MessageService) ListByUser(userID uint64, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.messages.ListByUser(userID, limit)
}

// CountByUser 统计用户消息数
func (s *MessageService) CountByUser(userID uint64) (int64, error) {
	return s.messages.CountByUser(userID)
}
