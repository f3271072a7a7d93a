package dao

import "warbler/model"

// UserStore persists users. Deleting a user cascades to owned messages
// and to both directions of follow edges.
type UserStore interface {
	Create(user *model.User) error
	GetByID(id uint64) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	Delete(id uint64) error
}

// MessageStore persists messages. It performs no authorization checks;
// callers gate every mutation.
type MessageStore interface {
	Create(msg *model.Message) error
	GetByID(id uint64) (*model.Message, error)
	ListByUser(userID uint64, limit int) ([]model.Message, error)
	Delete(id uint64) error
	CountByUser(userID uint64) (int64, error)
}

// FollowStore persists directed follow edges.
type FollowStore interface {
	Create(edge *model.Follow) error
	Delete(followerID, followeeID uint64) error
	Exists(followerID, followeeID uint64) (bool, error)
	Followers(userID uint64) ([]model.User, error)
	Following(userID uint64) ([]model.User, error)
	CountFollowers(userID uint64) (int64, error)
	CountFollowing(userID uint64) (int64, error)
}
