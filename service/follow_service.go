package service

import (
	"errors"

	"warbler/dao"
	"warbler/model"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following")
)

// FollowService maintains the directed follow graph.
type FollowService struct {
	follows dao.FollowStore
	users   dao.UserStore
}

// NewFollowService 创建一个新的 FollowService 实例
func NewFollowService(follows dao.FollowStore, users dao.UserStore) *FollowService {
	return &FollowService{follows: follows, users: users}
}

// Follow inserts the edge follower -> followee. Self-follow and
// duplicate edges are rejected; the unique index backs the duplicate
// check under concurrent inserts.
func (s *FollowService) Follow(followerID, followeeID uint64) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	if _, err := s.users.GetByID(followeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	exists, err := s.follows.Exists(followerID, followeeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFollowing
	}
	if err := s.follows.Create(&model.Follow{FollowerID: followerID, FolloweeID: followeeID}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

// Unfollow removes the edge; removing an absent edge is a no-op.
func (s *FollowService) Unfollow(followerID, followeeID uint64) error {
	return s.follows.Delete(followerID, followeeID)
}

// IsFollowing reports whether the edge a -> b exists.
func (s *FollowService) IsFollowing(a, b uint64) (bool, error) {
	return s.follows.Exists(a, b)
}

// IsFollowedBy reports whether the edge b -> a exists.
func (s *FollowService) IsFollowedBy(a, b uint64) (bool, error) {
	return s.follows.Exists(b, a)
}

// Followers returns the users following userID.
func (s *FollowService) Followers(userID uint64) ([]model.User, error) {
	return s.follows.Followers(userID)
}

// Following returns the users userID follows.
func (s *FollowService) Following(userID uint64) ([]model.User, error) {
	return s.follows.Following(userID)
}

// CountFollowers 统计粉丝数
func (s *FollowService) CountFollowers(userID uint64) (int64, error) {
	return s.follows.CountFollowers(userID)
}

// CountFollowing 统计关注数
func (s *FollowService) CountFollowing(userID uint64) (int64, error) {
	return s.follows.CountFollowing(userID)
}
