package dao

import (
	"warbler/model"

	"gorm.io/gorm"
)

type FollowDAO struct {
	db *gorm.DB
}

// NewFollowDAO 创建一个新的 FollowDAO 实例
func NewFollowDAO(db *gorm.DB) *FollowDAO {
	return &FollowDAO{db: db}
}

// Create 创建关注边
func (dao *FollowDAO) Create(edge *model.Follow) error {
	return dao.db.Create(edge).Error
}

// Delete removes the edge; deleting an absent edge is a no-op.
func (dao *FollowDAO) Delete(followerID, followeeID uint64) error {
	return dao.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.Follow{}).Error
}

// Exists 查询关注边是否存在
func (dao *FollowDAO) Exists(followerID, followeeID uint64) (bool, error) {
	var count int64
	err := dao.db.Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

// Followers returns the users who follow userID.
func (dao *FollowDAO) Followers(userID uint64) ([]model.User, error) {
	var users []model.User
	err := dao.db.Model(&model.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Find(&users).Error
	return users, err
}

// Following returns the users userID follows.
func (dao *FollowDAO) Following(userID uint64) ([]model.User, error) {
	var users []model.User
	err := dao.db.Model(&model.User{}).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&users).Error
	return users, err
}

// CountFollowers 统计粉丝数（入度）
func (dao *FollowDAO) CountFollowers(userID uint64) (int64, error) {
	var count int64
	err := dao.db.Model(&model.Follow{}).Where("followee_id = ?", userID).Count(&count).Error
	return count, err
}

// CountFollowing 统计关注数（出度）
func (dao *FollowDAO) CountFollowing(userID uint64) (int64, error) {
	var count int64
	err := dao.db.Model(&model.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
