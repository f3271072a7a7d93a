package v1

import (
	"errors"
	"net/http"
	"strconv"

	"warbler/internal/authz"
	"warbler/internal/metrics"
	"warbler/model"
	"warbler/service"

	"github.com/gin-gonic/gin"
)

// FollowAPI exposes HTTP handlers for the follow graph and the
// follower/following profile lists.
type FollowAPI struct {
	follows *service.FollowService
}

func NewFollowAPI(follows *service.FollowService) *FollowAPI {
	return &FollowAPI{follows: follows}
}

func targetUserID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return id, true
}

// Follow inserts the edge session user -> target.
func (f *FollowAPI) Follow(c *gin.Context) {
	sess := authz.SessionFrom(c)
	target, ok := targetUserID(c)
	if !ok {
		return
	}

	if err := f.follows.Follow(sess.UserID, target); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow), errors.Is(err, service.ErrAlreadyFollowing):
			metrics.IncFollow("follow", "rejected")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			metrics.IncFollow("follow", "not_found")
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			metrics.IncFollow("follow", "internal_error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	metrics.IncFollow("follow", "success")
	c.JSON(http.StatusOK, gin.H{"message": "following"})
}

// Unfollow removes the edge session user -> target. Removing an absent
// edge succeeds.
func (f *FollowAPI) Unfollow(c *gin.Context) {
	sess := authz.SessionFrom(c)
	target, ok := targetUserID(c)
	if !ok {
		return
	}

	if err := f.follows.Unfollow(sess.UserID, target); err != nil {
		metrics.IncFollow("unfollow", "internal_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	metrics.IncFollow("unfollow", "success")
	c.JSON(http.StatusOK, gin.H{"message": "unfollowed"})
}

// Following lists the users the target follows. Any authenticated user
// may view any profile's list.
func (f *FollowAPI) Following(c *gin.Context) {
	sess := authz.SessionFrom(c)
	target, ok := targetUserID(c)
	if !ok {
		return
	}

	if !authz.CanViewFollowingList(sess, target) {
		metrics.IncAuthzDenied("view_following")
		c.JSON(http.StatusUnauthorized, gin.H{"error": authz.DeniedMessage})
		return
	}

	users, err := f.follows.Following(target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	count, err := f.follows.CountFollowing(target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": profileList(users), "count": count})
}

// Followers lists the users following the target.
func (f *FollowAPI) Followers(c *gin.Context) {
	sess := authz.SessionFrom(c)
	target, ok := targetUserID(c)
	if !ok {
		return
	}

	if !authz.CanViewFollowerList(sess, target) {
		metrics.IncAuthzDenied("view_followers")
		c.JSON(http.StatusUnauthorized, gin.H{"error": authz.DeniedMessage})
		return
	}

	users, err := f.follows.Followers(target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	count, err := f.follows.CountFollowers(target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": profileList(users), "count": count})
}

type profileEntry struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	ImageURL string `json:"image_url"`
}

func profileList(users []model.User) []profileEntry {
	entries := make([]profileEntry, len(users))
	for i, u := range users {
		entries[i] = profileEntry{ID: u.ID, Username: u.Username, ImageURL: u.ImageURL}
	}
	return entries
}
