package v1

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"warbler/api/v1/request"
	"warbler/config"
	"warbler/internal/auth"
	"warbler/internal/authz"
	"warbler/internal/metrics"
	"warbler/service"

	"github.com/gin-gonic/gin"
)

// UserAPI exposes HTTP handlers for signup/login/logout and account
// lifecycle flows.
type UserAPI struct {
	service *service.UserService
}

// NewUserAPI wires the service layer into the HTTP handlers.
func NewUserAPI(s *service.UserService) *UserAPI {
	return &UserAPI{service: s}
}

// Register handles new account creation. On success the caller is logged
// in immediately and receives a token pair.
func (u *UserAPI) Register(c *gin.Context) {
	var req request.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncSignup("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := u.service.Signup(req.Username, req.Email, req.Password, req.ImageURL)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			metrics.IncSignup("conflict")
			c.JSON(http.StatusBadRequest, gin.H{"error": "username or email already taken"})
			return
		}
		if errors.Is(err, service.ErrValidation) {
			metrics.IncSignup("bad_request")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		metrics.IncSignup("internal_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	device := c.GetHeader("X-Device")
	access, refresh, err := auth.GenerateTokens(user.ID, device)
	if err != nil {
		metrics.IncSignup("internal_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ttl := time.Duration(config.GlobalConfig.JWT.RefreshExpire) * time.Second
	if err := u.service.Session.SaveRefreshToken(user.ID, device, refresh, ttl); err != nil {
		metrics.IncSignup("internal_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.IncSignup("success")
	c.JSON(http.StatusCreated, gin.H{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Login validates user credentials and returns a new token pair. A
// failed login stays Anonymous; the error never says which half of the
// credentials was wrong.
func (u *UserAPI) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncLogin("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	device := c.GetHeader("X-Device")
	access, refresh, err := u.service.Login(req.Username, req.Password, device)
	if err != nil {
		metrics.IncLogin("unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	metrics.IncLogin("success")
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// RefreshToken rotates the refresh token and returns a new token pair.
func (u *UserAPI) RefreshToken(c *gin.Context) {
	var req request.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncRefresh("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	device := c.GetHeader("X-Device")
	access, refresh, err := u.service.RotateRefreshToken(req.RefreshToken, device)
	if err != nil {
		metrics.IncRefresh("unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	metrics.IncRefresh("success")
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Logout clears the session back to Anonymous. The Authorization header
// may carry either the access token or a still-verifiable refresh token.
func (u *UserAPI) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		metrics.IncLogout("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	// Case 1: a valid access token. Blacklist it for its remaining
	// lifetime and drop the stored refresh token.
	claims, err := auth.ParseToken(tokenStr)
	if err == nil {
		if err := u.service.Session.AddBlackList(tokenStr,
			time.Duration(config.GlobalConfig.JWT.AccessExpire)*time.Second); err != nil {
			metrics.IncLogout("internal_error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "blacklist failed"})
			return
		}
		_ = u.service.Session.DeleteRefreshToken(claims.UserID, claims.Device)

		metrics.IncLogout("success")
		c.JSON(http.StatusOK, gin.H{"message": "logout success"})
		return
	}

	// Case 2: treat the token as a refresh token; the signature must
	// still verify even if it expired.
	claims, err = auth.ParseTokenAllowExpired(tokenStr)
	if err != nil {
		metrics.IncLogout("invalid_token")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	stored, err := u.service.Session.GetRefreshToken(claims.UserID, claims.Device)
	if err != nil || stored == "" || stored != tokenStr {
		metrics.IncLogout("refresh_mismatch")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh invalid or expired"})
		return
	}

	if err := u.service.Session.AddBlackList(tokenStr,
		time.Duration(config.GlobalConfig.JWT.RefreshExpire)*time.Second); err != nil {
		metrics.IncLogout("internal_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "blacklist failed"})
		return
	}

	_ = u.service.Session.DeleteRefreshToken(claims.UserID, claims.Device)

	metrics.IncLogout("success")
	c.JSON(http.StatusOK, gin.H{"message": "logout success"})
}

// DeleteMe removes the session user's account, cascading owned messages
// and follow edges in one transaction.
func (u *UserAPI) DeleteMe(c *gin.Context) {
	sess := authz.SessionFrom(c)
	if !authz.CanDeleteAccount(sess, sess.UserID) {
		metrics.IncAuthzDenied("delete_account")
		c.JSON(http.StatusUnauthorized, gin.H{"error": authz.DeniedMessage})
		return
	}
	if err := u.service.DeleteAccount(sess.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	_ = u.service.Session.DeleteRefreshToken(sess.UserID, c.GetString("device"))
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
