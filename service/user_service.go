package service

import (
	"errors"
	"strings"
	"time"

	"warbler/config"
	"warbler/dao"
	"warbler/internal/auth"
	"warbler/model"
	"warbler/utils"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both unknown username and wrong
	// password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrValidation         = errors.New("required field missing or empty")
)

// UserService bundles the user store, session storage and authentication helpers.
type UserService struct {
	users   dao.UserStore
	Session auth.SessionStore
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(users dao.UserStore, session auth.SessionStore) *UserService {
	return &UserService{
		users:   users,
		Session: session,
	}
}

// Signup validates the required fields, hashes the password and persists
// the new user. The plaintext never reaches the store.
func (s *UserService) Signup(username, email, password, imageURL string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrValidation
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if imageURL == "" {
		imageURL = config.GlobalConfig.App.DefaultImageURL
	}
	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		ImageURL:     imageURL,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// Authenticate looks the user up by exact username and verifies the
// password against the stored digest. Unknown username and wrong
// password are indistinguishable to the caller.
func (s *UserService) Authenticate(username, password string) (*model.User, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil || user.ID == 0 {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a token pair, storing the refresh token
// for the user/device.
func (s *UserService) Login(username, password, device string) (string, string, error) {
	user, err := s.Authenticate(username, password)
	if err != nil {
		return "", "", err
	}

	accessToken, refreshToken, err := auth.GenerateTokens(user.ID, device)
	if err != nil {
		return "", "", err
	}

	ttl := time.Duration(config.GlobalConfig.JWT.RefreshExpire) * time.Second
	if err := s.Session.SaveRefreshToken(user.ID, device, refreshToken, ttl); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// RotateRefreshToken validates the presented refresh token, blacklists it
// against replay and issues a fresh token pair.
func (s *UserService) RotateRefreshToken(refreshToken, headerDevice string) (string, string, error) {
	if refreshToken == "" {
		return "", "", errors.New("missing refresh token")
	}

	claims, err := auth.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("refresh token invalid")
	}

	// If the client sends X-Device it must match the token claims.
	if headerDevice != "" && headerDevice != claims.Device {
		return "", "", errors.New("device mismatch")
	}

	stored, err := s.Session.GetRefreshToken(claims.UserID, claims.Device)
	if err != nil || stored != refreshToken {
		return "", "", errors.New("refresh token expired or rotated")
	}

	accessToken, newRefresh, err := auth.GenerateTokens(claims.UserID, claims.Device)
	if err != nil {
		return "", "", err
	}

	ttl := time.Duration(config.GlobalConfig.JWT.RefreshExpire) * time.Second
	if err := s.Session.SaveRefreshToken(claims.UserID, claims.Device, newRefresh, ttl); err != nil {
		return "", "", err
	}

	_ = s.Session.AddBlackList(refreshToken, ttl)

	return accessToken, newRefresh, nil
}

// GetByID 根据 ID 获取用户
func (s *UserService) GetByID(id uint64) (*model.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user and everything they own in one
// transaction. Ownership is checked by the caller's guard.
func (s *UserService) DeleteAccount(userID uint64) error {
	return s.users.Delete(userID)
}
