package service

import (
	"fmt"
	"sync"
	"time"

	"warbler/config"
	"warbler/model"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

func setupTestConfig() {
	config.GlobalConfig = &config.Config{
		App: config.AppConfig{Env: "test", DefaultImageURL: "/static/images/default-pic.png"},
		JWT: config.JWTConfig{Secret: "test-secret", AccessExpire: 900, RefreshExpire: 3600},
	}
}

// memDB is a stateful in-memory stand-in for the MySQL schema. It
// reproduces the constraint behavior the services map onto sentinel
// errors: duplicate keys surface as errno 1062 and broken author
// references as errno 1452.
type memDB struct {
	mu       sync.Mutex
	nextUser uint64
	nextMsg  uint64
	nextEdge uint64
	users    map[uint64]model.User
	messages map[uint64]model.Message
	edges    map[[2]uint64]bool
}

func newMemDB() *memDB {
	return &memDB{
		users:    make(map[uint64]model.User),
		messages: make(map[uint64]model.Message),
		edges:    make(map[[2]uint64]bool),
	}
}

type memUserStore struct{ db *memDB }

func (s *memUserStore) Create(user *model.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, ex := range s.db.users {
		if ex.Username == user.Username || ex.Email == user.Email {
			return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
		}
	}
	s.db.nextUser++
	user.ID = s.db.nextUser
	user.CreatedAt = time.Now()
	s.db.users[user.ID] = *user
	return nil
}

func (s *memUserStore) GetByID(id uint64) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (s *memUserStore) GetByUsername(username string) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memUserStore) Delete(id uint64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for msgID, msg := range s.db.messages {
		if msg.UserID == id {
			delete(s.db.messages, msgID)
		}
	}
	for edge := range s.db.edges {
		if edge[0] == id || edge[1] == id {
			delete(s.db.edges, edge)
		}
	}
	delete(s.db.users, id)
	return nil
}

type memMessageStore struct{ db *memDB }

func (s *memMessageStore) Create(msg *model.Message) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if msg.Text == "" {
		return &mysql.MySQLError{Number: 1048, Message: "Column 'text' cannot be null"}
	}
	if _, ok := s.db.users[msg.UserID]; !ok {
		return &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}
	}
	s.db.nextMsg++
	msg.ID = s.db.nextMsg
	msg.CreatedAt = time.Now()
	s.db.messages[msg.ID] = *msg
	return nil
}

func (s *memMessageStore) GetByID(id uint64) (*model.Message, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	m, ok := s.db.messages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (s *memMessageStore) ListByUser(userID uint64, limit int) ([]model.Message, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var msgs []model.Message
	for _, m := range s.db.messages {
		if m.UserID == userID && len(msgs) < limit {
			msgs = append(msgs, m)
		}
	}
	return msgs, nil
}

func (s *memMessageStore) Delete(id uint64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.messages, id)
	return nil
}

func (s *memMessageStore) CountByUser(userID uint64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var count int64
	for _, m := range s.db.messages {
		if m.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *memMessageStore) countAll() int64 {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return int64(len(s.db.messages))
}

type memFollowStore struct{ db *memDB }

func (s *memFollowStore) Create(edge *model.Follow) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	key := [2]uint64{edge.FollowerID, edge.FolloweeID}
	if s.db.edges[key] {
		return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}
	s.db.nextEdge++
	edge.ID = s.db.nextEdge
	s.db.edges[key] = true
	return nil
}

func (s *memFollowStore) Delete(followerID, followeeID uint64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.edges, [2]uint64{followerID, followeeID})
	return nil
}

func (s *memFollowStore) Exists(followerID, followeeID uint64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.edges[[2]uint64{followerID, followeeID}], nil
}

func (s *memFollowStore) Followers(userID uint64) ([]model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var users []model.User
	for edge := range s.db.edges {
		if edge[1] == userID {
			if u, ok := s.db.users[edge[0]]; ok {
				users = append(users, u)
			}
		}
	}
	return users, nil
}

func (s *memFollowStore) Following(userID uint64) ([]model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var users []model.User
	for edge := range s.db.edges {
		if edge[0] == userID {
			if u, ok := s.db.users[edge[1]]; ok {
				users = append(users, u)
			}
		}
	}
	return users, nil
}

func (s *memFollowStore) CountFollowers(userID uint64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var count int64
	for edge := range s.db.edges {
		if edge[1] == userID {
			count++
		}
	}
	return count, nil
}

func (s *memFollowStore) CountFollowing(userID uint64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var count int64
	for edge := range s.db.edges {
		if edge[0] == userID {
			count++
		}
	}
	return count, nil
}

// memSessionStore implements auth.SessionStore without Redis.
type memSessionStore struct {
	mu      sync.Mutex
	refresh map[string]string
	black   map[string]bool
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{
		refresh: make(map[string]string),
		black:   make(map[string]bool),
	}
}

func (s *memSessionStore) SaveRefreshToken(userID uint64, device, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[fmt.Sprintf("%d:%s", userID, device)] = token
	return nil
}

func (s *memSessionStore) GetRefreshToken(userID uint64, device string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh[fmt.Sprintf("%d:%s", userID, device)], nil
}

func (s *memSessionStore) DeleteRefreshToken(userID uint64, device string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refresh, fmt.Sprintf("%d:%s", userID, device))
	return nil
}

func (s *memSessionStore) AddBlackList(token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.black[token] = true
	return nil
}

func (s *memSessionStore) InBlackList(token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.black[token], nil
}
