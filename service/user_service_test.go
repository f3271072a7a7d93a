package service

import (
	"errors"
	"testing"
)

func newUserFixture() (*UserService, *memDB, *memSessionStore) {
	setupTestConfig()
	db := newMemDB()
	session := newMemSessionStore()
	svc := NewUserService(&memUserStore{db: db}, session)
	return svc, db, session
}

func TestSignupHashesPassword(t *testing.T) {
	svc, _, _ := newUserFixture()

	user, err := svc.Signup("testuser", "test@test.com", "HASHED_PASSWORD", "http://example.com/image.jpg")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected a system-assigned id")
	}
	if user.PasswordHash == "HASHED_PASSWORD" {
		t.Fatal("stored password equals the plaintext")
	}

	got, err := svc.Authenticate("testuser", "HASHED_PASSWORD")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Authenticate returned user %d, want %d", got.ID, user.ID)
	}
}

func TestSignupDefaultsImageURL(t *testing.T) {
	svc, _, _ := newUserFixture()

	user, err := svc.Signup("testuser", "test@test.com", "password", "")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.ImageURL != "/static/images/default-pic.png" {
		t.Errorf("ImageURL = %q, want the configured placeholder", user.ImageURL)
	}
}

func TestSignupDuplicateRejected(t *testing.T) {
	svc, db, _ := newUserFixture()

	if _, err := svc.Signup("testuser", "test@test.com", "password", ""); err != nil {
		t.Fatalf("first Signup returned error: %v", err)
	}
	_, err := svc.Signup("testuser", "test@test.com", "password", "")
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate Signup error = %v, want ErrUserExists", err)
	}
	if len(db.users) != 1 {
		t.Errorf("user count = %d after rejected signup, want 1", len(db.users))
	}
}

func TestSignupMissingFields(t *testing.T) {
	svc, db, _ := newUserFixture()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"no username", "", "test@test.com", "password"},
		{"no email", "testuser", "", "password"},
		{"no password", "testuser", "test@test.com", ""},
		{"blank username", "   ", "test@test.com", "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Signup(tc.username, tc.email, tc.password, ""); !errors.Is(err, ErrValidation) {
				t.Errorf("Signup error = %v, want ErrValidation", err)
			}
		})
	}
	if len(db.users) != 0 {
		t.Errorf("user count = %d after rejected signups, want 0", len(db.users))
	}
}

func TestAuthenticateFailuresIndistinguishable(t *testing.T) {
	svc, _, _ := newUserFixture()

	if _, err := svc.Signup("testuser", "test@test.com", "HASHED_PASSWORD", ""); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	_, wrongPassword := svc.Authenticate("testuser", "invalidpassword")
	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPassword)
	}

	_, unknownUser := svc.Authenticate("invalidusername", "HASHED_PASSWORD")
	if !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Errorf("unknown username error = %v, want ErrInvalidCredentials", unknownUser)
	}

	// The caller must not be able to tell which half was wrong.
	if wrongPassword.Error() != unknownUser.Error() {
		t.Error("wrong-password and unknown-username errors differ")
	}
}

func TestLoginStoresRefreshToken(t *testing.T) {
	svc, _, session := newUserFixture()

	user, err := svc.Signup("testuser", "test@test.com", "password1", "")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	access, refresh, err := svc.Login("testuser", "password1", "phone")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected a token pair")
	}

	stored, _ := session.GetRefreshToken(user.ID, "phone")
	if stored != refresh {
		t.Error("refresh token was not stored for the user/device")
	}
}

func TestLoginBadCredentialsIssuesNothing(t *testing.T) {
	svc, _, session := newUserFixture()

	user, err := svc.Signup("testuser", "test@test.com", "password1", "")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	if _, _, err := svc.Login("testuser", "wrong", "phone"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login error = %v, want ErrInvalidCredentials", err)
	}
	if stored, _ := session.GetRefreshToken(user.ID, "phone"); stored != "" {
		t.Error("refresh token stored despite failed login")
	}
}

func TestRotateRefreshToken(t *testing.T) {
	svc, _, session := newUserFixture()

	if _, err := svc.Signup("testuser", "test@test.com", "password1", ""); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	_, refresh, err := svc.Login("testuser", "password1", "phone")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	newAccess, newRefresh, err := svc.RotateRefreshToken(refresh, "phone")
	if err != nil {
		t.Fatalf("RotateRefreshToken returned error: %v", err)
	}
	if newAccess == "" || newRefresh == "" || newRefresh == refresh {
		t.Fatal("expected a rotated token pair")
	}

	// The replaced refresh token is blacklisted and can no longer rotate.
	if black, _ := session.InBlackList(refresh); !black {
		t.Error("old refresh token was not blacklisted")
	}
	if _, _, err := svc.RotateRefreshToken(refresh, "phone"); err == nil {
		t.Error("expected replayed refresh token to be rejected")
	}
}

func TestRotateRefreshTokenDeviceMismatch(t *testing.T) {
	svc, _, _ := newUserFixture()

	if _, err := svc.Signup("testuser", "test@test.com", "password1", ""); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	_, refresh, err := svc.Login("testuser", "password1", "phone")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if _, _, err := svc.RotateRefreshToken(refresh, "laptop"); err == nil {
		t.Error("expected device mismatch to be rejected")
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	setupTestConfig()
	db := newMemDB()
	users := &memUserStore{db: db}
	messages := &memMessageStore{db: db}
	follows := &memFollowStore{db: db}
	userSvc := NewUserService(users, newMemSessionStore())
	msgSvc := NewMessageService(messages, users)
	followSvc := NewFollowService(follows, users)

	u1, err := userSvc.Signup("testuser1", "test1@test.com", "password1", "")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	u2, err := userSvc.Signup("testuser2", "test2@test.com", "password2", "")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if _, err := msgSvc.Compose(u1.ID, "Hello, World!"); err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if err := followSvc.Follow(u1.ID, u2.ID); err != nil {
		t.Fatalf("Follow returned error: %v", err)
	}
	if err := followSvc.Follow(u2.ID, u1.ID); err != nil {
		t.Fatalf("Follow returned error: %v", err)
	}

	if err := userSvc.DeleteAccount(u1.ID); err != nil {
		t.Fatalf("DeleteAccount returned error: %v", err)
	}

	if count, _ := msgSvc.CountByUser(u1.ID); count != 0 {
		t.Errorf("message count = %d after account deletion, want 0", count)
	}
	if following, _ := followSvc.IsFollowing(u1.ID, u2.ID); following {
		t.Error("outgoing follow edge survived account deletion")
	}
	if followers, _ := followSvc.CountFollowers(u2.ID); followers != 0 {
		t.Errorf("follower count = %d after account deletion, want 0", followers)
	}
	if _, err := userSvc.GetByID(u1.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByID error = %v, want ErrUserNotFound", err)
	}
}
