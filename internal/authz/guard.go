// Package authz holds the pure allow/deny rules gating message and
// profile-list actions. The rules only look at the per-request session
// value; storage constraints are never relied on for authorization.
package authz

import (
	"warbler/model"

	"github.com/gin-gonic/gin"
)

const sessionKey = "warbler_session"

// DeniedMessage is the user-facing body for every authentication or
// authorization denial.
const DeniedMessage = "Access unauthorized"

// Session is the per-request identity: Anonymous, or Authenticated with
// the logged-in user's id.
type Session struct {
	UserID        uint64
	Authenticated bool
}

// Anonymous is the zero session.
var Anonymous = Session{}

// WithSession stores the session on the request context. Called by the
// auth middleware once the bearer token has been verified.
func WithSession(c *gin.Context, s Session) {
	c.Set(sessionKey, s)
}

// SessionFrom reads the session from the request context. Requests that
// never passed the auth middleware are Anonymous.
func SessionFrom(c *gin.Context) Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return Anonymous
	}
	s, ok := v.(Session)
	if !ok {
		return Anonymous
	}
	return s
}

// CanComposeMessage allows any authenticated user. The resulting message
// is always attributed to the session user, never a caller-supplied id.
func CanComposeMessage(s Session) bool {
	return s.Authenticated
}

// CanDeleteMessage allows only the message's owner.
func CanDeleteMessage(s Session, msg *model.Message) bool {
	return s.Authenticated && msg != nil && s.UserID == msg.UserID
}

// CanViewFollowerList allows any authenticated user to view any
// profile's follower list.
func CanViewFollowerList(s Session, targetUserID uint64) bool {
	return s.Authenticated
}

// CanViewFollowingList allows any authenticated user to view any
// profile's following list.
func CanViewFollowingList(s Session, targetUserID uint64) bool {
	return s.Authenticated
}

// CanDeleteAccount allows a user to delete only their own account.
func CanDeleteAccount(s Session, targetUserID uint64) bool {
	return s.Authenticated && s.UserID == targetUserID
}
