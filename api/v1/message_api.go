package v1

import (
	"errors"
	"net/http"
	"strconv"

	"warbler/api/v1/request"
	"warbler/internal/authz"
	"warbler/internal/metrics"
	"warbler/service"

	"github.com/gin-gonic/gin"
)

// MessageAPI exposes HTTP handlers for composing, deleting and listing
// messages.
type MessageAPI struct {
	messages *service.MessageService
}

func NewMessageAPI(messages *service.MessageService) *MessageAPI {
	return &MessageAPI{messages: messages}
}

// Compose creates a message authored by the session user. Any author id
// the client puts in the body is ignored.
func (m *MessageAPI) Compose(c *gin.Context) {
	sess := authz.SessionFrom(c)
	if !authz.CanComposeMessage(sess) {
		metrics.IncAuthzDenied("compose_message")
		c.JSON(http.StatusUnauthorized, gin.H{"error": authz.DeniedMessage})
		return
	}

	var req request.ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncCompose("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := m.messages.Compose(sess.UserID, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			metrics.IncCompose("bad_request")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		metrics.IncCompose("internal_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	metrics.IncCompose("success")
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// Delete removes a message. Only the owner may delete; anyone else gets
// the denial body and the row stays intact.
func (m *MessageAPI) Delete(c *gin.Context) {
	sess := authz.SessionFrom(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		metrics.IncMessageDelete("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	msg, err := m.messages.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			metrics.IncMessageDelete("not_found")
			c.JSON(http.StatusNotFound, gin.H{"error": authz.DeniedMessage})
			return
		}
		metrics.IncMessageDelete("internal_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !authz.CanDeleteMessage(sess, msg) {
		metrics.IncAuthzDenied("delete_message")
		c.JSON(http.StatusUnauthorized, gin.H{"error": authz.DeniedMessage})
		return
	}

	if err := m.messages.Delete(id); err != nil {
		metrics.IncMessageDelete("internal_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	metrics.IncMessageDelete("success")
	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}

// ListByUser returns a user's messages, newest first. Profile messages
// are public, unlike the follower/following lists.
func (m *MessageAPI) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	msgs, err := m.messages.ListByUser(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
