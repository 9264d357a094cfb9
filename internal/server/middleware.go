package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kartikn/roomfund/internal/auth"
	"github.com/kartikn/roomfund/internal/models"
)

// Context keys for the resolved identity.
const (
	roomKey   = "roomfund/room"
	memberKey = "roomfund/member"
)

// currentRoom returns the canonical room resolved by requireMember.
// Route params may carry the human room code; this never does.
func currentRoom(c *gin.Context) *models.Room {
	return c.MustGet(roomKey).(*models.Room)
}

// currentMember returns the member resolved by requireMember.
func currentMember(c *gin.Context) *models.Member {
	return c.MustGet(memberKey).(*models.Member)
}

// requireMember authenticates the request's access key and resolves it
// against the room in the route, if any. Routes addressed by record ID
// (e.g. DELETE /deposits/:depositId) scope to the member's own room.
func (s *Server) requireMember(c *gin.Context) {
	credential, err := s.credential(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var (
		room   *models.Room
		member *models.Member
	)
	if roomParam := c.Param("roomId"); roomParam != "" {
		room, member, err = s.resolver.Resolve(c.Request.Context(), roomParam, credential)
	} else {
		room, member, err = s.resolver.ResolveMember(c.Request.Context(), credential)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Set(roomKey, room)
	c.Set(memberKey, member)
	c.Next()
}

// credential extracts the member access key from the request: either the
// raw key in X-Member-Id or a session token in the Authorization header.
func (s *Server) credential(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return c.GetHeader("X-Member-Id"), nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", auth.ErrInvalidToken
	}

	claims, err := s.tokens.Validate(parts[1])
	if err != nil {
		return "", err
	}
	return claims.MemberID, nil
}

// requireAdmin rejects non-admin members. Runs after requireMember.
func (s *Server) requireAdmin(c *gin.Context) {
	if currentMember(c).Role != models.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: "admin access required"})
		return
	}
	c.Next()
}

// requestLogger logs every request with its duration and status.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.ClientIP(),
		}
		if status >= http.StatusInternalServerError {
			slog.Error("Request completed", attrs...)
		} else if status >= http.StatusBadRequest {
			slog.Warn("Request completed", attrs...)
		} else {
			slog.Info("Request completed", attrs...)
		}
	}
}
