package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createRoomRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	AdminName string `json:"adminName"`
}

func (s *Server) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	room, admin, err := s.rooms.CreateRoom(c.Request.Context(), req.Code, req.Name, req.AdminName)
	if err != nil {
		abortWithError(c, err)
		return
	}

	// The admin's ID is their access key; this response is the only time
	// the server hands it out unprompted.
	c.JSON(http.StatusCreated, gin.H{
		"room":  toRoom(room),
		"admin": toMember(admin),
	})
}

type loginRequest struct {
	// Room is the room's public code or internal ID.
	Room string `json:"room"`
	// AccessKey is the member's own ID.
	AccessKey string `json:"accessKey"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	room, member, err := s.resolver.Resolve(c.Request.Context(), req.Room, req.AccessKey)
	if err != nil {
		abortWithError(c, err)
		return
	}

	token, err := s.tokens.Generate(member)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"room":   toRoom(room),
		"member": toMember(member),
	})
}

func (s *Server) getSummary(c *gin.Context) {
	summary, err := s.rooms.Summary(c.Request.Context(), currentRoom(c).ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSummary(summary))
}

type renameRoomRequest struct {
	Name string `json:"name"`
}

func (s *Server) renameRoom(c *gin.Context) {
	var req renameRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.rooms.Rename(c.Request.Context(), currentRoom(c).ID, req.Name); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room renamed"})
}
