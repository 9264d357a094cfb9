package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addMemberRequest struct {
	Name string `json:"name"`
}

func (s *Server) addMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	member, err := s.members.AddMember(c.Request.Context(), currentRoom(c).ID, req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}

	// The new member's ID is their access key; whoever added them passes
	// it on out of band.
	c.JSON(http.StatusCreated, toMember(member))
}

func (s *Server) deleteMember(c *gin.Context) {
	err := s.members.RemoveMember(c.Request.Context(), currentRoom(c).ID, c.Param("memberId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
