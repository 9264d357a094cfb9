package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addDepositRequest struct {
	MemberID string  `json:"memberId"`
	Amount   float64 `json:"amount"`
}

func (s *Server) addDeposit(c *gin.Context) {
	var req addDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	deposit, err := s.ledger.AddDeposit(c.Request.Context(), currentRoom(c).ID, req.MemberID, req.Amount)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDeposit(deposit))
}

func (s *Server) deleteDeposit(c *gin.Context) {
	if err := s.ledger.RemoveDeposit(c.Request.Context(), c.Param("depositId")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deposit deleted"})
}

type pageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (s *Server) listDeposits(c *gin.Context) {
	var query pageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid query parameters"})
		return
	}

	page, err := s.ledger.Deposits(c.Request.Context(), currentRoom(c).ID, query.Page, query.Limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, depositPageResponse{
		Items:       toDeposits(page.Items),
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalCount:  page.TotalCount,
	})
}
