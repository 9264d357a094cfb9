package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addExpenseRequest struct {
	Amount      float64  `json:"amount"`
	Description string   `json:"description"`
	PaidBy      string   `json:"paidBy"`
	SplitAmong  []string `json:"splitAmong"`
}

func (s *Server) addExpense(c *gin.Context) {
	var req addExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	expense, err := s.ledger.AddExpense(
		c.Request.Context(),
		currentRoom(c).ID,
		req.Amount,
		req.Description,
		req.PaidBy,
		req.SplitAmong,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toExpense(expense))
}

type editExpenseRequest struct {
	// Pointer fields distinguish "not sent" from zero values: only the
	// fields present in the request are updated.
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
}

func (s *Server) editExpense(c *gin.Context) {
	var req editExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	expense, err := s.ledger.EditExpense(c.Request.Context(), c.Param("expenseId"), req.Amount, req.Description)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toExpense(expense))
}

func (s *Server) deleteExpense(c *gin.Context) {
	if err := s.ledger.RemoveExpense(c.Request.Context(), c.Param("expenseId")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}

func (s *Server) listExpenses(c *gin.Context) {
	var query pageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid query parameters"})
		return
	}

	page, err := s.ledger.Expenses(c.Request.Context(), currentRoom(c).ID, query.Page, query.Limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, expensePageResponse{
		Items:       toExpenses(page.Items),
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalCount:  page.TotalCount,
	})
}
