// Package server exposes the room, member and ledger services over a JSON
// REST API.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kartikn/roomfund/internal/auth"
	"github.com/kartikn/roomfund/internal/service"
	"github.com/kartikn/roomfund/internal/storage"
)

// Server wires the HTTP routes to the services.
type Server struct {
	router   *gin.Engine
	rooms    *service.RoomService
	members  *service.MemberService
	ledger   *service.LedgerService
	resolver *auth.Resolver
	tokens   *auth.TokenManager
}

// New builds a Server on top of the given store.
func New(store storage.Store, tokens *auth.TokenManager) *Server {
	s := &Server{
		rooms:    service.NewRoomService(store),
		members:  service.NewMemberService(store),
		ledger:   service.NewLedgerService(store),
		resolver: auth.NewResolver(store),
		tokens:   tokens,
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), metricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Authorization", "X-Member-Id"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Public: anyone can open a room or log into one they belong to.
	api.POST("/rooms", s.createRoom)
	api.POST("/login", s.login)

	// Room-scoped, any live member.
	api.GET("/rooms/:roomId/summary", s.requireMember, s.getSummary)
	api.GET("/rooms/:roomId/deposits", s.requireMember, s.listDeposits)
	api.POST("/rooms/:roomId/deposits", s.requireMember, s.addDeposit)
	api.GET("/rooms/:roomId/expenses", s.requireMember, s.listExpenses)
	api.POST("/rooms/:roomId/expenses", s.requireMember, s.addExpense)

	// Room-scoped, admin only.
	api.PATCH("/rooms/:roomId", s.requireMember, s.requireAdmin, s.renameRoom)
	api.POST("/rooms/:roomId/members", s.requireMember, s.requireAdmin, s.addMember)
	api.DELETE("/rooms/:roomId/members/:memberId", s.requireMember, s.requireAdmin, s.deleteMember)

	// Record-scoped corrections, admin only.
	api.DELETE("/deposits/:depositId", s.requireMember, s.requireAdmin, s.deleteDeposit)
	api.PUT("/expenses/:expenseId", s.requireMember, s.requireAdmin, s.editExpense)
	api.DELETE("/expenses/:expenseId", s.requireMember, s.requireAdmin, s.deleteExpense)

	return r
}
