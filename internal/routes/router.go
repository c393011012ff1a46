package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fintrack-ai/fintrack/internal/handlers"
)

// Register wires every route. authMW is the token-validating middleware, or
// the demo-identity middleware when no identity service is configured.
func Register(r *gin.Engine, h *handlers.Handler, authMW gin.HandlerFunc) {
	r.GET("/api/status", h.Status)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
	}

	api := r.Group("/api")
	api.Use(authMW)
	{
		api.GET("/accounts", h.ListAccounts)
		api.POST("/accounts", h.CreateAccount)
		api.PUT("/accounts/:id", h.UpdateAccount)
		api.DELETE("/accounts/:id", h.DeleteAccount)

		api.GET("/transactions", h.ListTransactions)
		api.POST("/transactions", h.CreateTransaction)
		api.DELETE("/transactions/:id", h.DeleteTransaction)

		api.GET("/categories", h.ListCategories)

		api.GET("/dashboard", h.Dashboard)
		api.GET("/reports", h.Report)
		api.GET("/reports/categories.png", h.CategoryChart)
		api.GET("/reports/cashflow.png", h.CashflowChart)

		api.POST("/advice", h.Advice)

		api.GET("/stream", h.Stream)
	}
}
