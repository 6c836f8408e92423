// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"lead-manager/internal/cache"
	"lead-manager/internal/database"
	"lead-manager/internal/handler"
	"lead-manager/internal/handler/auth"
	"lead-manager/internal/handler/leads"
	"lead-manager/internal/handler/users"
	"lead-manager/internal/middleware"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache) {
	api := e.Group("/api")

	// 公開路由
	api.GET("/welcome", handler.WelcomeHandler())
	api.POST("/users", users.CreateUserHandler(db))
	api.POST("/token", auth.TokenHandler(db))

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db, rdb), middleware.RequireAuth(db))

	// 當前使用者資訊
	apiUsersMe := api.Group("/users/me", middleware.RequireAuth(db))
	apiUsersMe.GET("", users.GetMyUserHandler())

	// 當前使用者的 Leads CRUD
	apiLeads := api.Group("/leads", middleware.RequireAuth(db))
	apiLeads.POST("", leads.CreateLeadHandler(db))
	apiLeads.GET("", leads.ListLeadsHandler(db))
	apiLeads.GET("/:lead_id", leads.GetLeadHandler(db))
	apiLeads.PUT("/:lead_id", leads.UpdateLeadHandler(db))
	apiLeads.DELETE("/:lead_id", leads.DeleteLeadHandler(db))
}
