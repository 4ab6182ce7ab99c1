package routes

import (
	"github.com/BerniceZTT/strategy_end/controllers"
	"github.com/BerniceZTT/strategy_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证相关路由
func RegisterAuthRoutes(router *gin.Engine) {
	authRoutes := router.Group("/api/auth")

	authRoutes.POST("/login", controllers.Login)
	authRoutes.GET("/me", middleware.AuthMiddleware(), controllers.GetCurrentUser)
}
