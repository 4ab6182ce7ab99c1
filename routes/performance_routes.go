package routes

import (
	"github.com/BerniceZTT/strategy_end/controllers"
	"github.com/BerniceZTT/strategy_end/middleware"
	"github.com/BerniceZTT/strategy_end/service"

	"github.com/gin-gonic/gin"
)

// RegisterPerformanceRoutes 注册绩效聚合相关路由
func RegisterPerformanceRoutes(router *gin.Engine, engine *service.PerformanceEngine) {
	pc := controllers.NewPerformanceController(engine)

	performanceRoutes := router.Group("/api/performance")
	performanceRoutes.Use(middleware.AuthMiddleware())

	performanceRoutes.POST("/aggregate", pc.Aggregate)
	performanceRoutes.POST("/snapshots", pc.SaveSnapshot)
	performanceRoutes.GET("/snapshots/:entityId", pc.GetSnapshot)
	performanceRoutes.GET("/hierarchy", pc.Hierarchy)
	performanceRoutes.POST("/compare", pc.Compare)
	performanceRoutes.POST("/heatmap", pc.Heatmap)
}
