package api

import (
	"github.com/gin-gonic/gin"

	"github.com/leon37/EduConsult/internal/api/controller"
	"github.com/leon37/EduConsult/internal/api/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(
	r *gin.Engine,
	profileCtrl *controller.ProfileController,
	analysisCtrl *controller.AnalysisController,
	uploadCtrl *controller.UploadController,
	gatewayCtrl *controller.GatewayController,
) {
	r.Use(middleware.Cors())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/meta", profileCtrl.Meta)

		v1.GET("/profiles", profileCtrl.List)
		v1.POST("/profiles", profileCtrl.Create)
		v1.POST("/profiles/save", profileCtrl.Save)
		v1.GET("/profiles/:id", profileCtrl.Get)
		v1.PATCH("/profiles/:id", profileCtrl.Update)
		v1.DELETE("/profiles/:id", profileCtrl.Delete)

		v1.POST("/profiles/:id/analysis/interaction", analysisCtrl.AnalyzeInteraction)
		v1.POST("/profiles/:id/analysis/personality", analysisCtrl.AnalyzePersonality)
		v1.POST("/profiles/:id/feedback", analysisCtrl.GenerateFeedback)
		v1.POST("/profiles/:id/feedback/save", analysisCtrl.SaveFeedback)
		v1.POST("/activity/plan", analysisCtrl.GenerateActivityPlan)
		v1.POST("/profiles/:id/activity/save", analysisCtrl.SaveActivityPlan)

		v1.POST("/uploads", uploadCtrl.Upload)
		v1.POST("/gemini", gatewayCtrl.Generate)
	}
}
