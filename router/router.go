package router

import (
	"time"

	"spendtrack/api"
	"spendtrack/config"
	_ "spendtrack/docs"
	"spendtrack/middleware"
	"spendtrack/service"
	"spendtrack/store"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
// emailService 可为 nil（未启用邮件时不发预算提醒）
func SetupRouter(cfg *config.Config, s *store.Store, notifier *service.Notifier, emailService *service.EmailService) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录，注册/登录共享限流）
		authHandler := api.NewAuthHandler(cfg, s)
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit(10, time.Minute))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 用户相关
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			// 消费记录相关
			expenseHandler := api.NewExpenseHandler(s, notifier, emailService)
			expenses := authorized.Group("/expenses")
			{
				expenses.POST("", expenseHandler.Create)
				expenses.GET("", expenseHandler.List)
				expenses.DELETE("/:id", expenseHandler.Delete)
			}

			// 预算相关
			budgetHandler := api.NewBudgetHandler(s)
			budgets := authorized.Group("/budgets")
			{
				budgets.PUT("", budgetHandler.Set)
				budgets.GET("", budgetHandler.List)
			}

			// 消费分析
			analysisHandler := api.NewAnalysisHandler(s)
			authorized.GET("/analysis", analysisHandler.GetAnalysis)

			// 导出相关
			exportHandler := api.NewExportHandler(s)
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/excel", exportHandler.ExportExcel)
				export.GET("/json", exportHandler.ExportJSON)
			}

			// 实时推送（SSE，支持 ?token= 认证）
			liveHandler := api.NewLiveHandler(notifier)
			authorized.GET("/live/expenses", liveHandler.StreamExpenses)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
