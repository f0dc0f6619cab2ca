package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/modelpricehub/ModelPriceHub-API/internal/api/handlers"
	"github.com/modelpricehub/ModelPriceHub-API/internal/api/middleware"
	"github.com/modelpricehub/ModelPriceHub-API/internal/auth"
	"github.com/modelpricehub/ModelPriceHub-API/internal/config"
	"github.com/modelpricehub/ModelPriceHub-API/internal/model"
	"github.com/modelpricehub/ModelPriceHub-API/internal/storage"
	"github.com/modelpricehub/ModelPriceHub-API/internal/vendor"
)

// SetupRouter 配置路由
func SetupRouter(db *gorm.DB, cfg *config.Config, presigner *storage.Presigner) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	// 组装依赖
	vendorRepo := vendor.NewRepository(db)
	vendorService := vendor.NewService(vendorRepo)
	modelService := model.NewService(model.NewRepository(db), vendorRepo)
	authService := auth.NewService(&cfg.Auth)

	vendorHandler := handlers.NewVendorHandler(vendorService)
	modelHandler := handlers.NewModelHandler(modelService)
	authHandler := handlers.NewAuthHandler(authService)
	publicHandler := handlers.NewPublicHandler(vendorService, modelService, &cfg.Currency)
	uploadHandler := handlers.NewUploadHandler(presigner)

	// 健康检查端点
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "ModelPriceHub-API",
		})
	})

	// 公开 API，无需认证
	public := router.Group("/api/public")
	{
		public.GET("/vendors", publicHandler.ListVendors)
		public.GET("/models", publicHandler.ListModels)
		public.GET("/models/:id", publicHandler.GetModel)
		public.GET("/currency", publicHandler.GetCurrency)
	}

	// 登录端点在认证中间件之外
	router.POST("/api/admin/auth/login", authHandler.Login)

	// 管理端 API
	admin := router.Group("/api/admin")
	admin.Use(middleware.AdminAuthMiddleware(authService))
	{
		vendors := admin.Group("/vendors")
		{
			vendors.POST("", vendorHandler.CreateVendor)
			vendors.GET("", vendorHandler.ListVendors)
			vendors.GET("/:id", vendorHandler.GetVendor)
			vendors.PUT("/:id", vendorHandler.UpdateVendor)
			vendors.DELETE("/:id", vendorHandler.DeleteVendor)
		}

		mdl := admin.Group("/models")
		{
			mdl.GET("", modelHandler.ListModels)
			mdl.POST("", modelHandler.CreateModel)
			mdl.GET("/export", modelHandler.ExportModels)
			mdl.POST("/import", modelHandler.ImportModels)
			mdl.GET("/:id", modelHandler.GetModel)
			mdl.PUT("/:id", modelHandler.UpdateModel)
			mdl.DELETE("/:id", modelHandler.DeleteModel)
		}

		admin.POST("/uploads/presign", uploadHandler.PresignUpload)
	}

	return router
}
