package handler

import (
	"imagehost/internal/app/middleware"
	"imagehost/internal/app/role"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes регистрирует все REST API маршруты с авторизацией
func (h *Handler) RegisterRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	router.Use(middleware.CORS(h.Config.CORS))

	api := router.Group("/api")
	{
		// Публичные эндпоинты
		api.POST("/register", h.RegisterUser)
		api.POST("/login", h.LoginUser)

		// Для авторизованных пользователей
		api.POST("/logout", authMiddleware.WithAuthCheck(role.User, role.Admin), h.LogoutUser)
		api.GET("/user", authMiddleware.WithAuthCheck(role.User, role.Admin), h.GetProfile)
		api.PUT("/user", authMiddleware.WithAuthCheck(role.User, role.Admin), h.UpdateProfile)
		api.POST("/upload", authMiddleware.WithAuthCheck(role.User, role.Admin), h.UploadFile)
		api.GET("/files", authMiddleware.WithAuthCheck(role.User, role.Admin), h.GetFiles)
		api.DELETE("/files", authMiddleware.WithAuthCheck(role.User, role.Admin), h.DeleteFile)

		// Только для администраторов
		admin := api.Group("/admin")
		admin.Use(authMiddleware.WithAuthCheck(role.Admin))
		{
			admin.GET("/users", h.GetUsers)
			admin.POST("/users/activate", h.ActivateUser)
			admin.POST("/users/update-password", h.UpdateUserPassword)
			admin.POST("/users/delete", h.DeleteUser)
			admin.GET("/files", h.GetAllFiles)
		}
	}

	// Публичная раздача изображений (опциональная проверка Referer внутри)
	router.GET("/images/:name", h.ServeImage)

	router.GET("/ping", h.Ping)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
