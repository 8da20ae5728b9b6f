package api

import (
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/logger"
	"Inkwell/internal/wire"

	"github.com/gin-gonic/gin"
)

// NewRouter 装配路由与中间件
func NewRouter(app *wire.App) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Trace())
	r.Use(middleware.Cors())
	logger.SetupGin(r)

	registerRoutes(r, app)

	return r
}

func registerRoutes(r *gin.Engine, app *wire.App) {
	posts := r.Group("/posts")
	{
		posts.GET("", app.PostHandler.ListPosts)
		posts.GET("/:id", app.PostHandler.GetPost)

		authed := posts.Use(middleware.Auth())
		authed.POST("", app.PostHandler.CreatePost)
		authed.PUT("/:id", app.PostHandler.UpdatePost)
		authed.DELETE("/:id", app.PostHandler.DeletePost)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", app.CategoryHandler.ListCategories)
		categories.GET("/:id", app.CategoryHandler.GetCategory)

		authed := categories.Use(middleware.Auth())
		authed.POST("", app.CategoryHandler.CreateCategory)
		authed.PUT("/:id", app.CategoryHandler.UpdateCategory)
		authed.DELETE("/:id", app.CategoryHandler.DeleteCategory)
	}

	users := r.Group("/users")
	{
		users.POST("/register", app.UserHandler.Register)

		authed := users.Use(middleware.Auth())
		authed.GET("/me", app.UserHandler.Me)
		authed.GET("/by-email", app.UserHandler.GetByEmail)
		authed.POST("/logout", app.UserHandler.Logout)
		authed.POST("/avatar", app.UserHandler.SetAvatar)
		authed.DELETE("/avatar", app.UserHandler.ClearAvatar)
	}

	files := r.Group("/files", middleware.Auth())
	{
		files.POST("", app.FileHandler.UploadPrivateFile)
		files.GET("", app.FileHandler.ListPrivateFiles)
		files.GET("/:id", app.FileHandler.DownloadPrivateFile)
		files.DELETE("/:id", app.FileHandler.DeletePrivateFile)
	}
}
