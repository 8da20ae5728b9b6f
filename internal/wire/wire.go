package wire

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/handler"
	"Inkwell/internal/job"
	"Inkwell/internal/pkg/es"
	"Inkwell/internal/pkg/minio"
	"Inkwell/internal/repository"
	"Inkwell/internal/service"

	"gorm.io/gorm"
)

// App 汇集各层实例，手工装配
type App struct {
	PostHandler     *handler.PostHandler
	UserHandler     *handler.UserHandler
	FileHandler     *handler.FileHandler
	CategoryHandler *handler.CategoryHandler

	SearchReindexJob *job.SearchReindexJob
}

func BuildApp(db *gorm.DB) *App {
	postRepo := repository.NewPostRepository(db)
	userRepo := repository.NewUserRepo(db)
	fileRepo := repository.NewFileRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)

	searchRepo := es.NewPostSearchRepo(es.Client)

	publicStorage := minio.NewStorage(config.Cfg.MinIO.PublicBucket)
	privateStorage := minio.NewStorage(config.Cfg.MinIO.PrivateBucket)

	postService := service.NewPostService(postRepo, searchRepo)
	userService := service.NewUserService(userRepo, fileRepo, publicStorage)
	fileService := service.NewFileService(fileRepo, publicStorage, privateStorage)
	categoryService := service.NewCategoryService(categoryRepo)

	return &App{
		PostHandler:     handler.NewPostHandler(postService),
		UserHandler:     handler.NewUserHandler(userService),
		FileHandler:     handler.NewFileHandler(fileService),
		CategoryHandler: handler.NewCategoryHandler(categoryService),

		SearchReindexJob: job.NewSearchReindexJob(postRepo, searchRepo, config.Cfg.Reindex.BatchSize),
	}
}
