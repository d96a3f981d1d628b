package controller

import (
	"time"

	"github.com/campuskit/course-file-service/cache"
	"github.com/campuskit/course-file-service/config"
	"github.com/campuskit/course-file-service/infra"
	"github.com/campuskit/course-file-service/repository"
	"github.com/campuskit/course-file-service/service"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Repository *repository.Repository

	CourseFileService *service.CourseFileService
	UploadService     *service.UploadService
	SignedURLService  *service.SignedURLService
}

func NewController(config *config.Config, infra *infra.Infra, repo *repository.Repository) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}

	env := config.EnvConfig

	var urlCache cache.SignedURLCache
	if infra.Redis != nil {
		urlCache = cache.NewRedisSignedURLCache(infra.Redis.Client)
	} else {
		urlCache = cache.NewMemorySignedURLCache()
	}

	var reconcile service.ReconcilePublisher
	if infra.Produce != nil {
		reconcile = infra.Produce.ReconcileService
	}

	return &Controller{
		Config:     config,
		Infra:      infra,
		Repository: repo,

		CourseFileService: service.NewCourseFileService(infra.Minio, repo.CourseFileRepo),
		UploadService: service.NewUploadService(
			infra.Minio,
			repo.CourseFileRepo,
			repo.ExamRepo,
			repo.OrphanRepo,
			reconcile,
			env.Upload.MaxFileSize,
		),
		SignedURLService: service.NewSignedURLService(
			infra.Minio,
			urlCache,
			time.Duration(env.SignedURL.TTLSeconds)*time.Second,
			time.Duration(env.SignedURL.BufferSeconds)*time.Second,
		),
	}
}
