package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campuskit/course-file-service/http/controller"
	middlewares "github.com/campuskit/course-file-service/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)
	r.GET("/healthz", ctrl.HealthCheck)

	courseRoutes := r.Group("/api/course")
	{
		courseRoutes.Use(middles.AuthMiddleware)

		courseRoutes.POST("/create", ctrl.CreateCourseFile)
		courseRoutes.POST("/:courseFileName/upload", ctrl.UploadCourseFile)

		userRoutes := courseRoutes.Group("/user")
		{
			userRoutes.GET("/viewCourseFileByName", ctrl.ViewCourseFileByName)
			userRoutes.GET("/viewCourseFiles", ctrl.ViewCourseFiles)
		}

		courseRoutes.POST("/signedUrl/generate", ctrl.GenerateSignedURL)

		orphanRoutes := courseRoutes.Group("/orphans")
		{
			orphanRoutes.GET("", ctrl.ListOrphanObjects)
			orphanRoutes.POST("/:id/resolve", ctrl.ResolveOrphanObject)
		}
	}

	return r
}
