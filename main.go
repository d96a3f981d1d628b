package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/campuskit/course-file-service/config"
	"github.com/campuskit/course-file-service/http/controller"
	routes "github.com/campuskit/course-file-service/http/route"
	infraPkg "github.com/campuskit/course-file-service/infra"
	"github.com/campuskit/course-file-service/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra.Postgres.DB)

	ctrl := controller.NewController(cfg, infra, repo)

	router := routes.SetupRouter(ctrl)

	log.Println("HTTP Server started on :" + cfg.EnvConfig.Port)
	if err := router.Run(":" + cfg.EnvConfig.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
