package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/campuskit/course-file-service/utils"
)

// HealthCheck probes every hard dependency. Optional components (redis,
// rabbitmq) are reported but never fail the check.
func (ctrl *Controller) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	status := gin.H{"service": "ok"}
	healthy := true

	sqlDB, err := ctrl.Infra.Postgres.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status["postgres"] = "unreachable"
		healthy = false
	} else {
		status["postgres"] = "ok"
	}

	if err := ctrl.Infra.Minio.Healthy(ctx); err != nil {
		status["minio"] = "unreachable"
		healthy = false
	} else {
		status["minio"] = "ok"
	}

	if ctrl.Infra.Redis != nil {
		if err := ctrl.Infra.Redis.Client.Ping(ctx).Err(); err != nil {
			status["redis"] = "unreachable"
		} else {
			status["redis"] = "ok"
		}
	} else {
		status["redis"] = "disabled"
	}

	if ctrl.Infra.RabbitMQ != nil {
		if ctrl.Infra.RabbitMQ.Conn.IsClosed() {
			status["rabbitmq"] = "unreachable"
		} else {
			status["rabbitmq"] = "ok"
		}
	} else {
		status["rabbitmq"] = "disabled"
	}

	if !healthy {
		utils.JSON503(c, status)
		return
	}
	utils.JSON200(c, status)
}
