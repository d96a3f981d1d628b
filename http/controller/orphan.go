package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuskit/course-file-service/utils"
)

// ListOrphanObjects returns objects still awaiting reconciliation, oldest
// first. Backs the manual sweep when the queue consumer is down.
func (ctrl *Controller) ListOrphanObjects(c *gin.Context) {
	if _, err := utils.GetUserIDFromContext(c); err != nil {
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	limit := 50
	if val := c.Query("limit"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil || parsed < 1 || parsed > 500 {
			utils.JSON400(c, "limit must be between 1 and 500")
			return
		}
		limit = parsed
	}

	orphans, err := ctrl.Repository.OrphanRepo.FindUnresolved(c.Request.Context(), limit)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to list orphan objects")
		utils.JSON500(c, "Failed to list orphan objects")
		return
	}

	utils.JSON200(c, gin.H{
		"orphans": orphans,
		"total":   len(orphans),
	})
}

// ResolveOrphanObject marks one orphan as handled after the operator
// re-linked or removed the object.
func (ctrl *Controller) ResolveOrphanObject(c *gin.Context) {
	if _, err := utils.GetUserIDFromContext(c); err != nil {
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid orphan id")
		return
	}

	if err := ctrl.Repository.OrphanRepo.MarkResolved(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSON404(c, "Orphan object not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to resolve orphan %s", id)
		utils.JSON500(c, "Failed to resolve orphan object")
		return
	}

	utils.JSON200(c, gin.H{"id": id, "resolved": true})
}
