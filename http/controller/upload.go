package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/course-file-service/service"
	"github.com/campuskit/course-file-service/utils"
)

// UploadCourseFile accepts one multipart request against an existing course
// file and reports a per-tuple outcome. Tuples are independent: a failed
// slot never aborts its siblings, so the response always enumerates every
// recognized field with its own code.
func (ctrl *Controller) UploadCourseFile(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	courseFileName := c.Param("courseFileName")
	if courseFileName == "" {
		utils.JSON400(c, "courseFileName is required")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.JSON400(c, "Failed to parse multipart form: "+err.Error())
		return
	}

	result, err := ctrl.UploadService.HandleUpload(c.Request.Context(), userID, courseFileName, form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			utils.JSON404(c, "Course file not found: "+courseFileName)
		case errors.Is(err, service.ErrValidation):
			utils.JSON400(c, err.Error())
		default:
			ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Upload failed for course file %s", courseFileName)
			utils.JSON500(c, "Upload failed")
		}
		return
	}

	for _, tuple := range result.Results {
		if tuple.Code == service.CodeMetadataWriteFailed {
			ctrl.Infra.Logger.WarningWithContextf(c.Request.Context(),
				"Orphan object %s on course file %s: %s", tuple.Key, courseFileName, tuple.Error)
		}
	}

	if result.Failed() {
		utils.JSON400(c, result)
		return
	}
	utils.JSON200(c, result)
}
