package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/course-file-service/http/controller/dto"
	"github.com/campuskit/course-file-service/service"
	"github.com/campuskit/course-file-service/utils"
)

// GenerateSignedURL issues a presigned GET URL for a stored document, cached
// for the validity window, plus a viewer URL for inline rendering.
func (ctrl *Controller) GenerateSignedURL(c *gin.Context) {
	if _, err := utils.GetUserIDFromContext(c); err != nil {
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	var req dto.GenerateSignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "filePath is required")
		return
	}

	signedURL, err := ctrl.SignedURLService.Generate(c.Request.Context(), req.FilePath)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			utils.JSON400(c, err.Error())
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to presign %s", req.FilePath)
		utils.JSON500(c, "Failed to generate signed URL")
		return
	}

	utils.JSON200(c, gin.H{
		"signedUrl": signedURL,
		"viewerUrl": service.ViewerURL(signedURL),
	})
}
