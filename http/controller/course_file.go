package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/course-file-service/http/controller/dto"
	"github.com/campuskit/course-file-service/service"
	"github.com/campuskit/course-file-service/utils"
)

// CreateCourseFile provisions a new course-file record together with its
// storage folder. One record per (owner, name); duplicates are a conflict.
func (ctrl *Controller) CreateCourseFile(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	var req dto.CreateCourseFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "courseFileName is required")
		return
	}

	// owner always comes from the token; a userId in the body is only
	// accepted when it matches the caller
	if req.UserID != "" && req.UserID != userID.String() {
		utils.JSON403(c, "userId does not match the authenticated user")
		return
	}

	cf, err := ctrl.CourseFileService.Create(c.Request.Context(), userID, req.CourseFileName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			utils.JSON400(c, err.Error())
		case errors.Is(err, service.ErrConflict):
			utils.JSON409(c, "Course file already exists: "+req.CourseFileName)
		default:
			ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to create course file %s", req.CourseFileName)
			utils.JSON500(c, "Failed to create course file")
		}
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(c.Request.Context(), "Created course file %s for user %s", cf.CourseFileName, userID)
	utils.JSON201(c, gin.H{
		"id":             cf.ID,
		"courseFileName": cf.CourseFileName,
		"ownerId":        cf.OwnerID,
	})
}

// ViewCourseFileByName returns the merged status view of one course file,
// the root record joined with its exam children.
func (ctrl *Controller) ViewCourseFileByName(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	name := c.Query("courseFileName")
	if name == "" {
		utils.JSON400(c, "courseFileName is required")
		return
	}

	view, err := ctrl.CourseFileService.GetByName(c.Request.Context(), userID, name)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			utils.JSON404(c, "Course file not found: "+name)
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to load course file %s", name)
		utils.JSON500(c, "Failed to load course file")
		return
	}

	utils.JSON200(c, view)
}

// ViewCourseFiles lists the status views of every course file the caller owns.
func (ctrl *Controller) ViewCourseFiles(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	views, err := ctrl.CourseFileService.ListForOwner(c.Request.Context(), userID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "Failed to list course files for user %s", userID)
		utils.JSON500(c, "Failed to list course files")
		return
	}

	utils.JSON200(c, gin.H{
		"course_files": views,
		"total":        len(views),
	})
}
