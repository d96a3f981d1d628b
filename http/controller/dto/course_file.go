package dto

type CreateCourseFileRequest struct {
	CourseFileName string `json:"courseFileName" binding:"required"`
	UserID         string `json:"userId"`
}

type GenerateSignedURLRequest struct {
	FilePath string `json:"filePath" binding:"required"`
}
