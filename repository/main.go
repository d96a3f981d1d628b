package repository

import (
	"gorm.io/gorm"
)

type Repository struct {
	CourseFileRepo *CourseFileRepository
	ExamRepo       *ExamRepository
	OrphanRepo     *OrphanObjectRepository
}

func InitRepository(db *gorm.DB) *Repository {
	return &Repository{
		CourseFileRepo: NewCourseFileRepository(db),
		ExamRepo:       NewExamRepository(db),
		OrphanRepo:     NewOrphanObjectRepository(db),
	}
}
