package entity

import (
	"time"

	"github.com/google/uuid"
)

// CourseFile is the metadata aggregate for one course offering owned by one
// faculty user. Single-value columns hold either NULL or the storage key of
// the uploaded artifact. The (owner_id, course_file_name) pair is unique.
type CourseFile struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CourseFileName string    `json:"course_file_name" gorm:"type:varchar(64);not null;uniqueIndex:idx_course_file_owner_name"`
	OwnerID        uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;uniqueIndex:idx_course_file_owner_name;index"`

	FinalGrades   *string `json:"final_grades" gorm:"type:varchar(1024)"`
	SummaryObe    *string `json:"summary_obe" gorm:"type:varchar(1024)"`
	InsFeedback   *string `json:"ins_feedback" gorm:"type:varchar(1024)"`
	CourseOutline *string `json:"course_outline" gorm:"type:varchar(1024)"`
	Assignment    *string `json:"assignment" gorm:"type:varchar(1024)"`
	LabExperiment *string `json:"lab_experiment" gorm:"type:varchar(1024)"`

	IsCompleted bool `json:"is_completed" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	ExamEntries []ExamEntry `json:"exam_entries,omitempty" gorm:"foreignKey:CourseFileID;constraint:OnDelete:CASCADE"`
	FinalExam   *FinalExam  `json:"final_exam,omitempty" gorm:"foreignKey:CourseFileID;constraint:OnDelete:CASCADE"`
}
