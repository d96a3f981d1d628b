package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExamGroup identifies a repeatable exam group on a course file.
type ExamGroup string

const (
	ExamGroupMid  ExamGroup = "MID"
	ExamGroupQuiz ExamGroup = "QUIZ"
)

// ExamEntry is one indexed instance of a dynamic exam group (mid/quiz).
// At most one row exists per (course_file_id, exam_group, entry_index);
// the four script columns are filled independently by separate uploads.
type ExamEntry struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CourseFileID uuid.UUID `json:"course_file_id" gorm:"type:uuid;not null;uniqueIndex:idx_exam_entry_slot;index"`
	Group        ExamGroup `json:"group" gorm:"column:exam_group;type:varchar(8);not null;uniqueIndex:idx_exam_entry_slot"`
	Index        int       `json:"index" gorm:"column:entry_index;not null;uniqueIndex:idx_exam_entry_slot"`

	Question *string `json:"question" gorm:"type:varchar(1024)"`
	Highest  *string `json:"highest" gorm:"type:varchar(1024)"`
	Average  *string `json:"average" gorm:"type:varchar(1024)"`
	Marginal *string `json:"marginal" gorm:"type:varchar(1024)"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsComplete reports whether all four scripts have been uploaded.
func (e *ExamEntry) IsComplete() bool {
	return e.Question != nil && e.Highest != nil && e.Average != nil && e.Marginal != nil
}

// FinalExam is the single (1:1) final-exam child of a course file. Same shape
// as ExamEntry but without an index.
type FinalExam struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CourseFileID uuid.UUID `json:"course_file_id" gorm:"type:uuid;not null;uniqueIndex"`

	Question *string `json:"question" gorm:"type:varchar(1024)"`
	Highest  *string `json:"highest" gorm:"type:varchar(1024)"`
	Average  *string `json:"average" gorm:"type:varchar(1024)"`
	Marginal *string `json:"marginal" gorm:"type:varchar(1024)"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (e *FinalExam) IsComplete() bool {
	return e.Question != nil && e.Highest != nil && e.Average != nil && e.Marginal != nil
}
