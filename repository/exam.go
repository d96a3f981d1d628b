package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campuskit/course-file-service/entity"
	"github.com/campuskit/course-file-service/slots"
)

type ExamRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

// UpsertEntryField records one uploaded script against the exam entry at
// (courseFileID, group, index), creating the entry on first contact. The
// whole operation is a single INSERT ... ON CONFLICT DO UPDATE that assigns
// only the targeted script column, so concurrent uploads to different
// subfields of the same index never overwrite each other.
func (r *ExamRepository) UpsertEntryField(ctx context.Context, courseFileID uuid.UUID, group entity.ExamGroup, index int, sub slots.Subfield, key string) error {
	column, err := scriptColumn(sub)
	if err != nil {
		return err
	}

	entry := &entity.ExamEntry{
		ID:           uuid.New(),
		CourseFileID: courseFileID,
		Group:        group,
		Index:        index,
	}
	switch sub {
	case slots.SubfieldQuestion:
		entry.Question = &key
	case slots.SubfieldHighest:
		entry.Highest = &key
	case slots.SubfieldAverage:
		entry.Average = &key
	case slots.SubfieldMarginal:
		entry.Marginal = &key
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "course_file_id"},
			{Name: "exam_group"},
			{Name: "entry_index"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column:       key,
			"updated_at": time.Now(),
		}),
	}).Create(entry).Error
}

// UpsertFinalField is the same field-scoped merge for the single final-exam
// child, keyed on the course file alone.
func (r *ExamRepository) UpsertFinalField(ctx context.Context, courseFileID uuid.UUID, sub slots.Subfield, key string) error {
	column, err := scriptColumn(sub)
	if err != nil {
		return err
	}

	exam := &entity.FinalExam{
		ID:           uuid.New(),
		CourseFileID: courseFileID,
	}
	switch sub {
	case slots.SubfieldQuestion:
		exam.Question = &key
	case slots.SubfieldHighest:
		exam.Highest = &key
	case slots.SubfieldAverage:
		exam.Average = &key
	case slots.SubfieldMarginal:
		exam.Marginal = &key
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "course_file_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column:       key,
			"updated_at": time.Now(),
		}),
	}).Create(exam).Error
}

// scriptColumn maps an exam subfield to its column. Closed switch over the
// finite subfield set.
func scriptColumn(sub slots.Subfield) (string, error) {
	switch sub {
	case slots.SubfieldQuestion:
		return "question", nil
	case slots.SubfieldHighest:
		return "highest", nil
	case slots.SubfieldAverage:
		return "average", nil
	case slots.SubfieldMarginal:
		return "marginal", nil
	default:
		return "", fmt.Errorf("unknown exam subfield %q", sub)
	}
}
