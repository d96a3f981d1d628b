package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuskit/course-file-service/entity"
	"github.com/campuskit/course-file-service/slots"
)

type CourseFileRepository struct {
	db *gorm.DB
}

func NewCourseFileRepository(db *gorm.DB) *CourseFileRepository {
	return &CourseFileRepository{db: db}
}

// Create inserts a new course-file record. The unique index on
// (owner_id, course_file_name) makes concurrent duplicate creates surface as
// gorm.ErrDuplicatedKey; callers translate that to a conflict.
func (r *CourseFileRepository) Create(ctx context.Context, cf *entity.CourseFile) error {
	return r.db.WithContext(ctx).Create(cf).Error
}

// Delete removes a course-file record. Used to roll back a create whose
// storage provisioning failed.
func (r *CourseFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.CourseFile{}, "id = ?", id).Error
}

// FindByNameAndOwner loads a record together with its exam children.
func (r *CourseFileRepository) FindByNameAndOwner(ctx context.Context, ownerID uuid.UUID, name string) (*entity.CourseFile, error) {
	var cf entity.CourseFile
	err := r.db.WithContext(ctx).
		Preload("ExamEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("exam_group, entry_index")
		}).
		Preload("FinalExam").
		Where("owner_id = ? AND course_file_name = ?", ownerID, name).
		First(&cf).Error
	if err != nil {
		return nil, err
	}
	return &cf, nil
}

// ListByOwner returns every course file of one owner, children included.
func (r *CourseFileRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.CourseFile, error) {
	var files []entity.CourseFile
	err := r.db.WithContext(ctx).
		Preload("ExamEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("exam_group, entry_index")
		}).
		Preload("FinalExam").
		Where("owner_id = ?", ownerID).
		Order("course_file_name").
		Find(&files).Error
	return files, err
}

// SetSlotKey assigns the storage key of a single-value slot. Last write wins;
// only the targeted column is touched.
func (r *CourseFileRepository) SetSlotKey(ctx context.Context, id uuid.UUID, field slots.Field, key string) error {
	column, err := slotColumn(field)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&entity.CourseFile{}).
		Where("id = ?", id).
		Update(column, key)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// slotColumn maps a registry field to its column. Dispatch is a closed
// switch over the finite field set.
func slotColumn(field slots.Field) (string, error) {
	switch field {
	case slots.FieldFinalGrades:
		return "final_grades", nil
	case slots.FieldSummaryObe:
		return "summary_obe", nil
	case slots.FieldInsFeedback:
		return "ins_feedback", nil
	case slots.FieldCourseOutline:
		return "course_outline", nil
	case slots.FieldAssignment:
		return "assignment", nil
	case slots.FieldLabExperiment:
		return "lab_experiment", nil
	default:
		return "", fmt.Errorf("unknown slot field %q", field)
	}
}
