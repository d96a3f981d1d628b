package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuskit/course-file-service/entity"
	"github.com/campuskit/course-file-service/slots"
)

// ExamEntryView is one dynamic exam entry with derived completeness.
type ExamEntryView struct {
	Index      int     `json:"index"`
	Question   *string `json:"question"`
	Highest    *string `json:"highest"`
	Average    *string `json:"average"`
	Marginal   *string `json:"marginal"`
	IsComplete bool    `json:"is_complete"`
}

// FinalExamView is the 1:1 final-exam child with derived completeness.
type FinalExamView struct {
	Question   *string `json:"question"`
	Highest    *string `json:"highest"`
	Average    *string `json:"average"`
	Marginal   *string `json:"marginal"`
	IsComplete bool    `json:"is_complete"`
}

// CourseFileView is the merged read-back view the UI renders as upload
// status: the root record joined with its exam children.
type CourseFileView struct {
	ID             uuid.UUID       `json:"id"`
	CourseFileName string          `json:"course_file_name"`
	OwnerID        uuid.UUID       `json:"owner_id"`
	FinalGrades    *string         `json:"final_grades"`
	SummaryObe     *string         `json:"summary_obe"`
	InsFeedback    *string         `json:"ins_feedback"`
	CourseOutline  *string         `json:"course_outline"`
	Assignment     *string         `json:"assignment"`
	LabExperiment  *string         `json:"lab_experiment"`
	MidExams       []ExamEntryView `json:"mid_exams"`
	QuizExams      []ExamEntryView `json:"quiz_exams"`
	FinalExam      *FinalExamView  `json:"final_exam"`
	IsCompleted    bool            `json:"is_completed"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CourseFileService is the create/read path around course-file records.
type CourseFileService struct {
	store       ObjectStore
	courseFiles CourseFileStore
}

func NewCourseFileService(store ObjectStore, courseFiles CourseFileStore) *CourseFileService {
	return &CourseFileService{store: store, courseFiles: courseFiles}
}

// Create provisions a new course-file record and its storage folder.
// Exactly one record can exist per (owner, name); a duplicate create is a
// conflict. If the folder marker cannot be written, the fresh record is
// deleted again so no record exists without its storage namespace.
func (s *CourseFileService) Create(ctx context.Context, ownerID uuid.UUID, name string) (*entity.CourseFile, error) {
	name = strings.TrimSpace(name)
	if !slots.ValidCourseFileName(name) {
		return nil, fmt.Errorf("%w: course file name must match YYYY.S.CODE-SECTION", ErrValidation)
	}

	cf := &entity.CourseFile{
		ID:             uuid.New(),
		CourseFileName: name,
		OwnerID:        ownerID,
	}
	if err := s.courseFiles.Create(ctx, cf); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrConflict, name)
		}
		return nil, err
	}

	if err := s.store.EnsureFolder(ctx, name); err != nil {
		_ = s.courseFiles.Delete(ctx, cf.ID)
		return nil, fmt.Errorf("provision storage folder for %s: %w", name, err)
	}
	return cf, nil
}

// GetByName returns the merged status view for one course file.
func (s *CourseFileService) GetByName(ctx context.Context, ownerID uuid.UUID, name string) (*CourseFileView, error) {
	cf, err := s.courseFiles.FindByNameAndOwner(ctx, ownerID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	return newCourseFileView(cf), nil
}

// ListForOwner returns the status views of every course file the owner has.
func (s *CourseFileService) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]CourseFileView, error) {
	files, err := s.courseFiles.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	views := make([]CourseFileView, 0, len(files))
	for i := range files {
		views = append(views, *newCourseFileView(&files[i]))
	}
	return views, nil
}

func newCourseFileView(cf *entity.CourseFile) *CourseFileView {
	view := &CourseFileView{
		ID:             cf.ID,
		CourseFileName: cf.CourseFileName,
		OwnerID:        cf.OwnerID,
		FinalGrades:    cf.FinalGrades,
		SummaryObe:     cf.SummaryObe,
		InsFeedback:    cf.InsFeedback,
		CourseOutline:  cf.CourseOutline,
		Assignment:     cf.Assignment,
		LabExperiment:  cf.LabExperiment,
		MidExams:       []ExamEntryView{},
		QuizExams:      []ExamEntryView{},
		CreatedAt:      cf.CreatedAt,
		UpdatedAt:      cf.UpdatedAt,
	}

	for i := range cf.ExamEntries {
		entry := &cf.ExamEntries[i]
		entryView := ExamEntryView{
			Index:      entry.Index,
			Question:   entry.Question,
			Highest:    entry.Highest,
			Average:    entry.Average,
			Marginal:   entry.Marginal,
			IsComplete: entry.IsComplete(),
		}
		switch entry.Group {
		case entity.ExamGroupMid:
			view.MidExams = append(view.MidExams, entryView)
		case entity.ExamGroupQuiz:
			view.QuizExams = append(view.QuizExams, entryView)
		}
	}

	if cf.FinalExam != nil {
		view.FinalExam = &FinalExamView{
			Question:   cf.FinalExam.Question,
			Highest:    cf.FinalExam.Highest,
			Average:    cf.FinalExam.Average,
			Marginal:   cf.FinalExam.Marginal,
			IsComplete: cf.FinalExam.IsComplete(),
		}
	}

	view.IsCompleted = deriveCompleted(cf)
	return view
}

// deriveCompleted: every single slot filled and the final exam complete.
// Mid/quiz groups are open-ended repeatables and do not gate completeness.
func deriveCompleted(cf *entity.CourseFile) bool {
	singles := []*string{
		cf.FinalGrades,
		cf.SummaryObe,
		cf.InsFeedback,
		cf.CourseOutline,
		cf.Assignment,
		cf.LabExperiment,
	}
	for _, key := range singles {
		if key == nil {
			return false
		}
	}
	return cf.FinalExam != nil && cf.FinalExam.IsComplete()
}
