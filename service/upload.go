package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/campuskit/course-file-service/entity"
	"github.com/campuskit/course-file-service/infra/produce"
	"github.com/campuskit/course-file-service/slots"
)

// ObjectStore is the storage surface the services need. Implemented by
// infra.MinioClient; failures propagate, retries are the caller's business.
type ObjectStore interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	RemoveByPrefix(ctx context.Context, prefix string) error
	EnsureFolder(ctx context.Context, courseFileName string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// CourseFileStore is the metadata surface backing course-file records.
// Implemented by repository.CourseFileRepository.
type CourseFileStore interface {
	Create(ctx context.Context, cf *entity.CourseFile) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByNameAndOwner(ctx context.Context, ownerID uuid.UUID, name string) (*entity.CourseFile, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.CourseFile, error)
	SetSlotKey(ctx context.Context, id uuid.UUID, field slots.Field, key string) error
}

// ExamStore applies field-scoped upserts against exam children.
// Implemented by repository.ExamRepository.
type ExamStore interface {
	UpsertEntryField(ctx context.Context, courseFileID uuid.UUID, group entity.ExamGroup, index int, sub slots.Subfield, key string) error
	UpsertFinalField(ctx context.Context, courseFileID uuid.UUID, sub slots.Subfield, key string) error
}

// OrphanStore records storage objects whose metadata write failed.
type OrphanStore interface {
	Record(ctx context.Context, orphan *entity.OrphanObject) error
}

// ReconcilePublisher hands orphaned keys to the out-of-process sweep.
type ReconcilePublisher interface {
	PublishOrphanObject(ctx context.Context, msg produce.OrphanObjectMessage) error
}

// TupleResult reports the outcome of one (slot, payload) pair.
type TupleResult struct {
	Field string `json:"field"`
	Slot  string `json:"slot"`
	Key   string `json:"key,omitempty"`
	Code  string `json:"code"`
	Error string `json:"error,omitempty"`
}

// UploadResult summarizes a whole multipart request, per tuple.
type UploadResult struct {
	CourseFileName string        `json:"course_file_name"`
	Results        []TupleResult `json:"results"`
}

// Failed reports whether every tuple failed.
func (r *UploadResult) Failed() bool {
	for _, res := range r.Results {
		if res.Code == CodeStored {
			return false
		}
	}
	return true
}

// UploadService is the single entry point for multipart uploads: it resolves
// the target course file, fans the form out into tuples, writes each payload
// to storage and mirrors the result into metadata. Tuples are independent;
// one failure never aborts its siblings.
type UploadService struct {
	store       ObjectStore
	courseFiles CourseFileStore
	exams       ExamStore
	orphans     OrphanStore
	reconcile   ReconcilePublisher // optional
	maxFileSize int64
}

func NewUploadService(store ObjectStore, courseFiles CourseFileStore, exams ExamStore, orphans OrphanStore, reconcile ReconcilePublisher, maxFileSize int64) *UploadService {
	return &UploadService{
		store:       store,
		courseFiles: courseFiles,
		exams:       exams,
		orphans:     orphans,
		reconcile:   reconcile,
		maxFileSize: maxFileSize,
	}
}

// HandleUpload processes one multipart request against an existing course
// file. The router never creates records; an unknown name is ErrNotFound.
func (s *UploadService) HandleUpload(ctx context.Context, ownerID uuid.UUID, courseFileName string, form *multipart.Form) (*UploadResult, error) {
	cf, err := s.courseFiles.FindByNameAndOwner(ctx, ownerID, courseFileName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, courseFileName)
		}
		return nil, err
	}

	tuples, err := slots.ParseForm(form)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if len(tuples) == 0 {
		return nil, fmt.Errorf("%w: no file uploaded", ErrValidation)
	}

	result := &UploadResult{CourseFileName: courseFileName}
	for _, t := range tuples {
		result.Results = append(result.Results, s.processTuple(ctx, cf, t))
	}
	return result, nil
}

func (s *UploadService) processTuple(ctx context.Context, cf *entity.CourseFile, t slots.Tuple) TupleResult {
	res := TupleResult{Field: t.FieldName, Slot: t.Slot.ID}

	if t.IsText && !t.Slot.AllowsText() {
		res.Code = CodeValidationError
		res.Error = fmt.Sprintf("slot %s does not accept text", t.Slot.ID)
		return res
	}
	contentType := t.ContentType()
	if !t.Slot.Accepts(contentType) {
		res.Code = CodeValidationError
		res.Error = fmt.Sprintf("content type %s not allowed for slot %s", contentType, t.Slot.ID)
		return res
	}
	maxSize := t.Slot.MaxSize
	if s.maxFileSize > 0 && s.maxFileSize < maxSize {
		maxSize = s.maxFileSize
	}
	if t.Size() > maxSize {
		res.Code = CodeValidationError
		res.Error = fmt.Sprintf("payload exceeds %d bytes for slot %s", maxSize, t.Slot.ID)
		return res
	}

	key := t.ObjectKey(cf.CourseFileName)

	reader, size, cleanup, err := tupleReader(t)
	if err != nil {
		res.Code = CodeValidationError
		res.Error = "unreadable file part: " + err.Error()
		return res
	}
	defer cleanup()

	// A re-upload may switch extension (pdf <-> promoted txt); sweep the
	// slot's base name first so exactly one object remains per slot.
	if t.Slot.Kind == slots.KindSingle || t.Slot.Kind == slots.KindSingleOrText {
		base := fmt.Sprintf("%s/%s.%s.", cf.CourseFileName, cf.CourseFileName, t.Slot.ID)
		_ = s.store.RemoveByPrefix(ctx, base)
	}

	if err := s.store.Put(ctx, key, reader, size, contentType); err != nil {
		res.Code = CodeStorageWriteFailed
		res.Error = err.Error()
		return res
	}

	// The storage write is committed before metadata is touched, so metadata
	// never references a key that was never written.
	if err := s.applyMetadata(ctx, cf.ID, t, key); err != nil {
		s.recordOrphan(ctx, cf.ID, key, t, err)
		res.Key = key
		res.Code = CodeMetadataWriteFailed
		res.Error = err.Error()
		return res
	}

	res.Key = key
	res.Code = CodeStored
	return res
}

// applyMetadata dispatches over the closed set of slot kinds.
func (s *UploadService) applyMetadata(ctx context.Context, courseFileID uuid.UUID, t slots.Tuple, key string) error {
	switch t.Slot.Kind {
	case slots.KindSingle, slots.KindSingleOrText:
		return s.courseFiles.SetSlotKey(ctx, courseFileID, t.Slot.Field, key)
	case slots.KindDynamicGroup:
		group, err := examGroup(t.Slot.Group)
		if err != nil {
			return err
		}
		return s.exams.UpsertEntryField(ctx, courseFileID, group, t.Index, t.Subfield, key)
	case slots.KindFinalGroup:
		return s.exams.UpsertFinalField(ctx, courseFileID, t.Subfield, key)
	default:
		return fmt.Errorf("unhandled slot kind %d", t.Slot.Kind)
	}
}

// recordOrphan logs the storage/metadata divergence for reconciliation.
// Best-effort on both sides; the tuple already carries the failure code.
func (s *UploadService) recordOrphan(ctx context.Context, courseFileID uuid.UUID, key string, t slots.Tuple, cause error) {
	detail, _ := json.Marshal(map[string]interface{}{
		"slot":     t.Slot.ID,
		"field":    t.FieldName,
		"index":    t.Index,
		"subfield": string(t.Subfield),
		"error":    cause.Error(),
	})

	if s.orphans != nil {
		_ = s.orphans.Record(ctx, &entity.OrphanObject{
			ID:           uuid.New(),
			CourseFileID: courseFileID,
			StorageKey:   key,
			Reason:       "metadata write failed after storage write",
			Detail:       datatypes.JSON(detail),
		})
	}
	if s.reconcile != nil {
		_ = s.reconcile.PublishOrphanObject(ctx, produce.OrphanObjectMessage{
			CourseFileID: courseFileID.String(),
			StorageKey:   key,
			Slot:         t.Slot.ID,
			Reason:       cause.Error(),
			Timestamp:    time.Now().Unix(),
		})
	}
}

func tupleReader(t slots.Tuple) (io.Reader, int64, func(), error) {
	if t.IsText {
		return strings.NewReader(t.Text), int64(len(t.Text)), func() {}, nil
	}
	f, err := t.File.Open()
	if err != nil {
		return nil, 0, func() {}, err
	}
	return f, t.File.Size, func() { _ = f.Close() }, nil
}

func examGroup(g slots.Group) (entity.ExamGroup, error) {
	switch g {
	case slots.GroupMid:
		return entity.ExamGroupMid, nil
	case slots.GroupQuiz:
		return entity.ExamGroupQuiz, nil
	default:
		return "", fmt.Errorf("group %q is not a dynamic exam group", g)
	}
}
