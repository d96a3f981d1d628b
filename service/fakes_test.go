package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuskit/course-file-service/entity"
	"github.com/campuskit/course-file-service/infra/produce"
	"github.com/campuskit/course-file-service/slots"
)

type putCall struct {
	Key         string
	ContentType string
	Body        string
	Size        int64
}

type fakeObjectStore struct {
	mu        sync.Mutex
	puts      []putCall
	removed   []string
	folders   []string
	presigned []string

	putErr     error
	folderErr  error
	presignErr error
}

func (f *fakeObjectStore) Put(_ context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.puts = append(f.puts, putCall{Key: key, ContentType: contentType, Body: string(body), Size: size})
	f.mu.Unlock()
	return nil
}

func (f *fakeObjectStore) RemoveByPrefix(_ context.Context, prefix string) error {
	f.mu.Lock()
	f.removed = append(f.removed, prefix)
	f.mu.Unlock()
	return nil
}

func (f *fakeObjectStore) EnsureFolder(_ context.Context, courseFileName string) error {
	if f.folderErr != nil {
		return f.folderErr
	}
	f.mu.Lock()
	f.folders = append(f.folders, courseFileName)
	f.mu.Unlock()
	return nil
}

func (f *fakeObjectStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	f.mu.Lock()
	f.presigned = append(f.presigned, key)
	n := len(f.presigned)
	f.mu.Unlock()
	return fmt.Sprintf("https://minio.local/%s?sig=%d", key, n), nil
}

type slotKeyCall struct {
	ID    uuid.UUID
	Field slots.Field
	Key   string
}

type fakeCourseFileStore struct {
	files map[string]*entity.CourseFile

	created  []*entity.CourseFile
	deleted  []uuid.UUID
	slotKeys []slotKeyCall

	createErr  error
	slotKeyErr error
}

func newFakeCourseFileStore() *fakeCourseFileStore {
	return &fakeCourseFileStore{files: make(map[string]*entity.CourseFile)}
}

func (f *fakeCourseFileStore) key(ownerID uuid.UUID, name string) string {
	return ownerID.String() + "/" + name
}

func (f *fakeCourseFileStore) Create(_ context.Context, cf *entity.CourseFile) error {
	if f.createErr != nil {
		return f.createErr
	}
	k := f.key(cf.OwnerID, cf.CourseFileName)
	if _, exists := f.files[k]; exists {
		return gorm.ErrDuplicatedKey
	}
	f.files[k] = cf
	f.created = append(f.created, cf)
	return nil
}

func (f *fakeCourseFileStore) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	for k, cf := range f.files {
		if cf.ID == id {
			delete(f.files, k)
		}
	}
	return nil
}

func (f *fakeCourseFileStore) FindByNameAndOwner(_ context.Context, ownerID uuid.UUID, name string) (*entity.CourseFile, error) {
	cf, ok := f.files[f.key(ownerID, name)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cf, nil
}

func (f *fakeCourseFileStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]entity.CourseFile, error) {
	var out []entity.CourseFile
	for _, cf := range f.files {
		if cf.OwnerID == ownerID {
			out = append(out, *cf)
		}
	}
	return out, nil
}

func (f *fakeCourseFileStore) SetSlotKey(_ context.Context, id uuid.UUID, field slots.Field, key string) error {
	if f.slotKeyErr != nil {
		return f.slotKeyErr
	}
	f.slotKeys = append(f.slotKeys, slotKeyCall{ID: id, Field: field, Key: key})
	return nil
}

type entryUpsert struct {
	CourseFileID uuid.UUID
	Group        entity.ExamGroup
	Index        int
	Subfield     slots.Subfield
	Key          string
}

type finalUpsert struct {
	CourseFileID uuid.UUID
	Subfield     slots.Subfield
	Key          string
}

type fakeExamStore struct {
	entries []entryUpsert
	finals  []finalUpsert

	entryErr error
	finalErr error
}

func (f *fakeExamStore) UpsertEntryField(_ context.Context, courseFileID uuid.UUID, group entity.ExamGroup, index int, sub slots.Subfield, key string) error {
	if f.entryErr != nil {
		return f.entryErr
	}
	f.entries = append(f.entries, entryUpsert{CourseFileID: courseFileID, Group: group, Index: index, Subfield: sub, Key: key})
	return nil
}

func (f *fakeExamStore) UpsertFinalField(_ context.Context, courseFileID uuid.UUID, sub slots.Subfield, key string) error {
	if f.finalErr != nil {
		return f.finalErr
	}
	f.finals = append(f.finals, finalUpsert{CourseFileID: courseFileID, Subfield: sub, Key: key})
	return nil
}

type fakeOrphanStore struct {
	recorded []*entity.OrphanObject
}

func (f *fakeOrphanStore) Record(_ context.Context, orphan *entity.OrphanObject) error {
	f.recorded = append(f.recorded, orphan)
	return nil
}

type fakeReconcilePublisher struct {
	published []produce.OrphanObjectMessage
}

func (f *fakeReconcilePublisher) PublishOrphanObject(_ context.Context, msg produce.OrphanObjectMessage) error {
	f.published = append(f.published, msg)
	return nil
}
