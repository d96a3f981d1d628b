package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrphanObject records a storage object whose metadata write failed, so a
// reconciliation sweep can re-link or remove it. The upload itself already
// succeeded; this row is the audit trail for the inconsistency window.
type OrphanObject struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	CourseFileID uuid.UUID      `json:"course_file_id" gorm:"type:uuid;not null;index"`
	StorageKey   string         `json:"storage_key" gorm:"type:varchar(1024);not null"`
	Reason       string         `json:"reason" gorm:"type:varchar(512);not null"`
	Detail       datatypes.JSON `json:"detail" gorm:"type:jsonb"`
	Resolved     bool           `json:"resolved" gorm:"not null;default:false"`
	CreatedAt    time.Time      `json:"created_at" gorm:"not null;autoCreateTime"`
}
