package models

import (
	"time"

	"gorm.io/gorm"
)

// Audit is the common audit envelope carried by every entity. DeletedAt uses
// gorm's soft-delete type, so active-record filtering (deleted_at IS NULL) is
// applied by every default query without per-call predicates.
type Audit struct {
	CreatedAt time.Time      `json:"created_at"`
	CreatedBy string         `json:"created_by,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
	UpdatedBy string         `json:"updated_by,omitempty"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	DeletedBy string         `json:"-"`
}

// Deleted reports whether the record has been soft-deleted.
func (a Audit) Deleted() bool {
	return a.DeletedAt.Valid
}

// SoftDeleteValues returns the column updates for a soft delete performed by
// the given actor. The deletion timestamp is written exactly once; callers
// must reject a second delete before applying these.
func SoftDeleteValues(by string) map[string]interface{} {
	return map[string]interface{}{
		"deleted_at": time.Now(),
		"deleted_by": by,
	}
}
