package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID   string `json:"id" gorm:"type:uuid;primaryKey"`
	Name string `json:"name" gorm:"not null"`

	Audit
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// StoreCategory joins a Store with one Category. Join rows are diffed on
// store update: rows for categories present both before and after are left
// untouched so their CreatedAt is preserved.
type StoreCategory struct {
	ID         string   `json:"id" gorm:"type:uuid;primaryKey"`
	StoreID    string   `json:"store_id" gorm:"type:uuid;not null;index"`
	CategoryID string   `json:"category_id" gorm:"type:uuid;not null;index"`
	Category   Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`

	Audit
}

func (sc *StoreCategory) BeforeCreate(tx *gorm.DB) error {
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	return nil
}
