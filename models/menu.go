package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Menu struct {
	ID           string `json:"id" gorm:"type:uuid;primaryKey"`
	StoreID      string `json:"store_id" gorm:"type:uuid;not null;index"`
	Store        Store  `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	Name         string `json:"name" gorm:"not null"`
	Price        int64  `json:"price" gorm:"not null"` // integer currency unit (won)
	Description  string `json:"description"`
	Image        string `json:"image"`
	PublicStatus bool   `json:"public_status" gorm:"default:true"`

	Audit
}

func (m *Menu) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
