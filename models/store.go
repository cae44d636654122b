package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	ID         string `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uint   `json:"owner_id" gorm:"not null"`
	User       User   `json:"owner,omitempty" gorm:"foreignKey:UserID"`
	Name       string `json:"name" gorm:"not null"`
	Address    string `json:"address"`
	Tel        string `json:"tel"`
	OpenStatus bool   `json:"open_status" gorm:"default:true"`
	StartTime  string `json:"start_time"` // HH:MM
	EndTime    string `json:"end_time"`   // HH:MM

	StoreCategories []StoreCategory `json:"store_categories,omitempty" gorm:"foreignKey:StoreID"`
	Menus           []Menu          `json:"menus,omitempty" gorm:"foreignKey:StoreID"`

	Audit
}

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// CategoryIDs returns the ids of the store's attached categories.
func (s *Store) CategoryIDs() []string {
	ids := make([]string, 0, len(s.StoreCategories))
	for _, sc := range s.StoreCategories {
		ids = append(ids, sc.CategoryID)
	}
	return ids
}
