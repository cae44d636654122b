package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID       string  `json:"id" gorm:"type:uuid;primaryKey"`
	StoreID  string  `json:"store_id" gorm:"type:uuid;not null;index"`
	Store    Store   `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	UserID   uint    `json:"user_id" gorm:"not null;index"`
	User     User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	OrderID  *string `json:"order_id,omitempty" gorm:"type:uuid"`
	Score    int     `json:"score" gorm:"not null"`
	Contents string  `json:"contents"`

	Audit
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
