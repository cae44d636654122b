package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxDeliveryAddresses caps active addresses per user.
const MaxDeliveryAddresses = 3

type DeliveryAddress struct {
	ID      string `json:"id" gorm:"type:uuid;primaryKey"`
	UserID  uint   `json:"user_id" gorm:"not null;index"`
	User    User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Address string `json:"address" gorm:"not null"`
	Request string `json:"request"` // delivery instructions

	Audit
}

func (d *DeliveryAddress) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
