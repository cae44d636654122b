package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is one-to-one with Order and read-only after creation.
type Payment struct {
	ID         string `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID    string `json:"order_id" gorm:"type:uuid;not null;uniqueIndex"`
	CardNumber string `json:"card_number" gorm:"not null"` // masked, e.g. ****-****-****-1234
	Success    bool   `json:"success"`

	Audit
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// MaskCard keeps only the last four digits of a card number.
func MaskCard(number string) string {
	digits := make([]byte, 0, len(number))
	for i := 0; i < len(number); i++ {
		if number[i] >= '0' && number[i] <= '9' {
			digits = append(digits, number[i])
		}
	}
	if len(digits) <= 4 {
		return string(digits)
	}
	return "****-****-****-" + string(digits[len(digits)-4:])
}
