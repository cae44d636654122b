package services

import (
	"errors"

	"delivery-backend/apperr"
	"delivery-backend/authz"
	"delivery-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AddressService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAddressService(db *gorm.DB, log *zap.Logger) *AddressService {
	return &AddressService{db: db, log: log}
}

type AddressRequest struct {
	Address string `json:"address" binding:"required"`
	Request string `json:"request"`
}

type AddressUpdateRequest struct {
	Address string `json:"address" binding:"required"`
}

// Create adds a delivery address for the acting customer. A duplicate address
// string is rejected regardless of count, and a user holds at most three
// active addresses.
func (s *AddressService) Create(actor authz.Actor, req AddressRequest) (*models.DeliveryAddress, authz.Decision, error) {
	dec := authz.RequireRole(actor, "배송지를 등록할 권한이 없습니다.", models.RoleCustomer)
	if !dec.Allowed() {
		return nil, dec, nil
	}

	var existing []models.DeliveryAddress
	if err := s.db.Where("user_id = ?", actor.ID).Find(&existing).Error; err != nil {
		return nil, dec, apperr.Internal(err)
	}
	for _, addr := range existing {
		if addr.Address == req.Address {
			return nil, dec, apperr.Validation("이미 존재하는 배송지입니다.")
		}
	}
	if len(existing) >= models.MaxDeliveryAddresses {
		return nil, dec, apperr.Validation("최대 배송지는 3개입니다.")
	}

	address := models.DeliveryAddress{
		UserID:  actor.ID,
		Address: req.Address,
		Request: req.Request,
	}
	address.CreatedBy = actor.Username
	if err := s.db.Create(&address).Error; err != nil {
		return nil, dec, apperr.Internal(err)
	}
	s.log.Info("delivery address created", zap.String("address_id", address.ID), zap.Uint("user_id", actor.ID))
	return &address, dec, nil
}

// Get returns one of the acting customer's addresses.
func (s *AddressService) Get(actor authz.Actor, id string) (*models.DeliveryAddress, authz.Decision, error) {
	var address models.DeliveryAddress
	if err := s.db.First(&address, "id = ?", id).Error; err != nil {
		return nil, authz.Allow(), notFoundAddress(err)
	}
	dec := s.ownedByCustomer(actor, &address)
	if !dec.Allowed() {
		return nil, dec, nil
	}
	return &address, dec, nil
}

// List returns all active addresses of the acting customer.
func (s *AddressService) List(actor authz.Actor) ([]models.DeliveryAddress, authz.Decision, error) {
	dec := authz.RequireRole(actor, "배송지를 조회할 권한이 없습니다.", models.RoleCustomer)
	if !dec.Allowed() {
		return nil, dec, nil
	}
	var addresses []models.DeliveryAddress
	if err := s.db.Where("user_id = ?", actor.ID).Order("created_at desc").Find(&addresses).Error; err != nil {
		return nil, dec, apperr.Internal(err)
	}
	return addresses, dec, nil
}

// Update replaces the address string; updating to the identical string is a
// rejected no-op.
func (s *AddressService) Update(actor authz.Actor, id string, req AddressUpdateRequest) (*models.DeliveryAddress, authz.Decision, error) {
	var address models.DeliveryAddress
	if err := s.db.First(&address, "id = ?", id).Error; err != nil {
		return nil, authz.Allow(), notFoundAddress(err)
	}
	dec := s.ownedByCustomer(actor, &address)
	if !dec.Allowed() {
		return nil, dec, nil
	}

	if address.Address == req.Address {
		return nil, dec, apperr.Validation("수정할 배송지와 기존 배송지가 같습니다.")
	}

	address.Address = req.Address
	address.UpdatedBy = actor.Username
	if err := s.db.Save(&address).Error; err != nil {
		return nil, dec, apperr.Internal(err)
	}
	s.log.Info("delivery address updated", zap.String("address_id", id), zap.String("by", actor.Username))
	return &address, dec, nil
}

// Delete soft-deletes an address; second delete conflicts.
func (s *AddressService) Delete(actor authz.Actor, id string) (authz.Decision, error) {
	var address models.DeliveryAddress
	if err := s.db.Unscoped().First(&address, "id = ?", id).Error; err != nil {
		return authz.Allow(), notFoundAddress(err)
	}
	dec := s.ownedByCustomer(actor, &address)
	if !dec.Allowed() {
		return dec, nil
	}
	if address.Deleted() {
		return dec, apperr.Conflict("이미 삭제된 배송지입니다.")
	}

	if err := s.db.Model(&address).Updates(models.SoftDeleteValues(actor.Username)).Error; err != nil {
		return dec, apperr.Internal(err)
	}
	s.log.Info("delivery address deleted", zap.String("address_id", id), zap.String("by", actor.Username))
	return dec, nil
}

func (s *AddressService) ownedByCustomer(actor authz.Actor, address *models.DeliveryAddress) authz.Decision {
	if address.UserID != actor.ID || actor.Role != models.RoleCustomer {
		return authz.Deny("계정 정보가 다르거나 존재하지 않는 권한입니다.")
	}
	return authz.Allow()
}

func notFoundAddress(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("해당되는 배송지가 없습니다.")
	}
	return apperr.Internal(err)
}
