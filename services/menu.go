package services

import (
	"errors"

	"delivery-backend/apperr"
	"delivery-backend/authz"
	"delivery-backend/models"
	"delivery-backend/pagination"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MenuService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewMenuService(db *gorm.DB, log *zap.Logger) *MenuService {
	return &MenuService{db: db, log: log}
}

type CreateMenuRequest struct {
	StoreID     string `json:"store_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type MenuUpdateRequest struct {
	Name         *string `json:"name"`
	Price        *int64  `json:"price"`
	Description  *string `json:"description"`
	Image        *string `json:"image"`
	PublicStatus *bool   `json:"public_status"`
}

// Create adds a menu to a store. OWNER/MASTER only; the store must exist.
func (s *MenuService) Create(actor authz.Actor, req CreateMenuRequest) (*models.Menu, authz.Decision, error) {
	dec := authz.RequireRole(actor, "메뉴를 생성할 권한이 없습니다.", models.RoleOwner, models.RoleMaster)
	if !dec.Allowed() {
		return nil, dec, nil
	}

	var store models.Store
	if err := s.db.First(&store, "id = ?", req.StoreID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dec, apperr.Validation("존재하지 않는 가게 입니다.")
		}
		return nil, dec, apperr.Internal(err)
	}

	menu := models.Menu{
		StoreID:      store.ID,
		Name:         req.Name,
		Price:        req.Price,
		Description:  req.Description,
		Image:        req.Image,
		PublicStatus: true,
	}
	menu.CreatedBy = actor.Username
	if err := s.db.Create(&menu).Error; err != nil {
		return nil, dec, apperr.Internal(err)
	}
	s.log.Info("menu created", zap.String("menu_id", menu.ID), zap.String("store_id", store.ID))
	return &menu, dec, nil
}

// Update partially merges a menu. OWNER/MASTER only.
func (s *MenuService) Update(actor authz.Actor, id string, req MenuUpdateRequest) (*models.Menu, authz.Decision, error) {
	dec := authz.RequireRole(actor, "메뉴를 수정할 권한이 없습니다.", models.RoleOwner, models.RoleMaster)
	if !dec.Allowed() {
		return nil, dec, nil
	}

	var menu models.Menu
	if err := s.db.First(&menu, "id = ?", id).Error; err != nil {
		return nil, dec, notFoundMenu(err)
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Price != nil {
		menu.Price = *req.Price
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.Image != nil {
		menu.Image = *req.Image
	}
	if req.PublicStatus != nil {
		menu.PublicStatus = *req.PublicStatus
	}
	menu.UpdatedBy = actor.Username

	if err := s.db.Save(&menu).Error; err != nil {
		return nil, dec, apperr.Internal(err)
	}
	s.log.Info("menu updated", zap.String("menu_id", id), zap.String("by", actor.Username))
	return &menu, dec, nil
}

// Delete soft-deletes a menu and additionally flips publicStatus off, so the
// row is invisible even through unscoped reads that only check visibility.
func (s *MenuService) Delete(actor authz.Actor, id string) (authz.Decision, error) {
	dec := authz.RequireRole(actor, "메뉴를 삭제할 권한이 없습니다.", models.RoleOwner, models.RoleMaster)
	if !dec.Allowed() {
		return dec, nil
	}

	var menu models.Menu
	if err := s.db.Unscoped().First(&menu, "id = ?", id).Error; err != nil {
		return dec, notFoundMenu(err)
	}
	if menu.Deleted() {
		return dec, apperr.Conflict("이미 삭제된 메뉴입니다.")
	}

	values := models.SoftDeleteValues(actor.Username)
	values["public_status"] = false
	if err := s.db.Model(&menu).Updates(values).Error; err != nil {
		return dec, apperr.Internal(err)
	}
	s.log.Info("menu deleted", zap.String("menu_id", id), zap.String("by", actor.Username))
	return dec, nil
}

// Get returns one menu. Open to every authenticated role.
func (s *MenuService) Get(id string) (*models.Menu, error) {
	var menu models.Menu
	if err := s.db.First(&menu, "id = ?", id).Error; err != nil {
		return nil, notFoundMenu(err)
	}
	return &menu, nil
}

// Search lists active public menus. The four query shapes are explicit
// branches on storeID/keyword presence:
//
//	storeID absent,  keyword absent  — all menus
//	storeID absent,  keyword present — name-contains across all stores
//	storeID present, keyword absent  — all menus of that store
//	storeID present, keyword present — name-contains scoped to that store
func (s *MenuService) Search(storeID, keyword string, p pagination.Params) ([]models.Menu, int64, error) {
	query := s.db.Model(&models.Menu{}).Where("public_status = ?", true)

	switch {
	case storeID == "" && keyword == "":
		// list-all
	case storeID == "" && keyword != "":
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	case storeID != "" && keyword == "":
		query = query.Where("store_id = ?", storeID)
	default:
		query = query.Where("store_id = ? AND name LIKE ?", storeID, "%"+keyword+"%")
	}

	menus, total, err := pagination.List[models.Menu](query, p)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return menus, total, nil
}

func notFoundMenu(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("존재하지 않는 메뉴입니다.")
	}
	return apperr.Internal(err)
}
