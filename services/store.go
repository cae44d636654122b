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

type StoreService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStoreService(db *gorm.DB, log *zap.Logger) *StoreService {
	return &StoreService{db: db, log: log}
}

type StoreRequest struct {
	Name        string   `json:"name" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	Tel         string   `json:"tel"`
	OpenStatus  bool     `json:"open_status"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	CategoryIDs []string `json:"category_ids"`
}

type StoreUpdateRequest struct {
	Name        *string   `json:"name"`
	Address     *string   `json:"address"`
	Tel         *string   `json:"tel"`
	OpenStatus  *bool     `json:"open_status"`
	StartTime   *string   `json:"start_time"`
	EndTime     *string   `json:"end_time"`
	CategoryIDs *[]string `json:"category_ids"` // nil leaves categories untouched
}

// Create registers a store owned by the acting user. Every requested category
// id must exist; an unknown id aborts the whole creation.
func (s *StoreService) Create(actor authz.Actor, req StoreRequest) (*models.Store, authz.Decision, error) {
	dec := authz.RequireRole(actor, "가게를 등록할 권한이 없습니다.", models.RoleOwner, models.RoleMaster)
	if !dec.Allowed() {
		return nil, dec, nil
	}

	var user models.User
	if err := s.db.Where("username = ?", actor.Username).First(&user).Error; err != nil {
		return nil, dec, apperr.Validation("유효하지 않은 사용자 ID입니다.")
	}

	store := models.Store{
		UserID:     user.ID,
		Name:       req.Name,
		Address:    req.Address,
		Tel:        req.Tel,
		OpenStatus: req.OpenStatus,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}
	store.CreatedBy = actor.Username

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&store).Error; err != nil {
			return apperr.Internal(err)
		}
		for _, categoryID := range req.CategoryIDs {
			var category models.Category
			if err := tx.First(&category, "id = ?", categoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.Validation("유효하지 않은 카테고리 ID: " + categoryID)
				}
				return apperr.Internal(err)
			}
			sc := models.StoreCategory{StoreID: store.ID, CategoryID: category.ID}
			sc.CreatedBy = actor.Username
			if err := tx.Create(&sc).Error; err != nil {
				return apperr.Internal(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, dec, err
	}

	s.log.Info("store created", zap.String("store_id", store.ID), zap.Uint("owner_id", user.ID))
	return &store, dec, nil
}

// Update merges store fields and reconciles the category set. Only the
// symmetric difference is touched: removed categories are deleted, added ones
// inserted, and join rows for categories kept in both sets are preserved
// along with their creation timestamps.
func (s *StoreService) Update(actor authz.Actor, id string, req StoreUpdateRequest) (*models.Store, authz.Decision, error) {
	dec := authz.RequireRole(actor, "가게를 수정할 권한이 없습니다.", models.RoleOwner, models.RoleMaster)
	if !dec.Allowed() {
		return nil, dec, nil
	}

	var store models.Store
	if err := s.db.Preload("StoreCategories").First(&store, "id = ?", id).Error; err != nil {
		return nil, dec, notFoundStore(err)
	}

	if req.Name != nil {
		store.Name = *req.Name
	}
	if req.Address != nil {
		store.Address = *req.Address
	}
	if req.Tel != nil {
		store.Tel = *req.Tel
	}
	if req.OpenStatus != nil {
		store.OpenStatus = *req.OpenStatus
	}
	if req.StartTime != nil {
		store.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		store.EndTime = *req.EndTime
	}
	store.UpdatedBy = actor.Username

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("StoreCategories").Save(&store).Error; err != nil {
			return apperr.Internal(err)
		}
		if req.CategoryIDs == nil {
			return nil
		}

		existing := make(map[string]models.StoreCategory, len(store.StoreCategories))
		for _, sc := range store.StoreCategories {
			existing[sc.CategoryID] = sc
		}
		desired := make(map[string]bool, len(*req.CategoryIDs))
		for _, categoryID := range *req.CategoryIDs {
			desired[categoryID] = true
		}

		// delete E\N
		for categoryID, sc := range existing {
			if desired[categoryID] {
				continue
			}
			if err := tx.Model(&models.StoreCategory{}).Where("id = ?", sc.ID).
				Updates(models.SoftDeleteValues(actor.Username)).Error; err != nil {
				return apperr.Internal(err)
			}
		}
		// insert N\E; E∩N is never touched
		for _, categoryID := range *req.CategoryIDs {
			if _, ok := existing[categoryID]; ok {
				continue
			}
			var category models.Category
			if err := tx.First(&category, "id = ?", categoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.Validation("유효하지 않은 카테고리 ID: " + categoryID)
				}
				return apperr.Internal(err)
			}
			sc := models.StoreCategory{StoreID: store.ID, CategoryID: category.ID}
			sc.CreatedBy = actor.Username
			if err := tx.Create(&sc).Error; err != nil {
				return apperr.Internal(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, dec, err
	}

	s.log.Info("store updated", zap.String("store_id", id), zap.String("by", actor.Username))
	return &store, dec, nil
}

// Delete soft-deletes a store.
func (s *StoreService) Delete(actor authz.Actor, id string) (authz.Decision, error) {
	dec := authz.RequireRole(actor, "가게를 삭제할 권한이 없습니다.", models.RoleOwner, models.RoleMaster)
	if !dec.Allowed() {
		return dec, nil
	}

	var store models.Store
	if err := s.db.Unscoped().First(&store, "id = ?", id).Error; err != nil {
		return dec, notFoundStore(err)
	}
	if store.Deleted() {
		return dec, apperr.Conflict("이미 삭제된 가게입니다.")
	}

	if err := s.db.Model(&store).Updates(models.SoftDeleteValues(actor.Username)).Error; err != nil {
		return dec, apperr.Internal(err)
	}
	s.log.Info("store deleted", zap.String("store_id", id), zap.String("by", actor.Username))
	return dec, nil
}

// GetAll returns a page of stores with their categories preloaded.
func (s *StoreService) GetAll(p pagination.Params) ([]models.Store, int64, error) {
	query := s.db.Model(&models.Store{}).Preload("StoreCategories.Category")
	stores, total, err := pagination.List[models.Store](query, p)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return stores, total, nil
}

// Get returns one store with categories and menus.
func (s *StoreService) Get(id string) (*models.Store, error) {
	var store models.Store
	err := s.db.Preload("StoreCategories.Category").Preload("Menus").First(&store, "id = ?", id).Error
	if err != nil {
		return nil, notFoundStore(err)
	}
	return &store, nil
}

// Search filters stores by name substring and/or category name.
func (s *StoreService) Search(name, categoryName string, p pagination.Params) ([]models.Store, int64, error) {
	query := s.db.Model(&models.Store{}).Preload("StoreCategories.Category")
	if name != "" {
		query = query.Where("stores.name LIKE ?", "%"+name+"%")
	}
	if categoryName != "" {
		query = query.
			Joins("JOIN store_categories ON store_categories.store_id = stores.id AND store_categories.deleted_at IS NULL").
			Joins("JOIN categories ON categories.id = store_categories.category_id").
			Where("categories.name = ?", categoryName).
			// dedupe join rows; sqlite cannot COUNT(DISTINCT stores.*)
			Group("stores.id")
	}
	stores, total, err := pagination.ListTable[models.Store](query, p, "stores")
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return stores, total, nil
}

func notFoundStore(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("유효하지 않은 가게 ID입니다.")
	}
	return apperr.Internal(err)
}
