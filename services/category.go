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

type CategoryService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCategoryService(db *gorm.DB, log *zap.Logger) *CategoryService {
	return &CategoryService{db: db, log: log}
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create adds a category tag. MANAGER/MASTER only; names are unique among
// active categories.
func (s *CategoryService) Create(actor authz.Actor, req CategoryRequest) (*models.Category, authz.Decision, error) {
	dec := authz.RequireRole(actor, "카테고리를 등록할 권한이 없습니다.", models.RoleManager, models.RoleMaster)
	if !dec.Allowed() {
		return nil, dec, nil
	}

	var existing models.Category
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, dec, apperr.Validation("이미 존재하는 카테고리입니다.")
	}

	category := models.Category{Name: req.Name}
	category.CreatedBy = actor.Username
	if err := s.db.Create(&category).Error; err != nil {
		return nil, dec, apperr.Internal(err)
	}
	s.log.Info("category created", zap.String("category_id", category.ID), zap.String("name", req.Name))
	return &category, dec, nil
}

// Update renames a category. MANAGER/MASTER only.
func (s *CategoryService) Update(actor authz.Actor, id string, req CategoryRequest) (*models.Category, authz.Decision, error) {
	dec := authz.RequireRole(actor, "카테고리를 수정할 권한이 없습니다.", models.RoleManager, models.RoleMaster)
	if !dec.Allowed() {
		return nil, dec, nil
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, dec, notFoundCategory(err)
	}

	var existing models.Category
	if err := s.db.Where("name = ? AND id <> ?", req.Name, id).First(&existing).Error; err == nil {
		return nil, dec, apperr.Validation("이미 존재하는 카테고리입니다.")
	}

	category.Name = req.Name
	category.UpdatedBy = actor.Username
	if err := s.db.Save(&category).Error; err != nil {
		return nil, dec, apperr.Internal(err)
	}
	return &category, dec, nil
}

// List returns a page of categories; open to every authenticated role.
func (s *CategoryService) List(p pagination.Params) ([]models.Category, int64, error) {
	categories, total, err := pagination.List[models.Category](s.db.Model(&models.Category{}), p)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return categories, total, nil
}

// Delete soft-deletes a category. MASTER only.
func (s *CategoryService) Delete(actor authz.Actor, id string) (authz.Decision, error) {
	dec := authz.RequireRole(actor, "카테고리를 삭제할 권한이 없습니다.", models.RoleMaster)
	if !dec.Allowed() {
		return dec, nil
	}

	var category models.Category
	if err := s.db.Unscoped().First(&category, "id = ?", id).Error; err != nil {
		return dec, notFoundCategory(err)
	}
	if category.Deleted() {
		return dec, apperr.Conflict("이미 삭제된 카테고리입니다.")
	}

	if err := s.db.Model(&category).Updates(models.SoftDeleteValues(actor.Username)).Error; err != nil {
		return dec, apperr.Internal(err)
	}
	return dec, nil
}

func notFoundCategory(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("유효하지 않은 카테고리 ID입니다.")
	}
	return apperr.Internal(err)
}
