package services

import (
	"errors"
	"strings"

	"delivery-backend/apperr"
	"delivery-backend/authz"
	"delivery-backend/models"
	"delivery-backend/pagination"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenIssuer issues a signed bearer token for a user.
type TokenIssuer interface {
	GenerateToken(user *models.User) (string, error)
}

type UserService struct {
	db         *gorm.DB
	log        *zap.Logger
	tokens     TokenIssuer
	adminToken string
}

func NewUserService(db *gorm.DB, log *zap.Logger, tokens TokenIssuer, adminToken string) *UserService {
	return &UserService{db: db, log: log, tokens: tokens, adminToken: adminToken}
}

type SignUpRequest struct {
	Username   string      `json:"username" binding:"required"`
	Email      string      `json:"email" binding:"required,email"`
	Password   string      `json:"password" binding:"required,min=6"`
	Role       models.Role `json:"role" binding:"required"`
	AdminToken string      `json:"admin_token"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserUpdateRequest struct {
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password"`
}

// SignUp registers a new user. MANAGER/MASTER roles additionally require the
// configured admin token; this is the sole gate for administrative signups.
func (s *UserService) SignUp(req SignUpRequest) (*models.User, error) {
	if !req.Role.Valid() {
		return nil, apperr.Validation("유효하지 않은 권한입니다.")
	}

	var existing models.User
	if err := s.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, apperr.Validation("중복된 사용자가 존재합니다.")
	}
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, apperr.Validation("중복된 Email 입니다.")
	}

	if req.Role.Admin() && req.AdminToken != s.adminToken {
		return nil, apperr.Validation("관리자 암호가 틀려 등록이 불가능합니다.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Role:     req.Role,
	}
	user.CreatedBy = req.Username
	if err := s.db.Create(&user).Error; err != nil {
		// The existence checks above are best-effort; the unique index is
		// the authoritative duplicate arbiter under concurrent signups.
		if isUniqueViolation(err, "users.username") {
			return nil, apperr.Validation("중복된 사용자가 존재합니다.")
		}
		if isUniqueViolation(err, "users.email") {
			return nil, apperr.Validation("중복된 Email 입니다.")
		}
		return nil, apperr.Internal(err)
	}

	s.log.Info("user signed up", zap.Uint("user_id", user.ID), zap.String("role", string(user.Role)))
	return &user, nil
}

// SignIn authenticates by email and password and returns a bearer token.
func (s *UserService) SignIn(req SignInRequest) (string, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return "", nil, apperr.Validation("등록된 사용자가 없습니다.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, apperr.Validation("비밀번호가 일치하지 않습니다.")
	}
	token, err := s.tokens.GenerateToken(&user)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}
	return token, &user, nil
}

// Get returns a user; allowed for the user themselves or MANAGER/MASTER.
func (s *UserService) Get(actor authz.Actor, id uint) (*models.User, authz.Decision, error) {
	dec := authz.RequireOwnerOr(actor, id, "접근 권한이 없습니다.", models.RoleManager, models.RoleMaster)
	if !dec.Allowed() {
		return nil, dec, nil
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, dec, s.notFoundUser(err)
	}
	return &user, dec, nil
}

// Update partially merges username/email/password. Beyond the self-or-admin
// gate, a strictly higher-ranked target blocks the mutation: a MANAGER cannot
// edit a MASTER regardless of payload.
func (s *UserService) Update(actor authz.Actor, id uint, req UserUpdateRequest) (*models.User, authz.Decision, error) {
	dec := authz.RequireOwnerOr(actor, id, "접근 권한이 없습니다.", models.RoleManager, models.RoleMaster)
	if !dec.Allowed() {
		return nil, dec, nil
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, dec, s.notFoundUser(err)
	}

	if rank := authz.RequireRankOver(actor, user.ID, user.Role, "권한이 부족합니다."); !rank.Allowed() {
		return nil, rank, nil
	}

	if req.Username != nil && *req.Username != user.Username {
		var existing models.User
		if err := s.db.Where("username = ?", *req.Username).First(&existing).Error; err == nil {
			return nil, dec, apperr.Validation("중복된 사용자가 존재합니다.")
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		var existing models.User
		if err := s.db.Where("email = ?", *req.Email).First(&existing).Error; err == nil {
			return nil, dec, apperr.Validation("중복된 Email 입니다.")
		}
		user.Email = *req.Email
	}
	if req.NewPassword != nil {
		if req.CurrentPassword == nil {
			return nil, dec, apperr.Validation("현재 비밀번호를 입력해주세요.")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*req.CurrentPassword)); err != nil {
			return nil, dec, apperr.Validation("비밀번호가 일치하지 않습니다.")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, dec, apperr.Internal(err)
		}
		user.Password = string(hash)
	}

	user.UpdatedBy = actor.Username
	if err := s.db.Save(&user).Error; err != nil {
		if isUniqueViolation(err, "users.username") {
			return nil, dec, apperr.Validation("중복된 사용자가 존재합니다.")
		}
		if isUniqueViolation(err, "users.email") {
			return nil, dec, apperr.Validation("중복된 Email 입니다.")
		}
		return nil, dec, apperr.Internal(err)
	}
	s.log.Info("user updated", zap.Uint("user_id", user.ID), zap.String("by", actor.Username))
	return &user, dec, nil
}

// Delete soft-deletes a user. Stricter than Update: only the user themselves
// or MASTER may delete.
func (s *UserService) Delete(actor authz.Actor, id uint) (authz.Decision, error) {
	dec := authz.RequireOwnerOr(actor, id, "접근 권한이 없습니다.", models.RoleMaster)
	if !dec.Allowed() {
		return dec, nil
	}

	var user models.User
	if err := s.db.Unscoped().First(&user, id).Error; err != nil {
		return dec, s.notFoundUser(err)
	}
	if user.Deleted() {
		return dec, apperr.Conflict("이미 탈퇴한 사용자입니다.")
	}

	if err := s.db.Model(&user).Updates(models.SoftDeleteValues(actor.Username)).Error; err != nil {
		return dec, apperr.Internal(err)
	}
	s.log.Info("user deleted", zap.Uint("user_id", id), zap.String("by", actor.Username))
	return dec, nil
}

// Search lists users for administrators, optionally filtered by username
// substring.
func (s *UserService) Search(actor authz.Actor, p pagination.Params, username string) ([]models.User, int64, authz.Decision, error) {
	dec := authz.RequireRole(actor, "접근 권한이 없습니다.", models.RoleManager, models.RoleMaster)
	if !dec.Allowed() {
		return nil, 0, dec, nil
	}

	query := s.db.Model(&models.User{})
	if username != "" {
		query = query.Where("username LIKE ?", "%"+username+"%")
	}
	users, total, err := pagination.List[models.User](query, p)
	if err != nil {
		return nil, 0, dec, apperr.Internal(err)
	}
	return users, total, dec, nil
}

func (s *UserService) notFoundUser(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("등록된 사용자가 없습니다.")
	}
	return apperr.Internal(err)
}

// isUniqueViolation matches sqlite's unique-index failure for a column.
func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}
