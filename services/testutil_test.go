package services

import (
	"testing"

	"delivery-backend/authz"
	"delivery-backend/config"
	"delivery-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func newTestLogger() *zap.Logger {
	return zap.NewNop()
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Username: username,
		Email:    username + "@test.local",
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func actorFor(user *models.User) authz.Actor {
	return authz.Actor{ID: user.ID, Username: user.Username, Role: user.Role}
}

func createStore(t *testing.T, db *gorm.DB, owner *models.User) *models.Store {
	t.Helper()
	store := models.Store{
		UserID:     owner.ID,
		Name:       "테스트 가게",
		Address:    "서울시 강남구",
		Tel:        "02-1234-5678",
		OpenStatus: true,
		StartTime:  "09:00",
		EndTime:    "21:00",
	}
	require.NoError(t, db.Create(&store).Error)
	return &store
}

func createMenu(t *testing.T, db *gorm.DB, store *models.Store, name string, price int64) *models.Menu {
	t.Helper()
	menu := models.Menu{
		StoreID:      store.ID,
		Name:         name,
		Price:        price,
		PublicStatus: true,
	}
	require.NoError(t, db.Create(&menu).Error)
	return &menu
}

func createCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return &category
}
