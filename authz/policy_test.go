package authz

import (
	"testing"

	"delivery-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestRequireRole(t *testing.T) {
	customer := Actor{ID: 1, Username: "a", Role: models.RoleCustomer}
	master := Actor{ID: 2, Username: "b", Role: models.RoleMaster}

	dec := RequireRole(customer, "denied", models.RoleManager, models.RoleMaster)
	assert.False(t, dec.Allowed())
	assert.Equal(t, "denied", dec.Reason())

	dec = RequireRole(master, "denied", models.RoleManager, models.RoleMaster)
	assert.True(t, dec.Allowed())
	assert.Empty(t, dec.Reason())
}

func TestRequireOwnerOr(t *testing.T) {
	owner := Actor{ID: 7, Role: models.RoleCustomer}
	stranger := Actor{ID: 8, Role: models.RoleCustomer}
	manager := Actor{ID: 9, Role: models.RoleManager}

	assert.True(t, RequireOwnerOr(owner, 7, "denied", models.RoleManager).Allowed())
	assert.False(t, RequireOwnerOr(stranger, 7, "denied", models.RoleManager).Allowed())
	assert.True(t, RequireOwnerOr(manager, 7, "denied", models.RoleManager).Allowed())
}

func TestRequireRankOver(t *testing.T) {
	manager := Actor{ID: 1, Role: models.RoleManager}
	master := Actor{ID: 2, Role: models.RoleMaster}

	// MANAGER may not touch a MASTER account
	dec := RequireRankOver(manager, 2, models.RoleMaster, "denied")
	assert.False(t, dec.Allowed())

	// the reverse holds
	assert.True(t, RequireRankOver(master, 1, models.RoleManager, "denied").Allowed())

	// equal rank passes; the ownership gates run before this check
	assert.True(t, RequireRankOver(manager, 3, models.RoleManager, "denied").Allowed())

	// self always passes regardless of rank
	assert.True(t, RequireRankOver(manager, 1, models.RoleMaster, "denied").Allowed())
}

func TestRoleRanking(t *testing.T) {
	assert.True(t, models.RoleMaster.RankAbove(models.RoleManager))
	assert.True(t, models.RoleManager.RankAbove(models.RoleOwner))
	assert.True(t, models.RoleOwner.RankAbove(models.RoleCustomer))
	assert.False(t, models.RoleCustomer.RankAbove(models.RoleCustomer))

	assert.True(t, models.Role("MANAGER").Valid())
	assert.False(t, models.Role("SUPERUSER").Valid())
	assert.True(t, models.RoleMaster.Admin())
	assert.False(t, models.RoleOwner.Admin())
}
