package models

// Role defines allowed roles in the system
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleOwner    Role = "OWNER"
	RoleManager  Role = "MANAGER"
	RoleMaster   Role = "MASTER"
)

// roleRank is the explicit privilege ordering. The ranking is a documented
// policy of its own, not a side effect of declaration order.
var roleRank = map[Role]int{
	RoleCustomer: 0,
	RoleOwner:    1,
	RoleManager:  2,
	RoleMaster:   3,
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Admin reports whether r is an administrative role.
func (r Role) Admin() bool {
	return r == RoleManager || r == RoleMaster
}

// RankAbove reports whether r is strictly more privileged than other.
// This is the one ordinal comparison in the policy; it blocks a MANAGER
// from mutating a MASTER account.
func (r Role) RankAbove(other Role) bool {
	return roleRank[r] > roleRank[other]
}

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Role     Role   `json:"role" gorm:"not null;default:'CUSTOMER'"`

	DeliveryAddresses []DeliveryAddress `json:"delivery_addresses,omitempty" gorm:"foreignKey:UserID"`
	Orders            []Order           `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	Reviews           []Review          `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
	Stores            []Store           `json:"stores,omitempty" gorm:"foreignKey:UserID"`

	Audit
}
