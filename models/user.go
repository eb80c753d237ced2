package models

import (
	"time"
)

// UserRole is the coarse permission level of an account.
type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleManager   UserRole = "MANAGER"
	RoleDeveloper UserRole = "DEVELOPER"
	RoleTester    UserRole = "TESTER"
)

// WorkMode is where an account holder usually works.
type WorkMode string

const (
	WorkModeOffice WorkMode = "OFFICE"
	WorkModeRemote WorkMode = "REMOTE"
	WorkModeHybrid WorkMode = "HYBRID"
)

// User is an account in the local system of record. Email is the
// reconciliation key against the federated identity provider and is unique
// under case-insensitive comparison. Username is immutable after creation.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"type:varchar(100);uniqueIndex" json:"username"`
	Email     string     `gorm:"type:varchar(100);uniqueIndex" json:"email"`
	FullName  string     `gorm:"type:varchar(100)" json:"full_name"`
	Role      UserRole   `gorm:"type:varchar(20);default:DEVELOPER" json:"role"`
	WorkMode  WorkMode   `gorm:"type:varchar(20);default:REMOTE" json:"work_mode"`
	Active    bool       `gorm:"default:true" json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (u *User) GetDisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
