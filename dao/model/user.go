package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserAttribute holds the optional profile fields that are stored as a
// single JSON column instead of one column per field.
type UserAttribute struct {
	Nickname string `json:"nickname,omitempty"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// User is the basic entity of the system
type User struct {
	gorm.Model
	Name      string                            `gorm:"uniqueIndex;type:varchar(32);not null;comment:用户名"`
	Password  *string                           `gorm:"type:varchar(128);comment:密码"`
	Role      Role                              `gorm:"not null;default:1;comment:平台角色 (1:user, 2:admin, 3:super_admin)"`
	Status    Status                            `gorm:"not null;default:2;comment:用户状态 (1:pending, 2:active, 3:inactive)"`
	Attribute datatypes.JSONType[UserAttribute] `gorm:"comment:用户详细信息"`

	Memberships []WorkspaceMember `gorm:"foreignKey:UserID"`
}
