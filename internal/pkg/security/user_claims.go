package security

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// UserClaims Token 中携带的身份信息
type UserClaims struct {
	UserID   uint64   `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// RolesFor 普通用户拥有 USER 角色，工作人员额外拥有 ADMIN 角色
func RolesFor(isStaff bool) []string {
	if isStaff {
		return []string{RoleUser, RoleAdmin}
	}
	return []string{RoleUser}
}
