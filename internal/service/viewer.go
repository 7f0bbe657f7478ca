package service

import (
	"Blogicum/internal/pkg/security"
	"slices"
	"time"
)

// Viewer 发起请求的身份，UserID 为 0 表示匿名访客
type Viewer struct {
	UserID   uint64
	Username string
	Roles    []string
}

func Anonymous() Viewer {
	return Viewer{}
}

// SystemViewer 命令行管理工具使用的管理员身份
func SystemViewer() Viewer {
	return Viewer{Username: "system", Roles: []string{security.RoleAdmin}}
}

func (v Viewer) IsAuthenticated() bool {
	return v.UserID != 0
}

func (v Viewer) HasRole(role string) bool {
	return slices.Contains(v.Roles, role)
}

// Owned 有作者的实体
type Owned interface {
	OwnerID() uint64
}

// authorize 唯一的所有权校验：仅实体作者可以修改
func authorize(v Viewer, entity Owned) error {
	if !v.IsAuthenticated() || entity.OwnerID() != v.UserID {
		return ErrOwnershipDenied
	}
	return nil
}

func requireAdmin(v Viewer) error {
	if !v.HasRole(security.RoleAdmin) {
		return ErrForbidden
	}
	return nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
