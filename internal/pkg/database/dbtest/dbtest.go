// Package dbtest 提供测试用的数据库构造
package dbtest

import (
	"Blogicum/internal/api/config"
	"Blogicum/internal/pkg/database"
	"Blogicum/internal/pkg/logger"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewTestDB 为单个测试创建独立的内存 SQLite 库并完成迁移
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := database.NewGormDB(&config.DBConfig{
		Driver:      "sqlite",
		DSN:         dsn,
		MaxIdle:     1,
		MaxOpen:     1,
		AutoMigrate: true,
	}, logger.Discard())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
