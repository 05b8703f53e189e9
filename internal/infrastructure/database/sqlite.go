package database

import (
	"log"

	"github.com/leon37/EduConsult/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteConnection 打开本地库文件并自动建表。
// 单租户工具，本地一个 SQLite 文件就是全部持久化。
func NewSQLiteConnection(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Fatal: 无法打开本地存储: %v", err)
	}

	if err := db.AutoMigrate(&model.KVEntry{}); err != nil {
		log.Fatalf("Fatal: 数据库迁移失败: %v", err)
	}

	return db
}
