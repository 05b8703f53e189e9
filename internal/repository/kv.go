package repository

import (
	"context"
	"errors"

	"github.com/leon37/EduConsult/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRepo 本地键值存储接口 (为了方便 Mock)
type KVRepo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

type kvRepo struct {
	db *gorm.DB
}

// NewKVRepo 构造函数
func NewKVRepo(db *gorm.DB) KVRepo {
	return &kvRepo{db: db}
}

// Get 读取一个键，第二个返回值表示键是否存在
func (r *kvRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var entry model.KVEntry
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// Put 整体覆盖一个键的值
func (r *kvRepo) Put(ctx context.Context, key, value string) error {
	entry := model.KVEntry{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}
