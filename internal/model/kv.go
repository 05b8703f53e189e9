package model

import "time"

// KVEntry 本地键值存储的表结构。
// 整个档案列表序列化成一个 JSON blob 存在 ProfilesKey 这一个键下。
type KVEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(128)" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 强制指定表名
func (KVEntry) TableName() string {
	return "kv_entries"
}

// ProfilesKey 档案 blob 的存储键
const ProfilesKey = "EDU_CONSULT_PROFILES"
