package model

import "time"

type Cluster struct {
	Id           int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"column:name;uniqueIndex"`
	TypeID       int64     `json:"type_id" gorm:"column:type_id;index"`   // 集群类型ID（关联字段）
	GroupID      *int64    `json:"group_id" gorm:"column:group_id;index"` // 集群组ID（关联字段，可空）
	SyncTag      string    `json:"sync_tag" gorm:"column:sync_tag;index"`
	LastSyncTime time.Time `json:"last_sync_time" gorm:"column:last_sync_time"`

	// 仅声明外键约束，业务代码不经由关联对象读写
	Type  *ClusterType  `json:"-" gorm:"foreignKey:TypeID;constraint:OnDelete:RESTRICT"`
	Group *ClusterGroup `json:"-" gorm:"foreignKey:GroupID;constraint:OnDelete:RESTRICT"`
}

func (Cluster) TableName() string {
	return "cluster"
}

func (c *Cluster) SyncStamp(tag string, at time.Time) {
	c.SyncTag = tag
	c.LastSyncTime = at
}
