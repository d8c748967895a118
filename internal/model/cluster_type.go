package model

import "time"

type ClusterType struct {
	Id           int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"column:name;uniqueIndex"`
	SyncTag      string    `json:"sync_tag" gorm:"column:sync_tag;index"`
	LastSyncTime time.Time `json:"last_sync_time" gorm:"column:last_sync_time"`
}

func (ClusterType) TableName() string {
	return "cluster_type"
}

func (t *ClusterType) SyncStamp(tag string, at time.Time) {
	t.SyncTag = tag
	t.LastSyncTime = at
}
