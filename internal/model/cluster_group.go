package model

import "time"

type ClusterGroup struct {
	Id           int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"column:name;uniqueIndex"`
	Slug         string    `json:"slug" gorm:"column:slug"`
	SyncTag      string    `json:"sync_tag" gorm:"column:sync_tag;index"`
	LastSyncTime time.Time `json:"last_sync_time" gorm:"column:last_sync_time"`
}

func (ClusterGroup) TableName() string {
	return "cluster_group"
}

func (g *ClusterGroup) SyncStamp(tag string, at time.Time) {
	g.SyncTag = tag
	g.LastSyncTime = at
}
