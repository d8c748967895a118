package model

import "time"

type IPAddress struct {
	Id           int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Host         string    `json:"host" gorm:"column:host;uniqueIndex:idx_ip_host_prefix"`
	PrefixLength int       `json:"prefix_length" gorm:"column:prefix_length;uniqueIndex:idx_ip_host_prefix"`
	StatusID     int64     `json:"status_id" gorm:"column:status_id;index"`
	InterfaceID  *int64    `json:"interface_id" gorm:"column:interface_id;index"` // 网卡ID（关联字段，可空）
	SyncTag      string    `json:"sync_tag" gorm:"column:sync_tag;index"`
	LastSyncTime time.Time `json:"last_sync_time" gorm:"column:last_sync_time"`

	// 仅声明外键约束，业务代码不经由关联对象读写
	Status    *Status      `json:"-" gorm:"foreignKey:StatusID;constraint:OnDelete:RESTRICT"`
	Interface *VMInterface `json:"-" gorm:"foreignKey:InterfaceID;constraint:OnDelete:RESTRICT"`
}

func (IPAddress) TableName() string {
	return "ip_address"
}

func (ip *IPAddress) SyncStamp(tag string, at time.Time) {
	ip.SyncTag = tag
	ip.LastSyncTime = at
}
