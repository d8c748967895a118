package model

import "time"

// Device 对应宿主机（ESXi host）记录。
type Device struct {
	Id           int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"column:name;uniqueIndex"`
	StatusID     int64     `json:"status_id" gorm:"column:status_id;index"`
	RoleID       int64     `json:"role_id" gorm:"column:role_id;index"`       // 设备角色ID（关联字段）
	TypeID       int64     `json:"type_id" gorm:"column:type_id;index"`       // 设备型号ID（关联字段）
	SiteID       int64     `json:"site_id" gorm:"column:site_id;index"`       // 站点ID（关联字段）
	ClusterID    *int64    `json:"cluster_id" gorm:"column:cluster_id;index"` // 集群ID（关联字段，可空）
	SyncTag      string    `json:"sync_tag" gorm:"column:sync_tag;index"`
	LastSyncTime time.Time `json:"last_sync_time" gorm:"column:last_sync_time"`

	// 仅声明外键约束，业务代码不经由关联对象读写
	Status  *Status     `json:"-" gorm:"foreignKey:StatusID;constraint:OnDelete:RESTRICT"`
	Role    *DeviceRole `json:"-" gorm:"foreignKey:RoleID;constraint:OnDelete:RESTRICT"`
	Type    *DeviceType `json:"-" gorm:"foreignKey:TypeID;constraint:OnDelete:RESTRICT"`
	Site    *Site       `json:"-" gorm:"foreignKey:SiteID;constraint:OnDelete:RESTRICT"`
	Cluster *Cluster    `json:"-" gorm:"foreignKey:ClusterID;constraint:OnDelete:RESTRICT"`
}

func (Device) TableName() string {
	return "device"
}

func (d *Device) SyncStamp(tag string, at time.Time) {
	d.SyncTag = tag
	d.LastSyncTime = at
}
