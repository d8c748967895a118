package model

import "time"

type VirtualMachine struct {
	Id           int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"column:name;uniqueIndex"`
	StatusID     int64     `json:"status_id" gorm:"column:status_id;index"`
	ClusterID    int64     `json:"cluster_id" gorm:"column:cluster_id;index"` // 集群ID（关联字段）
	VCPUs        int       `json:"vcpus" gorm:"column:vcpus"`
	Memory       int       `json:"memory" gorm:"column:memory"`
	Disk         int       `json:"disk" gorm:"column:disk"`
	PrimaryIP4ID *int64    `json:"primary_ip4_id" gorm:"column:primary_ip4_id"` // 主IPv4地址ID（关联字段，可空）
	PrimaryIP6ID *int64    `json:"primary_ip6_id" gorm:"column:primary_ip6_id"` // 主IPv6地址ID（关联字段，可空）
	SyncTag      string    `json:"sync_tag" gorm:"column:sync_tag;index"`
	LastSyncTime time.Time `json:"last_sync_time" gorm:"column:last_sync_time"`

	// 仅声明外键约束，业务代码不经由关联对象读写。
	// 主地址列指回 ip_address 会形成表间环形引用，不建约束，
	// 悬空编号由装载端按缺失处理。
	Status  *Status  `json:"-" gorm:"foreignKey:StatusID;constraint:OnDelete:RESTRICT"`
	Cluster *Cluster `json:"-" gorm:"foreignKey:ClusterID;constraint:OnDelete:RESTRICT"`
}

func (VirtualMachine) TableName() string {
	return "virtual_machine"
}

func (v *VirtualMachine) SyncStamp(tag string, at time.Time) {
	v.SyncTag = tag
	v.LastSyncTime = at
}
