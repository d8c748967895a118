package model

import "time"

type VMInterface struct {
	Id               int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name             string    `json:"name" gorm:"column:name;uniqueIndex:idx_iface_vm"`
	VirtualMachineID int64     `json:"virtual_machine_id" gorm:"column:virtual_machine_id;uniqueIndex:idx_iface_vm;index"` // 虚拟机ID（关联字段）
	Enabled          bool      `json:"enabled" gorm:"column:enabled"`
	MACAddress       string    `json:"mac_address" gorm:"column:mac_address"`
	SyncTag          string    `json:"sync_tag" gorm:"column:sync_tag;index"`
	LastSyncTime     time.Time `json:"last_sync_time" gorm:"column:last_sync_time"`

	// 仅声明外键约束，业务代码不经由关联对象读写
	VirtualMachine *VirtualMachine `json:"-" gorm:"foreignKey:VirtualMachineID;constraint:OnDelete:RESTRICT"`
}

func (VMInterface) TableName() string {
	return "vm_interface"
}

func (i *VMInterface) SyncStamp(tag string, at time.Time) {
	i.SyncTag = tag
	i.LastSyncTime = at
}
