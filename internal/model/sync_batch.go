package model

import "time"

// SyncBatch 记录一次对账批次的执行结果。
type SyncBatch struct {
	Id           int64     `json:"id" gorm:"column:id;primaryKey"` // sonyflake 生成，非自增
	Trigger      string    `json:"trigger" gorm:"column:trigger"`  // manual / schedule / cli
	Status       string    `json:"status" gorm:"column:status"`    // completed / skipped / failed
	SnapshotHash string    `json:"snapshot_hash" gorm:"column:snapshot_hash;index"`
	Created      int       `json:"created" gorm:"column:created"`
	Updated      int       `json:"updated" gorm:"column:updated"`
	Deleted      int       `json:"deleted" gorm:"column:deleted"`
	Warnings     int       `json:"warnings" gorm:"column:warnings"`
	StartTime    time.Time `json:"start_time" gorm:"column:start_time"`
	EndTime      time.Time `json:"end_time" gorm:"column:end_time"`
}

func (SyncBatch) TableName() string {
	return "sync_batch"
}
