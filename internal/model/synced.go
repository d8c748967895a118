package model

import "time"

// Synced 由所有受同步引擎管理的记录实现，打标后的记录才参与比对和删除。
type Synced interface {
	SyncStamp(tag string, t time.Time)
}
