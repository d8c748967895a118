package model

type DeviceType struct {
	Id    int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Model string `json:"model" gorm:"column:model;uniqueIndex"`
}

func (DeviceType) TableName() string {
	return "device_type"
}
