package model

type DeviceRole struct {
	Id   int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"column:name;uniqueIndex"`
}

func (DeviceRole) TableName() string {
	return "device_role"
}
