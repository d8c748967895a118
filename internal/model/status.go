package model

type Status struct {
	Id   int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"column:name;uniqueIndex"`
}

func (Status) TableName() string {
	return "status"
}
