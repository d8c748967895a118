package model

type Site struct {
	Id   int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"column:name"`
	Slug string `json:"slug" gorm:"column:slug;uniqueIndex"`
}

func (Site) TableName() string {
	return "site"
}
