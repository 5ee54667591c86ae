package gorm

import "time"

// Report is an informe with the junta's income and loss figures.
type Report struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	Title     string    `gorm:"column:title;size:255;not null"`
	Income    int64     `gorm:"column:income;not null"`
	Loss      int64     `gorm:"column:loss;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Report) TableName() string {
	return "informes"
}
