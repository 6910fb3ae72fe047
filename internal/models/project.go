package models

import "time"

// Project is the top-level board. Its columns form one dense ordering scope.
type Project struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"type:text"`
	OwnerID     *uint
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner   *User    `gorm:"foreignKey:OwnerID"`
	Columns []Column `gorm:"foreignKey:ProjectID"`
	Cards   []Card   `gorm:"foreignKey:ProjectID"`
	Tags    []Tag    `gorm:"foreignKey:ProjectID"`
}
