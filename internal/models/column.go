package models

import "time"

// Column is a kanban column. Position is dense and zero-based within the
// owning project. IsTerminal marks the column whose cards count as completed;
// it replaces the original name-matching heuristic.
type Column struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:100;not null"`
	Description string `gorm:"type:text"`
	Color       string `gorm:"size:7;default:#6366f1"`
	Position    int    `gorm:"not null;default:0;index"`
	IsTerminal  bool   `gorm:"not null;default:false"`
	ProjectID   uint   `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Project *Project `gorm:"foreignKey:ProjectID"`
	Cards   []Card   `gorm:"foreignKey:ColumnID"`
}
