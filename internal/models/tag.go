package models

import "time"

// Tag is a project-scoped label attachable to cards.
type Tag struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:50;not null"`
	Color     string `gorm:"size:7;default:#6366f1"`
	ProjectID uint   `gorm:"not null;index"`
	CreatedAt time.Time

	Cards []Card `gorm:"many2many:card_tags"`
}
