package models

import "time"

// Card statuses. Deleted is a soft state set through the status-update
// path; a deleted card no longer occupies a position slot.
const (
	CardStatusActive   = "active"
	CardStatusArchived = "archived"
	CardStatusDeleted  = "deleted"
)

// Card priorities.
const (
	CardPriorityLow    = "low"
	CardPriorityMedium = "medium"
	CardPriorityHigh   = "high"
	CardPriorityUrgent = "urgent"
)

// Card is the core work item. Position is dense and zero-based among the
// live (non-deleted) cards of its column.
type Card struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	Position    int    `gorm:"not null;default:0;index"`
	Priority    string `gorm:"size:16;default:medium"`
	Status      string `gorm:"size:16;default:active;index"`
	DueDate     *time.Time
	CompletedAt *time.Time
	ColumnID    uint `gorm:"not null;index"`
	ProjectID   uint `gorm:"not null;index"`
	CreatedByID *uint
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Column    *Column       `gorm:"foreignKey:ColumnID"`
	Project   *Project      `gorm:"foreignKey:ProjectID"`
	CreatedBy *User         `gorm:"foreignKey:CreatedByID"`
	Assignees []User        `gorm:"many2many:card_assignees"`
	Tags      []Tag         `gorm:"many2many:card_tags"`
	Comments  []Comment     `gorm:"foreignKey:CardID"`
	History   []CardHistory `gorm:"foreignKey:CardID"`
}
