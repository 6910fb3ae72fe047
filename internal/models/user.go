package models

import "time"

// User is an actor and assignee. Authentication lives outside this service;
// only the display name is needed here (history message generation).
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:120;uniqueIndex;not null"`
	CreatedAt time.Time

	AssignedCards []Card `gorm:"many2many:card_assignees"`
}
