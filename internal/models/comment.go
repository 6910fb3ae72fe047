package models

import "time"

// Comment is a user note on a card. Adding or deleting one is recorded in
// the card's history.
type Comment struct {
	ID        uint `gorm:"primaryKey"`
	CardID    uint `gorm:"not null;index"`
	AuthorID  *uint
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Card   *Card `gorm:"foreignKey:CardID"`
	Author *User `gorm:"foreignKey:AuthorID"`
}
