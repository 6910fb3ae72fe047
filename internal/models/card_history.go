package models

import "time"

// CardHistory is one immutable audit record documenting a discrete change
// to a card. Rows are only ever inserted; ActorID is nil for
// system-initiated actions.
type CardHistory struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Action    string `gorm:"size:32;not null;index"`
	CardID    uint   `gorm:"not null;index"`
	ProjectID uint   `gorm:"not null;index"`
	ActorID   *uint
	Message   string    `gorm:"size:500;not null"`
	Details   string    `gorm:"type:json"`
	CreatedAt time.Time `gorm:"index"`

	Card  *Card `gorm:"foreignKey:CardID"`
	Actor *User `gorm:"foreignKey:ActorID"`
}
