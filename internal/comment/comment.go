// Package comment provides card comments. Adding or deleting one appends
// the corresponding record to the card's history in the same transaction.
package comment

import (
	"errors"
	"fmt"

	"github.com/oriente/oriente/internal/card"
	"github.com/oriente/oriente/internal/history"
	"github.com/oriente/oriente/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound reports a comment missing at invocation time.
var ErrNotFound = errors.New("comment: not found")

// Add creates a comment on a card and records COMMENT_ADDED.
func Add(db *gorm.DB, cardID uint, authorID *uint, body string, loc history.Locale) (*models.Comment, error) {
	if body == "" {
		return nil, fmt.Errorf("comment: body is required")
	}

	c, err := card.Get(db, cardID)
	if err != nil {
		return nil, err
	}

	cm := models.Comment{CardID: cardID, AuthorID: authorID, Body: body}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cm).Error; err != nil {
			return fmt.Errorf("comment: create on card %d: %w", cardID, err)
		}
		_, err := history.Record(tx, history.RecordOpts{
			Action:    history.ActionCommentAdded,
			CardID:    cardID,
			ProjectID: c.ProjectID,
			ActorID:   authorID,
			Details:   history.Details{CommentID: cm.ID},
			Locale:    loc,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

// Delete removes a comment and records COMMENT_DELETED.
func Delete(db *gorm.DB, commentID uint, actorID *uint, loc history.Locale) error {
	var cm models.Comment
	if err := db.Where("id = ?", commentID).First(&cm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("comment: %d: %w", commentID, ErrNotFound)
		}
		return fmt.Errorf("comment: get %d: %w", commentID, err)
	}

	c, err := card.Get(db, cm.CardID)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Comment{}, commentID).Error; err != nil {
			return fmt.Errorf("comment: delete %d: %w", commentID, err)
		}
		_, err := history.Record(tx, history.RecordOpts{
			Action:    history.ActionCommentDeleted,
			CardID:    cm.CardID,
			ProjectID: c.ProjectID,
			ActorID:   actorID,
			Details:   history.Details{CommentID: commentID},
			Locale:    loc,
		})
		return err
	})
}

// ListByCard returns a card's comments oldest first.
func ListByCard(db *gorm.DB, cardID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.Preload("Author").Where("card_id = ?", cardID).
		Order("created_at ASC, id ASC").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("comment: list card %d: %w", cardID, err)
	}
	return comments, nil
}
