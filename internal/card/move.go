package card

import (
	"errors"
	"fmt"
	"time"

	"github.com/oriente/oriente/internal/history"
	"github.com/oriente/oriente/internal/models"
	"github.com/oriente/oriente/internal/ordering"
	"gorm.io/gorm"
)

// MoveOpts holds the destination of a card move.
type MoveOpts struct {
	ColumnID uint
	Position int
	Locale   history.Locale
}

// Descriptor describes a completed cross-column move; the caller hands it
// to whatever broadcasts board changes. Nil for same-column moves.
type Descriptor struct {
	FromColumn string
	ToColumn   string
}

// Move relocates a card. Same-column moves reorder with a minimal-window
// shift and fire no side effects and no history. Cross-column moves close
// the source gap, open the destination gap, reparent the card, apply the
// completion side effect from the destination's IsTerminal flag, and
// record one MOVED entry, all in a single transaction, so a failure
// partway leaves both columns untouched.
func Move(db *gorm.DB, cardID uint, opts MoveOpts, actorID *uint) (*models.Card, *Descriptor, error) {
	c, err := Get(db, cardID)
	if err != nil {
		return nil, nil, err
	}
	// A deleted card holds no position slot; shifting around its stale
	// position would corrupt both columns' sequences.
	if c.Status == models.CardStatusDeleted {
		return nil, nil, fmt.Errorf("card: move %d: %w", cardID, ErrNotFound)
	}

	var target models.Column
	err = db.Where("id = ? AND project_id = ?", opts.ColumnID, c.ProjectID).First(&target).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("card: target column %d in project %d: %w", opts.ColumnID, c.ProjectID, ErrColumnNotFound)
		}
		return nil, nil, fmt.Errorf("card: check target column %d: %w", opts.ColumnID, err)
	}

	if target.ID == c.ColumnID {
		if c.Position == opts.Position {
			return c, nil, nil
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			s := LiveScope(c.ColumnID)
			if _, err := ordering.ValidateMove(tx, s, opts.Position); err != nil {
				return err
			}
			if err := ordering.ShiftWithin(tx, s, c.Position, opts.Position); err != nil {
				return err
			}
			if err := tx.Model(&models.Card{}).Where("id = ?", cardID).
				UpdateColumn("position", opts.Position).Error; err != nil {
				return fmt.Errorf("card: move %d within column: %w", cardID, err)
			}
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
		c.Position = opts.Position
		return c, nil, nil
	}

	var fromName string
	if c.Column != nil {
		fromName = c.Column.Title
	}
	desc := &Descriptor{FromColumn: fromName, ToColumn: target.Title}

	err = db.Transaction(func(tx *gorm.DB) error {
		dest := LiveScope(target.ID)
		if _, err := ordering.ValidateInsert(tx, dest, opts.Position); err != nil {
			return err
		}
		if err := ordering.CloseGap(tx, LiveScope(c.ColumnID), c.Position); err != nil {
			return err
		}
		if err := ordering.OpenGap(tx, dest, opts.Position); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"column_id": target.ID,
			"position":  opts.Position,
		}
		if target.IsTerminal {
			if c.CompletedAt == nil {
				updates["completed_at"] = time.Now()
			}
		} else {
			updates["completed_at"] = nil
		}
		if err := tx.Model(&models.Card{}).Where("id = ?", cardID).Updates(updates).Error; err != nil {
			return fmt.Errorf("card: move %d to column %d: %w", cardID, target.ID, err)
		}

		_, err := history.Record(tx, history.RecordOpts{
			Action:    history.ActionMoved,
			CardID:    cardID,
			ProjectID: c.ProjectID,
			ActorID:   actorID,
			Details:   history.Details{FromColumn: fromName, ToColumn: target.Title},
			Locale:    opts.Locale,
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	moved, err := Get(db, cardID)
	if err != nil {
		return nil, nil, err
	}
	return moved, desc, nil
}
