// Package tag provides project-scoped labels and their attachment to
// cards, each attachment change landing in the card's history.
package tag

import (
	"errors"
	"fmt"

	"github.com/oriente/oriente/internal/card"
	"github.com/oriente/oriente/internal/history"
	"github.com/oriente/oriente/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound reports a tag missing at invocation time.
	ErrNotFound = errors.New("tag: not found")
	// ErrWrongProject reports a tag and card from different projects.
	ErrWrongProject = errors.New("tag: tag and card belong to different projects")
)

// Create creates a tag in a project.
func Create(db *gorm.DB, projectID uint, name, color string) (*models.Tag, error) {
	if name == "" {
		return nil, fmt.Errorf("tag: name is required")
	}

	t := models.Tag{Name: name, Color: color, ProjectID: projectID}
	if err := db.Create(&t).Error; err != nil {
		return nil, fmt.Errorf("tag: create %q: %w", name, err)
	}
	return &t, nil
}

// Get retrieves a tag by ID.
func Get(db *gorm.DB, id uint) (*models.Tag, error) {
	var t models.Tag
	if err := db.Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tag: %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("tag: get %d: %w", id, err)
	}
	return &t, nil
}

// ListByProject returns a project's tags ordered by name.
func ListByProject(db *gorm.DB, projectID uint) ([]models.Tag, error) {
	var tags []models.Tag
	if err := db.Where("project_id = ?", projectID).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("tag: list project %d: %w", projectID, err)
	}
	return tags, nil
}

// Attach links a tag to a card of the same project and records TAG_ADDED.
// Attaching an already-attached tag is a no-op and fires no history.
func Attach(db *gorm.DB, cardID, tagID uint, actorID *uint, loc history.Locale) error {
	c, err := card.Get(db, cardID)
	if err != nil {
		return err
	}
	t, err := Get(db, tagID)
	if err != nil {
		return err
	}
	if t.ProjectID != c.ProjectID {
		return fmt.Errorf("tag: attach %d to card %d: %w", tagID, cardID, ErrWrongProject)
	}

	for _, attached := range c.Tags {
		if attached.ID == tagID {
			return nil
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(c).Association("Tags").Append(t); err != nil {
			return fmt.Errorf("tag: attach %d to card %d: %w", tagID, cardID, err)
		}
		_, err := history.Record(tx, history.RecordOpts{
			Action:    history.ActionTagAdded,
			CardID:    cardID,
			ProjectID: c.ProjectID,
			ActorID:   actorID,
			Details:   history.Details{TagName: t.Name},
			Locale:    loc,
		})
		return err
	})
}

// Detach unlinks a tag from a card and records TAG_REMOVED. Detaching a
// tag that is not attached is a no-op and fires no history.
func Detach(db *gorm.DB, cardID, tagID uint, actorID *uint, loc history.Locale) error {
	c, err := card.Get(db, cardID)
	if err != nil {
		return err
	}
	t, err := Get(db, tagID)
	if err != nil {
		return err
	}

	attached := false
	for _, at := range c.Tags {
		if at.ID == tagID {
			attached = true
			break
		}
	}
	if !attached {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(c).Association("Tags").Delete(t); err != nil {
			return fmt.Errorf("tag: detach %d from card %d: %w", tagID, cardID, err)
		}
		_, err := history.Record(tx, history.RecordOpts{
			Action:    history.ActionTagRemoved,
			CardID:    cardID,
			ProjectID: c.ProjectID,
			ActorID:   actorID,
			Details:   history.Details{TagName: t.Name},
			Locale:    loc,
		})
		return err
	})
}
