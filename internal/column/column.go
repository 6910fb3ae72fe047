// Package column provides column lifecycle operations. A project's columns
// form one dense ordering scope.
package column

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oriente/oriente/internal/models"
	"github.com/oriente/oriente/internal/ordering"
	"gorm.io/gorm"
)

var (
	// ErrNotFound reports a column missing at invocation time.
	ErrNotFound = errors.New("column: not found")
	// ErrProjectNotFound reports a missing owning project.
	ErrProjectNotFound = errors.New("column: project not found")
	// ErrHasCards blocks deletion of a column that still holds live cards.
	ErrHasCards = errors.New("column: contains cards")
)

// completionNames is the case-insensitive title set that historically
// marked completion columns. It now only defaults IsTerminal at creation
// time; runtime behavior follows the stored flag.
var completionNames = map[string]bool{
	"concluído":  true,
	"done":       true,
	"finalizado": true,
}

// IsCompletionName reports whether a title matches the completion name set.
func IsCompletionName(title string) bool {
	return completionNames[strings.ToLower(strings.TrimSpace(title))]
}

// Scope returns the dense ordering scope for a project's columns.
func Scope(projectID uint) ordering.Scope {
	return ordering.Scope{
		Model:        &models.Column{},
		ContainerKey: "project_id",
		ContainerID:  projectID,
	}
}

// CreateOpts holds parameters for creating a column.
type CreateOpts struct {
	Title       string
	Description string
	Color       string
	Position    *int  // nil appends at the end
	Terminal    *bool // nil defaults from the completion name set
}

// Create inserts a new column. When Position is set, existing columns at or
// after it are shifted up by one so positions stay dense.
func Create(db *gorm.DB, projectID uint, opts CreateOpts) (*models.Column, error) {
	if opts.Title == "" {
		return nil, fmt.Errorf("column: title is required")
	}

	var count int64
	if err := db.Model(&models.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("column: check project %d: %w", projectID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("column: project %d: %w", projectID, ErrProjectNotFound)
	}

	terminal := IsCompletionName(opts.Title)
	if opts.Terminal != nil {
		terminal = *opts.Terminal
	}

	col := models.Column{
		Title:       opts.Title,
		Description: opts.Description,
		Color:       opts.Color,
		ProjectID:   projectID,
		IsTerminal:  terminal,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		s := Scope(projectID)
		if opts.Position == nil {
			n, err := ordering.Count(tx, s)
			if err != nil {
				return err
			}
			col.Position = n
		} else {
			if _, err := ordering.ValidateInsert(tx, s, *opts.Position); err != nil {
				return err
			}
			if err := ordering.OpenGap(tx, s, *opts.Position); err != nil {
				return err
			}
			col.Position = *opts.Position
		}
		if err := tx.Create(&col).Error; err != nil {
			return fmt.Errorf("column: create: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &col, nil
}

// Get retrieves a column by ID.
func Get(db *gorm.DB, id uint) (*models.Column, error) {
	var col models.Column
	if err := db.Where("id = ?", id).First(&col).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("column: %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("column: get %d: %w", id, err)
	}
	return &col, nil
}

// ListByProject returns a project's columns ordered by position.
func ListByProject(db *gorm.DB, projectID uint) ([]models.Column, error) {
	var cols []models.Column
	if err := db.Where("project_id = ?", projectID).Order("position ASC").Find(&cols).Error; err != nil {
		return nil, fmt.Errorf("column: list project %d: %w", projectID, err)
	}
	return cols, nil
}

// UpdateOpts holds optional field updates; nil fields are left untouched.
type UpdateOpts struct {
	Title       *string
	Description *string
	Color       *string
	Terminal    *bool
}

// Update modifies a column's descriptive fields. Position is not touched
// here; use Move.
func Update(db *gorm.DB, id uint, opts UpdateOpts) (*models.Column, error) {
	col, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if opts.Title != nil {
		if *opts.Title == "" {
			return nil, fmt.Errorf("column: title is required")
		}
		updates["title"] = *opts.Title
	}
	if opts.Description != nil {
		updates["description"] = *opts.Description
	}
	if opts.Color != nil {
		updates["color"] = *opts.Color
	}
	if opts.Terminal != nil {
		updates["is_terminal"] = *opts.Terminal
	}
	if len(updates) == 0 {
		return col, nil
	}

	if err := db.Model(&models.Column{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("column: update %d: %w", id, err)
	}
	return Get(db, id)
}

// Move reorders a column within its project. Columns strictly outside the
// [old, new] window are untouched. Moving to the current position is a
// no-op.
func Move(db *gorm.DB, id uint, newPos int) (*models.Column, error) {
	col, err := Get(db, id)
	if err != nil {
		return nil, err
	}
	if col.Position == newPos {
		return col, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		s := Scope(col.ProjectID)
		if _, err := ordering.ValidateMove(tx, s, newPos); err != nil {
			return err
		}
		if err := ordering.ShiftWithin(tx, s, col.Position, newPos); err != nil {
			return err
		}
		if err := tx.Model(&models.Column{}).Where("id = ?", id).
			UpdateColumn("position", newPos).Error; err != nil {
			return fmt.Errorf("column: move %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	col.Position = newPos
	return col, nil
}

// Delete removes a column and closes the position gap it leaves. A column
// still holding live cards cannot be deleted.
func Delete(db *gorm.DB, id uint) error {
	col, err := Get(db, id)
	if err != nil {
		return err
	}

	var cards int64
	err = db.Model(&models.Card{}).
		Where("column_id = ? AND status <> ?", id, models.CardStatusDeleted).
		Count(&cards).Error
	if err != nil {
		return fmt.Errorf("column: count cards of %d: %w", id, err)
	}
	if cards > 0 {
		return fmt.Errorf("column: %d holds %d cards: %w", id, cards, ErrHasCards)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Column{}, id).Error; err != nil {
			return fmt.Errorf("column: delete %d: %w", id, err)
		}
		return ordering.CloseGap(tx, Scope(col.ProjectID), col.Position)
	})
}

// CreateDefaults seeds the three standard columns for a new project. The
// last one is the terminal (completion) column.
func CreateDefaults(db *gorm.DB, projectID uint) ([]models.Column, error) {
	defaults := []models.Column{
		{Title: "A Fazer", Color: "#ef4444", Position: 0},
		{Title: "Em Progresso", Color: "#f59e0b", Position: 1},
		{Title: "Concluído", Color: "#10b981", Position: 2, IsTerminal: true},
	}

	created := make([]models.Column, 0, len(defaults))
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, col := range defaults {
			col.ProjectID = projectID
			if err := tx.Create(&col).Error; err != nil {
				return fmt.Errorf("column: seed %q: %w", col.Title, err)
			}
			created = append(created, col)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
