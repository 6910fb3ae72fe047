// Package project provides project lifecycle operations.
package project

import (
	"errors"
	"fmt"

	"github.com/oriente/oriente/internal/column"
	"github.com/oriente/oriente/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound reports a project missing at invocation time.
var ErrNotFound = errors.New("project: not found")

// CreateOpts holds parameters for creating a project.
type CreateOpts struct {
	Name        string
	Description string
	OwnerID     *uint
}

// Create creates a project and seeds its default columns.
func Create(db *gorm.DB, opts CreateOpts) (*models.Project, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("project: name is required")
	}

	p := models.Project{
		Name:        opts.Name,
		Description: opts.Description,
		OwnerID:     opts.OwnerID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return fmt.Errorf("project: create: %w", err)
		}
		_, err := column.CreateDefaults(tx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Get retrieves a project with its columns ordered by position.
func Get(db *gorm.DB, id uint) (*models.Project, error) {
	var p models.Project
	err := db.Preload("Columns", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project: %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("project: get %d: %w", id, err)
	}
	return &p, nil
}

// List returns all projects ordered by creation time.
func List(db *gorm.DB) ([]models.Project, error) {
	var projects []models.Project
	if err := db.Order("created_at ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("project: list: %w", err)
	}
	return projects, nil
}
