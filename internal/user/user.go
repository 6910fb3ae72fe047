// Package user provides the actor/assignee lookup. Authentication is not
// this service's concern; users here exist so history messages and
// assignee sets can resolve display names.
package user

import (
	"errors"
	"fmt"

	"github.com/oriente/oriente/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound reports a user missing at invocation time.
var ErrNotFound = errors.New("user: not found")

// Create registers a user.
func Create(db *gorm.DB, name, email string) (*models.User, error) {
	if name == "" {
		return nil, fmt.Errorf("user: name is required")
	}
	if email == "" {
		return nil, fmt.Errorf("user: email is required")
	}

	u := models.User{Name: name, Email: email}
	if err := db.Create(&u).Error; err != nil {
		return nil, fmt.Errorf("user: create %q: %w", email, err)
	}
	return &u, nil
}

// Get retrieves a user by ID.
func Get(db *gorm.DB, id uint) (*models.User, error) {
	var u models.User
	if err := db.Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user: %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("user: get %d: %w", id, err)
	}
	return &u, nil
}

// List returns all users ordered by name.
func List(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Order("name ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("user: list: %w", err)
	}
	return users, nil
}
