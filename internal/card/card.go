// Package card provides card lifecycle operations: creation, updates with
// audit records, soft/physical deletion, and the cross-column mover.
package card

import (
	"errors"
	"fmt"
	"time"

	"github.com/oriente/oriente/internal/diff"
	"github.com/oriente/oriente/internal/history"
	"github.com/oriente/oriente/internal/models"
	"github.com/oriente/oriente/internal/ordering"
	"gorm.io/gorm"
)

var (
	// ErrNotFound reports a card missing at invocation time.
	ErrNotFound = errors.New("card: not found")
	// ErrColumnNotFound reports a column missing from the card's project.
	ErrColumnNotFound = errors.New("card: column not found in project")
	// ErrUserNotFound reports an unknown assignee.
	ErrUserNotFound = errors.New("card: user not found")
	// ErrInvalidStatus reports a status outside the known set.
	ErrInvalidStatus = errors.New("card: invalid status")
	// ErrInvalidPriority reports a priority outside the known set.
	ErrInvalidPriority = errors.New("card: invalid priority")
)

var validStatuses = map[string]bool{
	models.CardStatusActive:   true,
	models.CardStatusArchived: true,
	models.CardStatusDeleted:  true,
}

var validPriorities = map[string]bool{
	models.CardPriorityLow:    true,
	models.CardPriorityMedium: true,
	models.CardPriorityHigh:   true,
	models.CardPriorityUrgent: true,
}

// LiveScope returns the dense ordering scope of a column's cards.
// Soft-deleted cards do not occupy position slots.
func LiveScope(columnID uint) ordering.Scope {
	return ordering.Scope{
		Model:        &models.Card{},
		ContainerKey: "column_id",
		ContainerID:  columnID,
		Live: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("status <> ?", models.CardStatusDeleted)
		},
	}
}

// CreateOpts holds parameters for creating a card.
type CreateOpts struct {
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
	ColumnID    uint
	Position    *int // nil appends at the end of the column
	AssigneeIDs []uint
	Locale      history.Locale
}

// Create inserts a new card into a column of the project, shifting existing
// cards when a position is given, and records a CREATED history entry in
// the same transaction.
func Create(db *gorm.DB, projectID uint, opts CreateOpts, actorID *uint) (*models.Card, error) {
	if opts.Title == "" {
		return nil, fmt.Errorf("card: title is required")
	}
	if opts.Priority == "" {
		opts.Priority = models.CardPriorityMedium
	}
	if !validPriorities[opts.Priority] {
		return nil, fmt.Errorf("card: priority %q: %w", opts.Priority, ErrInvalidPriority)
	}

	var col models.Column
	err := db.Where("id = ? AND project_id = ?", opts.ColumnID, projectID).First(&col).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("card: column %d in project %d: %w", opts.ColumnID, projectID, ErrColumnNotFound)
		}
		return nil, fmt.Errorf("card: check column %d: %w", opts.ColumnID, err)
	}

	c := models.Card{
		Title:       opts.Title,
		Description: opts.Description,
		Priority:    opts.Priority,
		DueDate:     opts.DueDate,
		ColumnID:    opts.ColumnID,
		ProjectID:   projectID,
		CreatedByID: actorID,
		Status:      models.CardStatusActive,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		s := LiveScope(opts.ColumnID)
		if opts.Position == nil {
			n, err := ordering.Count(tx, s)
			if err != nil {
				return err
			}
			c.Position = n
		} else {
			if _, err := ordering.ValidateInsert(tx, s, *opts.Position); err != nil {
				return err
			}
			if err := ordering.OpenGap(tx, s, *opts.Position); err != nil {
				return err
			}
			c.Position = *opts.Position
		}

		if err := tx.Create(&c).Error; err != nil {
			return fmt.Errorf("card: create: %w", err)
		}

		if len(opts.AssigneeIDs) > 0 {
			users, err := loadUsers(tx, opts.AssigneeIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&c).Association("Assignees").Append(users); err != nil {
				return fmt.Errorf("card: attach assignees: %w", err)
			}
		}

		_, err := history.Record(tx, history.RecordOpts{
			Action:    history.ActionCreated,
			CardID:    c.ID,
			ProjectID: projectID,
			ActorID:   actorID,
			Details:   history.Details{Title: c.Title},
			Locale:    opts.Locale,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return Get(db, c.ID)
}

// Get retrieves a card by ID with its assignees, tags, and column loaded.
func Get(db *gorm.DB, id uint) (*models.Card, error) {
	var c models.Card
	err := db.Preload("Assignees").Preload("Tags").Preload("Column").
		Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("card: %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("card: get %d: %w", id, err)
	}
	return &c, nil
}

// ListFilters holds optional filters for listing a project's cards.
type ListFilters struct {
	Status     string
	Priority   string
	ColumnID   uint
	AssigneeID uint
	DueSoon    bool // due within the next 7 days
}

// List returns a project's cards ordered by column position, then card
// position.
func List(db *gorm.DB, projectID uint, f ListFilters) ([]models.Card, error) {
	q := db.Model(&models.Card{}).
		Joins("JOIN columns ON columns.id = cards.column_id").
		Where("cards.project_id = ?", projectID)

	if f.Status != "" {
		q = q.Where("cards.status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("cards.priority = ?", f.Priority)
	}
	if f.ColumnID != 0 {
		q = q.Where("cards.column_id = ?", f.ColumnID)
	}
	if f.AssigneeID != 0 {
		q = q.Joins("JOIN card_assignees ON card_assignees.card_id = cards.id").
			Where("card_assignees.user_id = ?", f.AssigneeID)
	}
	if f.DueSoon {
		weekFromNow := time.Now().AddDate(0, 0, 7)
		q = q.Where("cards.due_date IS NOT NULL AND cards.due_date <= ?", weekFromNow)
	}

	var cards []models.Card
	err := q.Preload("Assignees").Preload("Column").
		Order("columns.position ASC, cards.position ASC").
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("card: list project %d: %w", projectID, err)
	}
	return cards, nil
}

// UpdateOpts holds optional field updates. Nil pointer fields are left
// untouched; SetDueDate and SetAssignees distinguish "clear" from "not
// provided".
type UpdateOpts struct {
	Title        *string
	Description  *string
	Priority     *string
	DueDate      *time.Time
	SetDueDate   bool
	AssigneeIDs  []uint
	SetAssignees bool
	Locale       history.Locale
}

// Update applies field and assignee changes, emitting one UPDATED record
// when any of title/description/deadline changed and one
// ASSIGNEE_ADDED/ASSIGNEE_REMOVED record per affected user, all in one
// transaction.
func Update(db *gorm.DB, id uint, opts UpdateOpts, actorID *uint) (*models.Card, error) {
	c, err := Get(db, id)
	if err != nil {
		return nil, err
	}
	if opts.Priority != nil && !validPriorities[*opts.Priority] {
		return nil, fmt.Errorf("card: priority %q: %w", *opts.Priority, ErrInvalidPriority)
	}

	before := snapshot(c)

	after := before
	if opts.Title != nil {
		if *opts.Title == "" {
			return nil, fmt.Errorf("card: title is required")
		}
		after.Title = *opts.Title
	}
	if opts.Description != nil {
		after.Description = *opts.Description
	}
	if opts.SetDueDate {
		after.DueDate = opts.DueDate
	}
	if opts.SetAssignees {
		after.AssigneeIDs = opts.AssigneeIDs
	}

	ch := diff.Detect(before, after)

	err = db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if opts.Title != nil {
			updates["title"] = *opts.Title
		}
		if opts.Description != nil {
			updates["description"] = *opts.Description
		}
		if opts.Priority != nil {
			updates["priority"] = *opts.Priority
		}
		if opts.SetDueDate {
			updates["due_date"] = opts.DueDate
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Card{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return fmt.Errorf("card: update %d: %w", id, err)
			}
		}

		if opts.SetAssignees {
			users, err := loadUsers(tx, opts.AssigneeIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(c).Association("Assignees").Replace(users); err != nil {
				return fmt.Errorf("card: replace assignees: %w", err)
			}
		}

		if ch.FieldsChanged() {
			_, err := history.Record(tx, history.RecordOpts{
				Action:    history.ActionUpdated,
				CardID:    c.ID,
				ProjectID: c.ProjectID,
				ActorID:   actorID,
				Details: history.Details{
					TitleChanged:       ch.TitleChanged,
					DescriptionChanged: ch.DescriptionChanged,
					DeadlineChanged:    ch.DeadlineChanged,
					OldTitle:           ch.OldTitle,
					NewTitle:           ch.NewTitle,
				},
				Locale: opts.Locale,
			})
			if err != nil {
				return err
			}
		}

		for _, userID := range ch.Added {
			if err := recordAssigneeChange(tx, c, history.ActionAssigneeAdded, userID, actorID, opts.Locale); err != nil {
				return err
			}
		}
		for _, userID := range ch.Removed {
			if err := recordAssigneeChange(tx, c, history.ActionAssigneeRemoved, userID, actorID, opts.Locale); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Get(db, id)
}

// SetStatus changes a card's status. Soft-deleting closes the card's
// position slot exactly like physical deletion; restoring a deleted card
// appends it at the end of its column.
func SetStatus(db *gorm.DB, id uint, status string) (*models.Card, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("card: status %q: %w", status, ErrInvalidStatus)
	}

	c, err := Get(db, id)
	if err != nil {
		return nil, err
	}
	if c.Status == status {
		return c, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		switch {
		case status == models.CardStatusDeleted:
			// Leave the live sequence: mark deleted first so the card drops
			// out of the scope, then close its slot.
			if err := tx.Model(&models.Card{}).Where("id = ?", id).
				Update("status", status).Error; err != nil {
				return fmt.Errorf("card: set status %d: %w", id, err)
			}
			return ordering.CloseGap(tx, LiveScope(c.ColumnID), c.Position)

		case c.Status == models.CardStatusDeleted:
			// Rejoin the live sequence at the end of the column.
			n, err := ordering.Count(tx, LiveScope(c.ColumnID))
			if err != nil {
				return err
			}
			err = tx.Model(&models.Card{}).Where("id = ?", id).
				Updates(map[string]interface{}{"status": status, "position": n}).Error
			if err != nil {
				return fmt.Errorf("card: restore %d: %w", id, err)
			}
			return nil

		default:
			if err := tx.Model(&models.Card{}).Where("id = ?", id).
				Update("status", status).Error; err != nil {
				return fmt.Errorf("card: set status %d: %w", id, err)
			}
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return Get(db, id)
}

// Delete physically removes a card and closes the position gap it leaves.
// History rows are kept: the audit log is append-only.
func Delete(db *gorm.DB, id uint) error {
	c, err := Get(db, id)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("card: delete comments of %d: %w", id, err)
		}
		// Only the join rows go with the card; CardHistory is append-only
		// and survives its subject.
		if err := tx.Select("Assignees", "Tags").Delete(&models.Card{ID: id}).Error; err != nil {
			return fmt.Errorf("card: delete %d: %w", id, err)
		}
		if c.Status == models.CardStatusDeleted {
			// Already out of the live sequence; nothing to shift.
			return nil
		}
		return ordering.CloseGap(tx, LiveScope(c.ColumnID), c.Position)
	})
}

func snapshot(c *models.Card) diff.Snapshot {
	ids := make([]uint, 0, len(c.Assignees))
	for _, u := range c.Assignees {
		ids = append(ids, u.ID)
	}
	return diff.Snapshot{
		Title:       c.Title,
		Description: c.Description,
		DueDate:     c.DueDate,
		AssigneeIDs: ids,
	}
}

// loadUsers fetches all requested users, failing when any is missing.
func loadUsers(tx *gorm.DB, ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	if err := tx.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("card: load users: %w", err)
	}
	if len(users) != len(ids) {
		return nil, fmt.Errorf("card: %d of %d users missing: %w", len(ids)-len(users), len(ids), ErrUserNotFound)
	}
	return users, nil
}

// recordAssigneeChange emits one assignee history record. The target
// user's name is resolved best-effort; a missing user (deleted since)
// still gets a record, just without a name suffix.
func recordAssigneeChange(tx *gorm.DB, c *models.Card, action string, userID uint, actorID *uint, loc history.Locale) error {
	var name string
	var u models.User
	if err := tx.Where("id = ?", userID).First(&u).Error; err == nil {
		name = u.Name
	}
	_, err := history.Record(tx, history.RecordOpts{
		Action:    action,
		CardID:    c.ID,
		ProjectID: c.ProjectID,
		ActorID:   actorID,
		Details:   history.Details{AssigneeID: userID, AssigneeName: name},
		Locale:    loc,
	})
	return err
}
