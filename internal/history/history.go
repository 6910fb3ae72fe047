// Package history provides the append-only audit log for cards. Records
// are created once, inside the transaction of the mutation they document,
// and never updated or deleted afterwards.
package history

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/oriente/oriente/internal/models"
	"gorm.io/gorm"
)

// Action kinds recorded in the audit log.
const (
	ActionCreated         = "CREATED"
	ActionUpdated         = "UPDATED"
	ActionMoved           = "MOVED"
	ActionCommentAdded    = "COMMENT_ADDED"
	ActionCommentDeleted  = "COMMENT_DELETED"
	ActionAssigneeAdded   = "ASSIGNEE_ADDED"
	ActionAssigneeRemoved = "ASSIGNEE_REMOVED"
	ActionTagAdded        = "TAG_ADDED"
	ActionTagRemoved      = "TAG_REMOVED"
)

// Details is the structured payload stored with each record. It feeds
// message generation and lets clients regenerate context later. Zero
// fields are omitted from the stored JSON.
type Details struct {
	Title              string `json:"title,omitempty"`
	OldTitle           string `json:"old_title,omitempty"`
	NewTitle           string `json:"new_title,omitempty"`
	TitleChanged       bool   `json:"title_changed,omitempty"`
	DescriptionChanged bool   `json:"description_changed,omitempty"`
	DeadlineChanged    bool   `json:"deadline_changed,omitempty"`
	FromColumn         string `json:"from_column,omitempty"`
	ToColumn           string `json:"to_column,omitempty"`
	AssigneeID         uint   `json:"assignee_id,omitempty"`
	AssigneeName       string `json:"assignee_name,omitempty"`
	TagName            string `json:"tag_name,omitempty"`
	CommentID          uint   `json:"comment_id,omitempty"`
}

// RecordOpts holds parameters for appending one history record.
type RecordOpts struct {
	Action    string
	CardID    uint
	ProjectID uint
	ActorID   *uint // nil means system-initiated
	Details   Details
	Message   string // explicit message; generated from templates when empty
	Locale    Locale // zero value falls back to LocalePT
}

// Record appends exactly one immutable history row. Pass the transaction
// handle of the enclosing mutation so a rollback discards both together.
// A failing actor-name lookup falls back to the system label and never
// blocks recording; a storage failure is returned and must abort the
// enclosing operation.
func Record(db *gorm.DB, opts RecordOpts) (*models.CardHistory, error) {
	loc := opts.Locale
	if loc == "" {
		loc = LocalePT
	}

	msg := opts.Message
	if msg == "" {
		msg = Message(loc, opts.Action, actorName(db, loc, opts.ActorID), opts.Details)
	}

	payload, err := json.Marshal(opts.Details)
	if err != nil {
		return nil, fmt.Errorf("history: marshal details for card %d: %w", opts.CardID, err)
	}

	entry := models.CardHistory{
		Action:    opts.Action,
		CardID:    opts.CardID,
		ProjectID: opts.ProjectID,
		ActorID:   opts.ActorID,
		Message:   msg,
		Details:   string(payload),
	}
	if err := db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("history: record %s for card %d: %w", opts.Action, opts.CardID, err)
	}
	return &entry, nil
}

// actorName resolves the actor's display name at record time. Nil actor or
// a failed lookup (e.g. deleted user) yields the locale's system label.
func actorName(db *gorm.DB, loc Locale, actorID *uint) string {
	if actorID == nil {
		return systemLabel(loc)
	}
	var u models.User
	if err := db.Where("id = ?", *actorID).First(&u).Error; err != nil {
		return systemLabel(loc)
	}
	return u.Name
}

// Page is one page of a card's history, newest first.
type Page struct {
	Entries    []models.CardHistory
	Total      int64
	TotalPages int
}

// List returns the history of a card within a project, ordered by creation
// time descending (id breaks ties for records in the same transaction).
// page starts at 1.
func List(db *gorm.DB, cardID, projectID uint, page, size int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}

	var total int64
	err := db.Model(&models.CardHistory{}).
		Where("card_id = ? AND project_id = ?", cardID, projectID).
		Count(&total).Error
	if err != nil {
		return nil, fmt.Errorf("history: count for card %d: %w", cardID, err)
	}

	var entries []models.CardHistory
	err = db.Where("card_id = ? AND project_id = ?", cardID, projectID).
		Preload("Actor").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("history: list for card %d: %w", cardID, err)
	}

	totalPages := 1
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(size)))
	}
	return &Page{Entries: entries, Total: total, TotalPages: totalPages}, nil
}
