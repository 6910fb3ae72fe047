package tag

import (
	"errors"
	"testing"

	"github.com/oriente/oriente/internal/card"
	"github.com/oriente/oriente/internal/history"
	"github.com/oriente/oriente/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testBoard creates an in-memory board with one project, one column, and
// one card; returns the db, project ID, and card ID.
func testBoard(t *testing.T) (*gorm.DB, uint, uint) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Project{}, &models.Column{},
		&models.Card{}, &models.Tag{}, &models.Comment{}, &models.CardHistory{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	p := models.Project{Name: "Test"}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	col := models.Column{Title: "Todo", ProjectID: p.ID}
	if err := db.Create(&col).Error; err != nil {
		t.Fatalf("create column: %v", err)
	}
	c, err := card.Create(db, p.ID, card.CreateOpts{Title: "Card", ColumnID: col.ID}, nil)
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	return db, p.ID, c.ID
}

func historyActions(t *testing.T, db *gorm.DB, cardID uint) []string {
	t.Helper()
	var entries []models.CardHistory
	if err := db.Where("card_id = ?", cardID).Order("id ASC").Find(&entries).Error; err != nil {
		t.Fatalf("load history: %v", err)
	}
	actions := make([]string, 0, len(entries))
	for _, e := range entries {
		actions = append(actions, e.Action)
	}
	return actions
}

func TestCreateAndList(t *testing.T) {
	db, projectID, _ := testBoard(t)

	if _, err := Create(db, projectID, "bug", "#ff0000"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := Create(db, projectID, "api", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tags, err := ListByProject(db, projectID)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("tags = %d, want 2", len(tags))
	}
	if tags[0].Name != "api" {
		t.Errorf("first tag = %q, want alphabetical api", tags[0].Name)
	}
}

func TestAttach_RecordsHistory(t *testing.T) {
	db, projectID, cardID := testBoard(t)
	tg, err := Create(db, projectID, "bug", "")
	if err != nil {
		t.Fatalf("Create tag: %v", err)
	}

	if err := Attach(db, cardID, tg.ID, nil, history.LocalePT); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	c, err := card.Get(db, cardID)
	if err != nil {
		t.Fatalf("Get card: %v", err)
	}
	if len(c.Tags) != 1 || c.Tags[0].Name != "bug" {
		t.Errorf("card tags = %v, want [bug]", c.Tags)
	}

	actions := historyActions(t, db, cardID)
	if len(actions) != 2 || actions[1] != history.ActionTagAdded {
		t.Errorf("history = %v, want [CREATED TAG_ADDED]", actions)
	}
}

func TestAttach_AlreadyAttachedIsNoop(t *testing.T) {
	db, projectID, cardID := testBoard(t)
	tg, _ := Create(db, projectID, "bug", "")

	if err := Attach(db, cardID, tg.ID, nil, history.LocalePT); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := Attach(db, cardID, tg.ID, nil, history.LocalePT); err != nil {
		t.Fatalf("Attach again: %v", err)
	}

	if actions := historyActions(t, db, cardID); len(actions) != 2 {
		t.Errorf("history = %v, want no duplicate TAG_ADDED", actions)
	}
}

func TestAttach_WrongProject(t *testing.T) {
	db, _, cardID := testBoard(t)

	other := models.Project{Name: "Other"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	tg, err := Create(db, other.ID, "foreign", "")
	if err != nil {
		t.Fatalf("Create tag: %v", err)
	}

	err = Attach(db, cardID, tg.ID, nil, history.LocalePT)
	if !errors.Is(err, ErrWrongProject) {
		t.Errorf("error = %v, want ErrWrongProject", err)
	}
}

func TestDetach_RecordsHistory(t *testing.T) {
	db, projectID, cardID := testBoard(t)
	tg, _ := Create(db, projectID, "bug", "")

	if err := Attach(db, cardID, tg.ID, nil, history.LocalePT); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := Detach(db, cardID, tg.ID, nil, history.LocalePT); err != nil {
		t.Fatalf("Detach: %v", err)
	}

	c, err := card.Get(db, cardID)
	if err != nil {
		t.Fatalf("Get card: %v", err)
	}
	if len(c.Tags) != 0 {
		t.Errorf("card tags = %v, want empty", c.Tags)
	}

	actions := historyActions(t, db, cardID)
	if len(actions) != 3 || actions[2] != history.ActionTagRemoved {
		t.Errorf("history = %v, want TAG_REMOVED last", actions)
	}
}

func TestDetach_NotAttachedIsNoop(t *testing.T) {
	db, projectID, cardID := testBoard(t)
	tg, _ := Create(db, projectID, "bug", "")

	if err := Detach(db, cardID, tg.ID, nil, history.LocalePT); err != nil {
		t.Fatalf("Detach: %v", err)
	}
	if actions := historyActions(t, db, cardID); len(actions) != 1 {
		t.Errorf("history = %v, want only CREATED", actions)
	}
}

func TestGet_NotFound(t *testing.T) {
	db, _, _ := testBoard(t)
	if _, err := Get(db, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
