package history

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/oriente/oriente/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB creates an in-memory SQLite database with the tables history needs.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.CardHistory{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	u := models.User{Name: name, Email: name + "@example.com"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user %q: %v", name, err)
	}
	return u.ID
}

func TestRecord_GeneratesMessage(t *testing.T) {
	db := testDB(t)
	actorID := createUser(t, db, "Ana")

	entry, err := Record(db, RecordOpts{
		Action:    ActionCreated,
		CardID:    1,
		ProjectID: 1,
		ActorID:   &actorID,
		Details:   Details{Title: "Implement login"},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if entry.Message != "Card criado por Ana" {
		t.Errorf("Message = %q, want %q", entry.Message, "Card criado por Ana")
	}
	if entry.Action != ActionCreated {
		t.Errorf("Action = %q, want %q", entry.Action, ActionCreated)
	}

	var d Details
	if err := json.Unmarshal([]byte(entry.Details), &d); err != nil {
		t.Fatalf("unmarshal details: %v", err)
	}
	if d.Title != "Implement login" {
		t.Errorf("Details.Title = %q, want %q", d.Title, "Implement login")
	}
}

func TestRecord_ExplicitMessageWins(t *testing.T) {
	db := testDB(t)

	entry, err := Record(db, RecordOpts{
		Action:    ActionUpdated,
		CardID:    1,
		ProjectID: 1,
		Message:   "custom message",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if entry.Message != "custom message" {
		t.Errorf("Message = %q, want %q", entry.Message, "custom message")
	}
}

func TestRecord_NilActorUsesSystemLabel(t *testing.T) {
	db := testDB(t)

	entry, err := Record(db, RecordOpts{
		Action:    ActionMoved,
		CardID:    1,
		ProjectID: 1,
		Details:   Details{FromColumn: "A", ToColumn: "B"},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	want := "Card movido por Sistema de 'A' para 'B'"
	if entry.Message != want {
		t.Errorf("Message = %q, want %q", entry.Message, want)
	}
	if entry.ActorID != nil {
		t.Errorf("ActorID = %v, want nil", entry.ActorID)
	}
}

func TestRecord_MissingActorFallsBackToSystem(t *testing.T) {
	db := testDB(t)
	ghost := uint(999)

	entry, err := Record(db, RecordOpts{
		Action:    ActionCreated,
		CardID:    1,
		ProjectID: 1,
		ActorID:   &ghost,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if entry.Message != "Card criado por Sistema" {
		t.Errorf("Message = %q, want system fallback", entry.Message)
	}
}

func TestRecord_EnglishLocale(t *testing.T) {
	db := testDB(t)
	actorID := createUser(t, db, "Ana")

	entry, err := Record(db, RecordOpts{
		Action:    ActionTagAdded,
		CardID:    1,
		ProjectID: 1,
		ActorID:   &actorID,
		Details:   Details{TagName: "bug"},
		Locale:    LocaleEN,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if entry.Message != "Tag added by Ana: bug" {
		t.Errorf("Message = %q, want %q", entry.Message, "Tag added by Ana: bug")
	}
}

func TestList_NewestFirstAndPaginated(t *testing.T) {
	db := testDB(t)

	for i := 0; i < 5; i++ {
		_, err := Record(db, RecordOpts{
			Action:    ActionUpdated,
			CardID:    7,
			ProjectID: 1,
			Message:   fmt.Sprintf("entry %d", i),
		})
		if err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	page, err := List(db, 7, 1, 1, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 5 {
		t.Errorf("Total = %d, want 5", page.Total)
	}
	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
	if len(page.Entries) != 2 {
		t.Fatalf("page size = %d, want 2", len(page.Entries))
	}
	if page.Entries[0].Message != "entry 4" || page.Entries[1].Message != "entry 3" {
		t.Errorf("first page = %q, %q; want entry 4, entry 3",
			page.Entries[0].Message, page.Entries[1].Message)
	}

	last, err := List(db, 7, 1, 3, 2)
	if err != nil {
		t.Fatalf("List last page: %v", err)
	}
	if len(last.Entries) != 1 || last.Entries[0].Message != "entry 0" {
		t.Errorf("last page = %v, want single entry 0", last.Entries)
	}
}

func TestList_ScopedToCardAndProject(t *testing.T) {
	db := testDB(t)

	for _, ids := range []struct{ card, project uint }{{1, 1}, {1, 2}, {2, 1}} {
		_, err := Record(db, RecordOpts{
			Action:    ActionCreated,
			CardID:    ids.card,
			ProjectID: ids.project,
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	page, err := List(db, 1, 1, 1, 20)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("Total = %d, want 1 (other cards and projects excluded)", page.Total)
	}
}

func TestList_EmptyHistory(t *testing.T) {
	db := testDB(t)

	page, err := List(db, 1, 1, 1, 20)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("Total = %d, want 0", page.Total)
	}
	if page.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", page.TotalPages)
	}
}
