package project

import (
	"errors"
	"testing"

	"github.com/oriente/oriente/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Project{}, &models.Column{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func TestCreate_SeedsDefaultColumns(t *testing.T) {
	db := testDB(t)

	p, err := Create(db, CreateOpts{Name: "Board", Description: "desc"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	loaded, err := Get(db, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(loaded.Columns) != 3 {
		t.Fatalf("columns = %d, want 3 defaults", len(loaded.Columns))
	}

	want := []string{"A Fazer", "Em Progresso", "Concluído"}
	for i, col := range loaded.Columns {
		if col.Title != want[i] {
			t.Errorf("column %d = %q, want %q", i, col.Title, want[i])
		}
		if col.Position != i {
			t.Errorf("column %d position = %d, want %d", i, col.Position, i)
		}
	}
	if !loaded.Columns[2].IsTerminal {
		t.Error("last default column is not terminal")
	}
}

func TestCreate_RequiresName(t *testing.T) {
	db := testDB(t)

	if _, err := Create(db, CreateOpts{}); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestGet_NotFound(t *testing.T) {
	db := testDB(t)

	_, err := Get(db, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	db := testDB(t)

	for _, name := range []string{"First", "Second"} {
		if _, err := Create(db, CreateOpts{Name: name}); err != nil {
			t.Fatalf("Create %q: %v", name, err)
		}
	}

	projects, err := List(db)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("projects = %d, want 2", len(projects))
	}
	if projects[0].Name != "First" {
		t.Errorf("first project = %q, want First", projects[0].Name)
	}
}
