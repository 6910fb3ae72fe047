package card

import (
	"errors"
	"testing"

	"github.com/oriente/oriente/internal/history"
	"github.com/oriente/oriente/internal/models"
	"github.com/oriente/oriente/internal/ordering"
)

func TestMove_WithinColumn(t *testing.T) {
	f := newFixture(t)
	a := f.createCard(t, "A", f.todo.ID)
	f.createCard(t, "B", f.todo.ID)
	f.createCard(t, "C", f.todo.ID)

	moved, desc, err := Move(f.db, a.ID, MoveOpts{ColumnID: f.todo.ID, Position: 2}, &f.ana)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if desc != nil {
		t.Errorf("descriptor = %+v, want nil for same-column move", desc)
	}
	if moved.Position != 2 {
		t.Errorf("position = %d, want 2", moved.Position)
	}

	got := f.liveTitles(t, f.todo.ID)
	want := []string{"B", "C", "A"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	// Same-column moves fire no history.
	if actions := f.historyActions(t, a.ID); len(actions) != 1 {
		t.Errorf("history = %v, want only CREATED", actions)
	}
}

func TestMove_SamePositionIsNoop(t *testing.T) {
	f := newFixture(t)
	a := f.createCard(t, "A", f.todo.ID)
	f.createCard(t, "B", f.todo.ID)

	moved, desc, err := Move(f.db, a.ID, MoveOpts{ColumnID: f.todo.ID, Position: 0}, nil)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if desc != nil || moved.Position != 0 {
		t.Errorf("got desc=%v position=%d, want nil and 0", desc, moved.Position)
	}
	f.liveTitles(t, f.todo.ID)
}

func TestMove_CrossColumn(t *testing.T) {
	f := newFixture(t)
	a := f.createCard(t, "A", f.todo.ID)
	f.createCard(t, "B", f.todo.ID)
	f.createCard(t, "D1", f.doing.ID)
	f.createCard(t, "D2", f.doing.ID)

	moved, desc, err := Move(f.db, a.ID, MoveOpts{ColumnID: f.doing.ID, Position: 1}, &f.ana)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if desc == nil {
		t.Fatal("descriptor = nil for cross-column move")
	}
	if desc.FromColumn != "A Fazer" || desc.ToColumn != "Em Progresso" {
		t.Errorf("descriptor = %+v", desc)
	}
	if moved.ColumnID != f.doing.ID || moved.Position != 1 {
		t.Errorf("card at column %d position %d, want %d/1", moved.ColumnID, moved.Position, f.doing.ID)
	}

	// Source gap closed, destination gap opened.
	gotSrc := f.liveTitles(t, f.todo.ID)
	if len(gotSrc) != 1 || gotSrc[0] != "B" {
		t.Errorf("source order = %v, want [B]", gotSrc)
	}
	gotDst := f.liveTitles(t, f.doing.ID)
	want := []string{"D1", "A", "D2"}
	for i := range want {
		if gotDst[i] != want[i] {
			t.Fatalf("destination order = %v, want %v", gotDst, want)
		}
	}

	// One MOVED entry with the column names.
	var entry models.CardHistory
	err = f.db.Where("card_id = ? AND action = ?", a.ID, history.ActionMoved).First(&entry).Error
	if err != nil {
		t.Fatalf("load MOVED entry: %v", err)
	}
	if entry.Message != "Card movido por Ana de 'A Fazer' para 'Em Progresso'" {
		t.Errorf("message = %q", entry.Message)
	}
}

func TestMove_ToTerminalSetsCompletedAt(t *testing.T) {
	f := newFixture(t)
	a := f.createCard(t, "A", f.todo.ID)

	moved, _, err := Move(f.db, a.ID, MoveOpts{ColumnID: f.done.ID, Position: 0}, nil)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if moved.CompletedAt == nil {
		t.Fatal("CompletedAt = nil after move to terminal column")
	}
	first := *moved.CompletedAt

	// Moving within the terminal column keeps the original timestamp.
	b := f.createCard(t, "B", f.done.ID)
	_ = b
	moved, _, err = Move(f.db, a.ID, MoveOpts{ColumnID: f.done.ID, Position: 1}, nil)
	if err != nil {
		t.Fatalf("Move within terminal: %v", err)
	}
	if moved.CompletedAt == nil || !moved.CompletedAt.Equal(first) {
		t.Errorf("CompletedAt = %v, want original %v", moved.CompletedAt, first)
	}

	// Moving back out clears it.
	moved, _, err = Move(f.db, a.ID, MoveOpts{ColumnID: f.todo.ID, Position: 0}, nil)
	if err != nil {
		t.Fatalf("Move out of terminal: %v", err)
	}
	if moved.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want cleared", moved.CompletedAt)
	}
}

func TestMove_TerminalToTerminalKeepsTimestamp(t *testing.T) {
	f := newFixture(t)

	extra := models.Column{Title: "Done 2", Position: 3, ProjectID: f.projectID, IsTerminal: true}
	if err := f.db.Create(&extra).Error; err != nil {
		t.Fatalf("create column: %v", err)
	}

	a := f.createCard(t, "A", f.todo.ID)
	moved, _, err := Move(f.db, a.ID, MoveOpts{ColumnID: f.done.ID, Position: 0}, nil)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	first := *moved.CompletedAt

	moved, _, err = Move(f.db, a.ID, MoveOpts{ColumnID: extra.ID, Position: 0}, nil)
	if err != nil {
		t.Fatalf("Move terminal to terminal: %v", err)
	}
	if moved.CompletedAt == nil || !moved.CompletedAt.Equal(first) {
		t.Errorf("CompletedAt = %v, want original %v kept", moved.CompletedAt, first)
	}
}

func TestMove_DestinationMustBeInProject(t *testing.T) {
	f := newFixture(t)
	a := f.createCard(t, "A", f.todo.ID)

	other := models.Project{Name: "Other"}
	if err := f.db.Create(&other).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	foreign := models.Column{Title: "Foreign", ProjectID: other.ID}
	if err := f.db.Create(&foreign).Error; err != nil {
		t.Fatalf("create column: %v", err)
	}

	_, _, err := Move(f.db, a.ID, MoveOpts{ColumnID: foreign.ID, Position: 0}, nil)
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("error = %v, want ErrColumnNotFound", err)
	}
}

func TestMove_InvalidPositionLeavesBothColumnsUntouched(t *testing.T) {
	f := newFixture(t)
	a := f.createCard(t, "A", f.todo.ID)
	f.createCard(t, "B", f.todo.ID)
	f.createCard(t, "D1", f.doing.ID)

	_, _, err := Move(f.db, a.ID, MoveOpts{ColumnID: f.doing.ID, Position: 5}, nil)
	if !errors.Is(err, ordering.ErrPositionOutOfRange) {
		t.Fatalf("error = %v, want ErrPositionOutOfRange", err)
	}

	// Nothing moved, no history.
	gotSrc := f.liveTitles(t, f.todo.ID)
	if len(gotSrc) != 2 || gotSrc[0] != "A" {
		t.Errorf("source order = %v, want [A B] untouched", gotSrc)
	}
	gotDst := f.liveTitles(t, f.doing.ID)
	if len(gotDst) != 1 {
		t.Errorf("destination order = %v, want [D1] untouched", gotDst)
	}
	if actions := f.historyActions(t, a.ID); len(actions) != 1 {
		t.Errorf("history = %v, want only CREATED", actions)
	}
}

func TestMove_DeletedCardRefused(t *testing.T) {
	f := newFixture(t)
	a := f.createCard(t, "A", f.todo.ID)
	f.createCard(t, "B", f.todo.ID)
	f.createCard(t, "C", f.todo.ID)
	f.createCard(t, "D1", f.doing.ID)
	f.createCard(t, "D2", f.doing.ID)

	if _, err := SetStatus(f.db, a.ID, models.CardStatusDeleted); err != nil {
		t.Fatalf("soft-delete: %v", err)
	}

	// A deleted card gave up its slot; moving it would shift both columns
	// around a position it no longer holds.
	_, _, err := Move(f.db, a.ID, MoveOpts{ColumnID: f.doing.ID, Position: 0}, &f.ana)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}

	gotSrc := f.liveTitles(t, f.todo.ID)
	if len(gotSrc) != 2 || gotSrc[0] != "B" || gotSrc[1] != "C" {
		t.Errorf("source order = %v, want [B C]", gotSrc)
	}
	gotDst := f.liveTitles(t, f.doing.ID)
	if len(gotDst) != 2 || gotDst[0] != "D1" || gotDst[1] != "D2" {
		t.Errorf("destination order = %v, want [D1 D2]", gotDst)
	}
	if actions := f.historyActions(t, a.ID); len(actions) != 1 {
		t.Errorf("history = %v, want only CREATED", actions)
	}
}

func TestMove_AppendSlotInDestination(t *testing.T) {
	f := newFixture(t)
	a := f.createCard(t, "A", f.todo.ID)
	f.createCard(t, "D1", f.doing.ID)

	// Cross-column moves may target the append slot (position == count).
	moved, _, err := Move(f.db, a.ID, MoveOpts{ColumnID: f.doing.ID, Position: 1}, nil)
	if err != nil {
		t.Fatalf("Move to append slot: %v", err)
	}
	if moved.Position != 1 {
		t.Errorf("position = %d, want 1", moved.Position)
	}
}
