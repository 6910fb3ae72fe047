package models

import (
	"reflect"
	"strings"
	"testing"
)

// gormTag extracts the gorm tag from a struct field.
func gormTag(t *testing.T, typ reflect.Type, fieldName string) string {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	return f.Tag.Get("gorm")
}

// assertGormTag checks that a struct field's gorm tag contains the expected value.
func assertGormTag(t *testing.T, typ reflect.Type, fieldName, expected string) {
	t.Helper()
	tag := gormTag(t, typ, fieldName)
	if !strings.Contains(tag, expected) {
		t.Errorf("%s.%s gorm tag = %q, want to contain %q", typ.Name(), fieldName, tag, expected)
	}
}

// assertFieldType checks that a struct field has the expected Go type.
func assertFieldType(t *testing.T, typ reflect.Type, fieldName, expectedType string) {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	got := f.Type.String()
	if got != expectedType {
		t.Errorf("%s.%s type = %q, want %q", typ.Name(), fieldName, got, expectedType)
	}
}

func TestCard_Fields(t *testing.T) {
	typ := reflect.TypeOf(Card{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "Title", "size:200")
	assertGormTag(t, typ, "Title", "not null")
	assertGormTag(t, typ, "Description", "type:text")
	assertGormTag(t, typ, "Position", "not null")
	assertGormTag(t, typ, "Position", "index")
	assertGormTag(t, typ, "Priority", "default:medium")
	assertGormTag(t, typ, "Status", "default:active")
	assertGormTag(t, typ, "Status", "index")
	assertGormTag(t, typ, "ColumnID", "index")
	assertGormTag(t, typ, "ProjectID", "index")
	assertGormTag(t, typ, "Assignees", "many2many:card_assignees")
	assertGormTag(t, typ, "Tags", "many2many:card_tags")

	assertFieldType(t, typ, "Position", "int")
	assertFieldType(t, typ, "DueDate", "*time.Time")
	assertFieldType(t, typ, "CompletedAt", "*time.Time")
	assertFieldType(t, typ, "CreatedByID", "*uint")
	assertFieldType(t, typ, "CreatedAt", "time.Time")
	assertFieldType(t, typ, "UpdatedAt", "time.Time")
}

func TestColumn_Fields(t *testing.T) {
	typ := reflect.TypeOf(Column{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "Title", "size:100")
	assertGormTag(t, typ, "Title", "not null")
	assertGormTag(t, typ, "Color", "default:#6366f1")
	assertGormTag(t, typ, "Position", "not null")
	assertGormTag(t, typ, "IsTerminal", "default:false")
	assertGormTag(t, typ, "ProjectID", "index")

	assertFieldType(t, typ, "IsTerminal", "bool")
	assertFieldType(t, typ, "Position", "int")
}

func TestCardHistory_Fields(t *testing.T) {
	typ := reflect.TypeOf(CardHistory{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "Action", "size:32")
	assertGormTag(t, typ, "Action", "index")
	assertGormTag(t, typ, "CardID", "index")
	assertGormTag(t, typ, "ProjectID", "index")
	assertGormTag(t, typ, "Message", "size:500")
	assertGormTag(t, typ, "Details", "type:json")
	assertGormTag(t, typ, "CreatedAt", "index")

	// Nil actor means the action was system-initiated.
	assertFieldType(t, typ, "ActorID", "*uint")
}

func TestUser_Fields(t *testing.T) {
	typ := reflect.TypeOf(User{})

	assertGormTag(t, typ, "Email", "uniqueIndex")
	assertGormTag(t, typ, "Name", "not null")
}

func TestProjectAndTag_Fields(t *testing.T) {
	proj := reflect.TypeOf(Project{})
	assertGormTag(t, proj, "Name", "not null")
	assertFieldType(t, proj, "OwnerID", "*uint")

	tag := reflect.TypeOf(Tag{})
	assertGormTag(t, tag, "Name", "size:50")
	assertGormTag(t, tag, "ProjectID", "index")
	assertGormTag(t, tag, "Cards", "many2many:card_tags")
}

func TestCardStatusAndPriorityConstants(t *testing.T) {
	statuses := []string{CardStatusActive, CardStatusArchived, CardStatusDeleted}
	want := []string{"active", "archived", "deleted"}
	for i, s := range statuses {
		if s != want[i] {
			t.Errorf("status constant = %q, want %q", s, want[i])
		}
	}

	priorities := []string{CardPriorityLow, CardPriorityMedium, CardPriorityHigh, CardPriorityUrgent}
	wantP := []string{"low", "medium", "high", "urgent"}
	for i, p := range priorities {
		if p != wantP[i] {
			t.Errorf("priority constant = %q, want %q", p, wantP[i])
		}
	}
}
