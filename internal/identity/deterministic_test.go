package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestEntryUUIDIsStable(t *testing.T) {
	a := EntryUUID("5KsDBWseXY6QegucYAoacS")
	b := EntryUUID(" 5KsDBWseXY6QegucYAoacS ")
	if a == uuid.Nil || a != b {
		t.Fatalf("expected stable non-nil uuid, got %s and %s", a, b)
	}
	if EntryUUID("") != uuid.Nil {
		t.Fatalf("blank id must map to uuid.Nil")
	}
}

func TestEntryUUIDKeepsPushedRowIDs(t *testing.T) {
	id := uuid.New()
	if got := EntryUUID(id.String()); got != id {
		t.Fatalf("expected row uuid to round trip, got %s", got)
	}
}

func TestChildUUIDDependsOnPosition(t *testing.T) {
	parent := uuid.New()
	if ChildUUID(parent, "machine_image", 0) == ChildUUID(parent, "machine_image", 1) {
		t.Fatalf("positions must produce distinct ids")
	}
	if ChildUUID(parent, "machine_image", 0) == ChildUUID(parent, "machine_spec", 0) {
		t.Fatalf("kinds must produce distinct ids")
	}
}

func TestParseOrEntry(t *testing.T) {
	id := uuid.New()
	if got := ParseOrEntry(id.String()); got != id {
		t.Fatalf("expected parsed uuid, got %s", got)
	}
	if got := ParseOrEntry("abc123"); got != EntryUUID("abc123") {
		t.Fatalf("expected entry fallback, got %s", got)
	}
	if ParseOrEntry("  ") != uuid.Nil {
		t.Fatalf("blank input must yield uuid.Nil")
	}
}

func TestBusinessGoalUUIDIgnoresCase(t *testing.T) {
	if BusinessGoalUUID("Employee-Wellness") != BusinessGoalUUID("employee-wellness") {
		t.Fatalf("expected case insensitive ids")
	}
}
