package database

import (
	"strings"
	"testing"
)

func TestDSN_RequestsFoundRows(t *testing.T) {
	got := dsn("app", "secret", "db", "3306", "fitlink")
	// Matched-rows semantics: repositories use RowsAffected to tell a
	// missing row from a present one, so a resubmit with identical
	// values must still count as a hit.
	if !strings.Contains(got, "clientFoundRows=true") {
		t.Fatalf("dsn must request found-rows semantics, got %q", got)
	}
	if !strings.Contains(got, "parseTime=true") {
		t.Fatalf("dsn must enable parseTime, got %q", got)
	}
	if !strings.HasPrefix(got, "app:secret@tcp(db:3306)/fitlink?") {
		t.Fatalf("unexpected dsn shape: %q", got)
	}
}

func TestDSN_OmitsEmptyPassword(t *testing.T) {
	got := dsn("app", "", "localhost", "3306", "fitlink")
	if !strings.HasPrefix(got, "app@tcp(") {
		t.Fatalf("expected bare user when password is empty, got %q", got)
	}
}
