package dbopen_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/pageproof/dbopen"
)

func TestOpenPragmas(t *testing.T) {
	db := dbopen.OpenMemory(t)

	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatal(err)
	}
	// :memory: may report "memory" instead of "wal"; the PRAGMA still ran.
	if journalMode != "wal" && journalMode != "memory" {
		t.Fatalf("journal_mode = %q, want wal or memory", journalMode)
	}

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatal(err)
	}
	if fk != 1 {
		t.Fatalf("foreign_keys = %d, want 1", fk)
	}

	var busyTimeout int
	if err := db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout); err != nil {
		t.Fatal(err)
	}
	if busyTimeout != 10_000 {
		t.Fatalf("busy_timeout = %d, want 10000", busyTimeout)
	}
}

func TestOpenWithSchema(t *testing.T) {
	db := dbopen.OpenMemory(t, dbopen.WithSchema(
		"CREATE TABLE captures (id TEXT PRIMARY KEY, page TEXT NOT NULL)"))

	if _, err := db.Exec("INSERT INTO captures (id, page) VALUES ('cap_1', 'Home')"); err != nil {
		t.Fatal(err)
	}
	var page string
	if err := db.QueryRow("SELECT page FROM captures WHERE id = 'cap_1'").Scan(&page); err != nil {
		t.Fatal(err)
	}
	if page != "Home" {
		t.Fatalf("page = %q, want Home", page)
	}
}

func TestRunTxCommitsAndRollsBack(t *testing.T) {
	db := dbopen.OpenMemory(t, dbopen.WithSchema(
		"CREATE TABLE rows (n INTEGER)"))
	ctx := context.Background()

	if err := dbopen.RunTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO rows (n) VALUES (1)")
		return err
	}); err != nil {
		t.Fatal(err)
	}

	errBoom := errors.New("boom")
	err := dbopen.RunTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO rows (n) VALUES (2)"); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("RunTx error: got %v, want %v", err, errBoom)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM rows").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("row count after rollback: got %d, want 1", count)
	}
}

func TestIsBusy(t *testing.T) {
	if dbopen.IsBusy(nil) {
		t.Error("IsBusy(nil) = true")
	}
	if !dbopen.IsBusy(errors.New("database is locked (5) (SQLITE_BUSY)")) {
		t.Error("IsBusy missed SQLITE_BUSY")
	}
	if dbopen.IsBusy(errors.New("syntax error")) {
		t.Error("IsBusy matched unrelated error")
	}
}
