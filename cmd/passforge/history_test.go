package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/passforge/internal/database"
	"github.com/nao1215/passforge/internal/model"
)

// recordAudit runs audit on lines and records it in dbDir. It returns
// the list path, which is the recorded source.
func recordAudit(t *testing.T, dbDir string, lines []string) string {
	t.Helper()

	list := writeList(t, lines)
	if _, _, err := executeCommand(t, "", "audit", "--list", list, "--db-dir", dbDir); err != nil {
		t.Fatalf("audit failed: %v", err)
	}
	return list
}

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()
	for _, name := range []string{"source", "sources", "compare", "delete", "json", "markdown", "db-dir"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
}

// TestRunHistoryCmd tests listing, comparing and deleting audits.
func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := executeCommand(t, "", "history", "--db-dir", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No audits recorded yet.") {
			t.Errorf("expected empty history message, got %q", stdout)
		}
	})

	t.Run("lists recorded audits", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		list := recordAudit(t, dbDir, auditFixture)

		stdout, _, err := executeCommand(t, "", "history", "--db-dir", dbDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Audit history (1 audits)") {
			t.Errorf("expected one audit, got:\n%s", stdout)
		}
		if !strings.Contains(stdout, list) {
			t.Errorf("expected source %q, got:\n%s", list, stdout)
		}
		assertNoCandidates(t, stdout)
	})

	t.Run("json listing filtered by source", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		first := recordAudit(t, dbDir, auditFixture)
		recordAudit(t, dbDir, []string{"abc"})

		stdout, _, err := executeCommand(t, "", "history", "--db-dir", dbDir, "--json", "--source", first)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var audits []model.AuditReport
		if err := json.Unmarshal([]byte(stdout), &audits); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if len(audits) != 1 {
			t.Fatalf("expected one audit, got %d", len(audits))
		}
		if audits[0].Source != first || audits[0].Total != 4 {
			t.Errorf("unexpected audit: %+v", audits[0])
		}
		if len(audits[0].Entries) != 0 {
			t.Error("expected no per-line entries in history")
		}
	})

	t.Run("lists sources", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		first := recordAudit(t, dbDir, auditFixture)
		second := recordAudit(t, dbDir, []string{"abc"})

		stdout, _, err := executeCommand(t, "", "history", "--db-dir", dbDir, "--sources")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Audited sources (2)") {
			t.Errorf("expected two sources, got:\n%s", stdout)
		}
		for _, s := range []string{first, second} {
			if !strings.Contains(stdout, s) {
				t.Errorf("expected %q in:\n%s", s, stdout)
			}
		}
	})

	t.Run("compares the latest two audits", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		list := writeList(t, auditFixture)
		for range 2 {
			if _, _, err := executeCommand(t, "", "audit", "--list", list, "--db-dir", dbDir); err != nil {
				t.Fatalf("audit failed: %v", err)
			}
		}

		stdout, _, err := executeCommand(t, "", "history", "--db-dir", dbDir, "--compare", "--source", list)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Audit comparison: "+list) {
			t.Errorf("expected comparison header, got:\n%s", stdout)
		}
		if !strings.Contains(stdout, "Unchanged") {
			t.Errorf("expected unchanged verdict, got:\n%s", stdout)
		}
	})

	t.Run("compare uses the only source by default", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		list := writeList(t, auditFixture)
		for range 2 {
			if _, _, err := executeCommand(t, "", "audit", "--list", list, "--db-dir", dbDir); err != nil {
				t.Fatalf("audit failed: %v", err)
			}
		}

		stdout, _, err := executeCommand(t, "", "history", "--db-dir", dbDir, "--compare", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var cmp model.AuditComparison
		if err := json.Unmarshal([]byte(stdout), &cmp); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if cmp.Source != list {
			t.Errorf("expected source %q, got %q", list, cmp.Source)
		}
	})

	t.Run("compare needs two audits", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		list := recordAudit(t, dbDir, auditFixture)

		_, _, err := executeCommand(t, "", "history", "--db-dir", dbDir, "--compare", "--source", list)
		if !errors.Is(err, database.ErrNotEnoughAudits) {
			t.Errorf("expected ErrNotEnoughAudits, got %v", err)
		}
	})

	t.Run("compare without database is an error", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeCommand(t, "", "history", "--db-dir", t.TempDir(), "--compare", "--source", "stdin")
		if !errors.Is(err, database.ErrDatabaseNotFound) {
			t.Errorf("expected ErrDatabaseNotFound, got %v", err)
		}
	})

	t.Run("deletes a source", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		list := recordAudit(t, dbDir, auditFixture)
		recordAudit(t, dbDir, []string{"abc"})

		stdout, _, err := executeCommand(t, "", "history", "--db-dir", dbDir, "--delete", "--source", list)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Deleted 1 audit(s)") {
			t.Errorf("expected delete confirmation, got %q", stdout)
		}

		stdout, _, err = executeCommand(t, "", "history", "--db-dir", dbDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(stdout, list) {
			t.Errorf("expected %q to be deleted, got:\n%s", list, stdout)
		}
	})
}

// TestRunHistoryCmd_FlagErrors tests invalid flag combinations.
func TestRunHistoryCmd_FlagErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{
			name:    "delete requires source",
			args:    []string{"history", "--delete"},
			wantMsg: "--delete requires --source",
		},
		{
			name:    "compare and delete conflict",
			args:    []string{"history", "--delete", "--compare", "--source", "x"},
			wantMsg: "cannot be used together",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append(tt.args, "--db-dir", t.TempDir())
			_, _, err := executeCommand(t, "", args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected %q error, got %v", tt.wantMsg, err)
			}
		})
	}
}

// TestRunHistoryCmd_Language tests that history output follows --lang.
func TestRunHistoryCmd_Language(t *testing.T) {
	t.Parallel()

	dbDir := t.TempDir()
	list := recordAudit(t, dbDir, auditFixture)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "german listing",
			args: []string{"history", "--lang", "de", "--db-dir", dbDir},
			want: []string{"Prüfverlauf (1 Prüfungen):", "Datum", "Quelle"},
		},
		{
			name: "japanese sources",
			args: []string{"history", "--lang", "ja", "--db-dir", dbDir, "--sources"},
			want: []string{"監査済みのソース (1件):", list},
		},
		{
			name: "german empty history",
			args: []string{"history", "--lang", "de", "--db-dir", t.TempDir()},
			want: []string{"Noch keine Prüfungen gespeichert."},
		},
	}

	for _, tt := range tests {
		// Subtests share one database, so they run in order.
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, "", tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(stdout, w) {
					t.Errorf("expected %q in:\n%s", w, stdout)
				}
			}
			if strings.Contains(stdout, "Audit history") || strings.Contains(stdout, "No audits recorded") {
				t.Errorf("expected no English output, got:\n%s", stdout)
			}
		})
	}
}
