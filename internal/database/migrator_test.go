package database

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrationsAreWellFormed(t *testing.T) {
	migrationsFS, err := MigrationsFS()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	names, err := fs.Glob(migrationsFS, "*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(names) == 0 {
		t.Fatalf("expected embedded migrations")
	}

	for _, name := range names {
		body, err := fs.ReadFile(migrationsFS, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !strings.Contains(string(body), "---- create above / drop below ----") {
			t.Fatalf("%s: expected a down section", name)
		}
	}
}
