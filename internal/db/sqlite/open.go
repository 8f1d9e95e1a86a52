package sqlite

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (or creates) the SQLite database at path and returns a pooled
// handle shared by all repositories for the lifetime of the process.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db at %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		if cerr := db.Close(); cerr != nil {
			log.Println("[sqlite.Open] close after failed ping:", cerr)
		}
		return nil, fmt.Errorf("ping db at %s: %w", path, err)
	}

	log.Printf("[sqlite.Open] db opened path=%s", path)
	return db, nil
}
