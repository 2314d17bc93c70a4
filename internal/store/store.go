// Package store persists projects to SQLite. It is the persistence
// collaborator for the timing core: the editor never holds a storage
// handle, the host application calls Save at checkpoints (line commit,
// structural edits).
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/littletheworld/LyrPro/internal/project"

	_ "modernc.org/sqlite"
)

// Store wraps the project database.
type Store struct {
	db *sql.DB
}

// ProjectInfo is a listing row: metadata without the line payload.
type ProjectInfo struct {
	ID        string
	Title     string
	Artist    string
	AudioPath string
	Lines     int
	UpdatedAt time.Time
}

// DefaultDBPath returns the default database location.
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "lyrpro", "lyrpro.sqlite")
}

const schema = `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		artist TEXT NOT NULL DEFAULT '',
		credits TEXT NOT NULL DEFAULT '',
		coverRef TEXT NOT NULL DEFAULT '',
		audioPath TEXT NOT NULL DEFAULT '',
		createdAt REAL NOT NULL,
		updatedAt REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS lines (
		id TEXT PRIMARY KEY,
		projectId TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		chars TEXT NOT NULL,
		time TEXT NOT NULL,
		adlibs TEXT NOT NULL DEFAULT '[]',
		groupId TEXT NOT NULL DEFAULT '',
		label TEXT NOT NULL DEFAULT '',
		singer INTEGER NOT NULL DEFAULT 1,
		UNIQUE(projectId, position)
	);
`

// Open opens (or creates) the database at path with WAL enabled.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenMemory opens an in-memory database. Used by tests.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes the full project, replacing any stored lines. Track
// slices round-trip exactly, including unsynced (null) stamps.
func (s *Store) Save(p *project.Project) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	now := unixFloat(time.Now())
	_, err = tx.Exec(`
		INSERT INTO projects (id, title, artist, credits, coverRef, audioPath, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			credits = excluded.credits,
			coverRef = excluded.coverRef,
			audioPath = excluded.audioPath,
			updatedAt = excluded.updatedAt
	`, p.ID, p.Title, p.Artist, p.Credits, p.CoverRef, p.AudioPath, now, now)
	if err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM lines WHERE projectId = ?`, p.ID); err != nil {
		return fmt.Errorf("clear lines: %w", err)
	}

	for pos := range p.Lines {
		l := &p.Lines[pos]
		chars, err := json.Marshal(l.Chars)
		if err != nil {
			return fmt.Errorf("marshal chars: %w", err)
		}
		stamps, err := json.Marshal(l.Time)
		if err != nil {
			return fmt.Errorf("marshal time: %w", err)
		}
		adlibs, err := json.Marshal(l.AdLibs)
		if err != nil {
			return fmt.Errorf("marshal adlibs: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO lines (id, projectId, position, chars, time, adlibs, groupId, label, singer)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, l.ID, p.ID, pos, string(chars), string(stamps), string(adlibs), l.GroupID, l.Label, l.Singer)
		if err != nil {
			return fmt.Errorf("insert line %d: %w", pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load reads a full project by id.
func (s *Store) Load(id string) (*project.Project, error) {
	row := s.db.QueryRow(`
		SELECT id, title, artist, credits, coverRef, audioPath
		FROM projects
		WHERE id = ?
	`, id)

	var p project.Project
	if err := row.Scan(&p.ID, &p.Title, &p.Artist, &p.Credits, &p.CoverRef, &p.AudioPath); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project %s not found", id)
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, chars, time, adlibs, groupId, label, singer
		FROM lines
		WHERE projectId = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l project.Line
		var chars, stamps, adlibs string
		if err := rows.Scan(&l.ID, &chars, &stamps, &adlibs, &l.GroupID, &l.Label, &l.Singer); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		if err := json.Unmarshal([]byte(chars), &l.Chars); err != nil {
			return nil, fmt.Errorf("unmarshal chars: %w", err)
		}
		if err := json.Unmarshal([]byte(stamps), &l.Time); err != nil {
			return nil, fmt.Errorf("unmarshal time: %w", err)
		}
		if err := json.Unmarshal([]byte(adlibs), &l.AdLibs); err != nil {
			return nil, fmt.Errorf("unmarshal adlibs: %w", err)
		}
		p.Lines = append(p.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}

	// Repair any track whose stamps drifted from its text.
	p.Normalize()
	return &p, nil
}

// FindByTitle returns the id of the project with the given title, or
// an error when none or several match.
func (s *Store) FindByTitle(title string) (string, error) {
	rows, err := s.db.Query(`SELECT id FROM projects WHERE title = ?`, title)
	if err != nil {
		return "", fmt.Errorf("query by title: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("no project titled %q", title)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%d projects titled %q, use the id", len(ids), title)
	}
}

// List returns all stored projects, most recently updated first.
func (s *Store) List() ([]ProjectInfo, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.title, p.artist, p.audioPath, p.updatedAt,
		       (SELECT COUNT(*) FROM lines WHERE projectId = p.id)
		FROM projects p
		ORDER BY p.updatedAt DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var infos []ProjectInfo
	for rows.Next() {
		var info ProjectInfo
		var updatedAt float64
		if err := rows.Scan(&info.ID, &info.Title, &info.Artist, &info.AudioPath, &updatedAt, &info.Lines); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		info.UpdatedAt = timeFromUnix(updatedAt)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes a project and its lines.
func (s *Store) Delete(id string) error {
	if _, err := s.db.Exec(`DELETE FROM lines WHERE projectId = ?`, id); err != nil {
		return fmt.Errorf("delete lines: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func unixFloat(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
