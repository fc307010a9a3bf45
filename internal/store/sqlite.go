// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides project/inquiry persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// storedTimeLayout is a fixed-width RFC 3339 encoding for timestamps.
// Timestamps are stored as TEXT and ordered lexicographically, so every
// value must have the same width; RFC3339Nano trims trailing fractional
// zeros, which misorders rows within the same second.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			image TEXT NOT NULL,
			year TEXT NOT NULL,
			location TEXT NOT NULL,
			description TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_projects_created
			ON projects(created_at, id);

		CREATE TABLE IF NOT EXISTS inquiries (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_inquiries_created
			ON inquiries(created_at, id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// CreateProject validates fields and inserts a new project with a fresh ID.
func (s *SQLiteStore) CreateProject(ctx context.Context, fields ProjectFields) (*Project, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	p := &Project{
		ID:          uuid.New().String(),
		Title:       fields.Title,
		Category:    fields.Category,
		Image:       fields.Image,
		Year:        fields.Year,
		Location:    fields.Location,
		Description: fields.Description,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, category, image, year, location, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Title, string(p.Category), p.Image, p.Year, p.Location, p.Description,
		p.CreatedAt.Format(storedTimeLayout))
	if err != nil {
		return nil, fmt.Errorf("inserting project: %w", err)
	}

	s.logger.Info("project created", "id", p.ID, "title", p.Title)
	return p, nil
}

// GetProject retrieves a single project by ID.
func (s *SQLiteStore) GetProject(ctx context.Context, id string) (*Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, category, image, year, location, description, created_at
		FROM projects WHERE id = ?
	`, id)
	return scanProject(row)
}

// ListProjects returns all projects ordered by creation time, oldest first.
func (s *SQLiteStore) ListProjects(ctx context.Context) ([]*Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, category, image, year, location, description, created_at
		FROM projects ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject replaces every mutable field of the identified project.
// The update and the created_at read run in one transaction so a
// concurrent delete cannot make a successful update report ErrNotFound.
func (s *SQLiteStore) UpdateProject(ctx context.Context, id string, fields ProjectFields) (*Project, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE projects
		SET title = ?, category = ?, image = ?, year = ?, location = ?, description = ?
		WHERE id = ?
	`, fields.Title, string(fields.Category), fields.Image, fields.Year, fields.Location,
		fields.Description, id)
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	var createdAt string
	if err := tx.QueryRowContext(ctx, `SELECT created_at FROM projects WHERE id = ?`, id).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("reading updated project: %w", err)
	}
	created, err := parseStoredTime(createdAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing update: %w", err)
	}

	s.logger.Info("project updated", "id", id)
	return &Project{
		ID:          id,
		Title:       fields.Title,
		Category:    fields.Category,
		Image:       fields.Image,
		Year:        fields.Year,
		Location:    fields.Location,
		Description: fields.Description,
		CreatedAt:   created,
	}, nil
}

// DeleteProject removes a project by ID.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Info("project deleted", "id", id)
	return nil
}

// CreateInquiry validates the submission and inserts a new inquiry.
func (s *SQLiteStore) CreateInquiry(ctx context.Context, name, email, message string) (*Inquiry, error) {
	switch {
	case name == "":
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	case email == "":
		return nil, &ValidationError{Field: "email", Reason: "must not be empty"}
	case message == "":
		return nil, &ValidationError{Field: "message", Reason: "must not be empty"}
	}

	q := &Inquiry{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inquiries (id, name, email, message, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, q.ID, q.Name, q.Email, q.Message, q.CreatedAt.Format(storedTimeLayout))
	if err != nil {
		return nil, fmt.Errorf("inserting inquiry: %w", err)
	}

	s.logger.Info("inquiry created", "id", q.ID)
	return q, nil
}

// ListInquiries returns all inquiries ordered by creation time, oldest first.
func (s *SQLiteStore) ListInquiries(ctx context.Context) ([]*Inquiry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, message, created_at
		FROM inquiries ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := make([]*Inquiry, 0)
	for rows.Next() {
		var q Inquiry
		var createdAt string
		if err := rows.Scan(&q.ID, &q.Name, &q.Email, &q.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning inquiry: %w", err)
		}
		q.CreatedAt, err = parseStoredTime(createdAt)
		if err != nil {
			return nil, err
		}
		inquiries = append(inquiries, &q)
	}
	return inquiries, rows.Err()
}

// DeleteInquiry removes an inquiry by ID.
func (s *SQLiteStore) DeleteInquiry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM inquiries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting inquiry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Info("inquiry deleted", "id", id)
	return nil
}

// rowScanner abstracts sql.Row and sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*Project, error) {
	var p Project
	var category, createdAt string
	err := row.Scan(&p.ID, &p.Title, &category, &p.Image, &p.Year, &p.Location,
		&p.Description, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	p.Category = Category(category)
	p.CreatedAt, err = parseStoredTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func parseStoredTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored timestamp %q: %w", value, err)
	}
	return t.UTC(), nil
}
