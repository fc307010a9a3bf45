// ABOUTME: Store interface and data types for studio persistence
// ABOUTME: Defines Project, Inquiry structs and the Store interface for database operations

package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// Category is the fixed set of portfolio categories a project may belong to.
type Category string

const (
	CategoryResidential Category = "Residential"
	CategoryCommercial  Category = "Commercial"
	CategoryUrban       Category = "Urban"
	CategoryInterior    Category = "Interior"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryResidential,
	CategoryCommercial,
	CategoryUrban,
	CategoryInterior,
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryResidential, CategoryCommercial, CategoryUrban, CategoryInterior:
		return true
	}
	return false
}

// Project is a public portfolio entry. Readable by anyone, written only
// through the admin surface.
type Project struct {
	ID          string
	Title       string
	Category    Category
	Image       string // URL of the hero image
	Year        string // free-form, not validated as numeric
	Location    string
	Description string
	CreatedAt   time.Time
}

// ProjectFields carries the mutable fields of a project for create and
// update. Updates replace every field; there is no partial merge.
type ProjectFields struct {
	Title       string
	Category    Category
	Image       string
	Year        string
	Location    string
	Description string
}

// Inquiry is a visitor-submitted contact message. Created by anyone,
// listed and deleted only through the admin surface. Inquiries are never
// updated.
type Inquiry struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

// ValidationError reports a rejected field on create or update. It is a
// distinct failure class from ErrNotFound and from authorization failures
// and is never translated into either.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate checks the required-field and category rules for project
// create/update. All fields are required non-empty; category must be one
// of the enumerated set.
func (f ProjectFields) Validate() error {
	switch {
	case f.Title == "":
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	case f.Image == "":
		return &ValidationError{Field: "image", Reason: "must not be empty"}
	case f.Year == "":
		return &ValidationError{Field: "year", Reason: "must not be empty"}
	case f.Location == "":
		return &ValidationError{Field: "location", Reason: "must not be empty"}
	case f.Description == "":
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if !f.Category.Valid() {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("%q is not a known category", f.Category)}
	}
	return nil
}

// ProjectStore defines persistence for portfolio projects.
type ProjectStore interface {
	// CreateProject validates fields, assigns a fresh ID and CreatedAt,
	// and persists the project.
	CreateProject(ctx context.Context, fields ProjectFields) (*Project, error)

	// GetProject retrieves a project by ID. Returns ErrNotFound if absent.
	GetProject(ctx context.Context, id string) (*Project, error)

	// ListProjects returns every project ordered by creation time, oldest
	// first (ties broken by ID). An empty collection yields an empty
	// slice, never an error.
	ListProjects(ctx context.Context) ([]*Project, error)

	// UpdateProject replaces every mutable field of the project with the
	// given fields. Returns ErrNotFound if absent.
	UpdateProject(ctx context.Context, id string, fields ProjectFields) (*Project, error)

	// DeleteProject removes a project. Returns ErrNotFound if absent,
	// including on a repeated delete.
	DeleteProject(ctx context.Context, id string) error
}

// InquiryStore defines persistence for contact inquiries.
type InquiryStore interface {
	// CreateInquiry validates that name, email and message are non-empty,
	// assigns a fresh ID and CreatedAt, and persists the inquiry. Email is
	// treated as an opaque string; its format is not checked.
	CreateInquiry(ctx context.Context, name, email, message string) (*Inquiry, error)

	// ListInquiries returns every inquiry ordered by creation time, oldest
	// first (ties broken by ID).
	ListInquiries(ctx context.Context) ([]*Inquiry, error)

	// DeleteInquiry removes an inquiry. Returns ErrNotFound if absent.
	DeleteInquiry(ctx context.Context, id string) error
}

// Store combines all persistence interfaces implemented by SQLiteStore.
type Store interface {
	ProjectStore
	InquiryStore
}
