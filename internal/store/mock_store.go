// ABOUTME: Mock Store implementation for testing
// ABOUTME: Allows tests to run without SQLite

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockStore is an in-memory Store implementation for testing.
type MockStore struct {
	mu        sync.RWMutex
	projects  map[string]*Project // keyed by project ID
	inquiries map[string]*Inquiry // keyed by inquiry ID

	// FailAll makes every operation return the given error, for testing
	// degraded-storage behavior. Validation still runs first.
	FailAll error
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		projects:  make(map[string]*Project),
		inquiries: make(map[string]*Inquiry),
	}
}

var _ Store = (*MockStore)(nil)

// CreateProject stores a new project with a fresh ID.
func (m *MockStore) CreateProject(ctx context.Context, fields ProjectFields) (*Project, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	if m.FailAll != nil {
		return nil, m.FailAll
	}

	m.mu.Lock()
	defer m.mu.Unlock()

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
	m.projects[p.ID] = p

	result := *p
	return &result, nil
}

// GetProject retrieves a project by ID.
func (m *MockStore) GetProject(ctx context.Context, id string) (*Project, error) {
	if m.FailAll != nil {
		return nil, m.FailAll
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.projects[id]
	if !ok {
		return nil, ErrNotFound
	}

	result := *p
	return &result, nil
}

// ListProjects returns all projects ordered by creation time, oldest first.
func (m *MockStore) ListProjects(ctx context.Context) ([]*Project, error) {
	if m.FailAll != nil {
		return nil, m.FailAll
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	projects := make([]*Project, 0, len(m.projects))
	for _, p := range m.projects {
		result := *p
		projects = append(projects, &result)
	}
	sort.Slice(projects, func(i, j int) bool {
		if !projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].CreatedAt.Before(projects[j].CreatedAt)
		}
		return projects[i].ID < projects[j].ID
	})
	return projects, nil
}

// UpdateProject replaces every mutable field of the identified project.
func (m *MockStore) UpdateProject(ctx context.Context, id string, fields ProjectFields) (*Project, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	if m.FailAll != nil {
		return nil, m.FailAll
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.projects[id]
	if !ok {
		return nil, ErrNotFound
	}

	p.Title = fields.Title
	p.Category = fields.Category
	p.Image = fields.Image
	p.Year = fields.Year
	p.Location = fields.Location
	p.Description = fields.Description

	result := *p
	return &result, nil
}

// DeleteProject removes a project by ID.
func (m *MockStore) DeleteProject(ctx context.Context, id string) error {
	if m.FailAll != nil {
		return m.FailAll
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.projects[id]; !ok {
		return ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

// CreateInquiry stores a new inquiry with a fresh ID.
func (m *MockStore) CreateInquiry(ctx context.Context, name, email, message string) (*Inquiry, error) {
	switch {
	case name == "":
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	case email == "":
		return nil, &ValidationError{Field: "email", Reason: "must not be empty"}
	case message == "":
		return nil, &ValidationError{Field: "message", Reason: "must not be empty"}
	}
	if m.FailAll != nil {
		return nil, m.FailAll
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	q := &Inquiry{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	m.inquiries[q.ID] = q

	result := *q
	return &result, nil
}

// ListInquiries returns all inquiries ordered by creation time, oldest first.
func (m *MockStore) ListInquiries(ctx context.Context) ([]*Inquiry, error) {
	if m.FailAll != nil {
		return nil, m.FailAll
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	inquiries := make([]*Inquiry, 0, len(m.inquiries))
	for _, q := range m.inquiries {
		result := *q
		inquiries = append(inquiries, &result)
	}
	sort.Slice(inquiries, func(i, j int) bool {
		if !inquiries[i].CreatedAt.Equal(inquiries[j].CreatedAt) {
			return inquiries[i].CreatedAt.Before(inquiries[j].CreatedAt)
		}
		return inquiries[i].ID < inquiries[j].ID
	})
	return inquiries, nil
}

// DeleteInquiry removes an inquiry by ID.
func (m *MockStore) DeleteInquiry(ctx context.Context, id string) error {
	if m.FailAll != nil {
		return m.FailAll
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.inquiries[id]; !ok {
		return ErrNotFound
	}
	delete(m.inquiries, id)
	return nil
}
