// ABOUTME: JSON API handlers for the public site and the admin surface
// ABOUTME: Maps store failure classes onto HTTP statuses without cross-class leakage

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/apexforge/studio/internal/store"
)

// maxBodyBytes caps request bodies; payloads here are small forms.
const maxBodyBytes = 1 << 20

// LoginRequest is the JSON request body for POST /api/admin/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the JSON response for a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ProjectRequest is the JSON request body for project create and update.
type ProjectRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Year        string `json:"year"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// ProjectResponse is the JSON shape of a project.
type ProjectResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Year        string `json:"year"`
	Location    string `json:"location"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// InquiryRequest is the JSON request body for POST /api/contact.
type InquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// InquiryResponse is the JSON shape of an inquiry.
type InquiryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

func projectResponse(p *store.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Category:    string(p.Category),
		Image:       p.Image,
		Year:        p.Year,
		Location:    p.Location,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func inquiryResponse(q *store.Inquiry) InquiryResponse {
	return InquiryResponse{
		ID:        q.ID,
		Name:      q.Name,
		Email:     q.Email,
		Message:   q.Message,
		CreatedAt: q.CreatedAt.Format(time.RFC3339),
	}
}

// handleRoot handles GET /api/ with the API greeting.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/" && r.URL.Path != "/api" {
		s.sendJSONError(w, http.StatusNotFound, "not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "ApexForge Studio API"})
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLogin handles POST /api/admin/login. Authentication failure is a
// single uniform response whichever credential was wrong.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !s.creds.Verify(req.Username, req.Password) {
		s.logger.Info("login rejected", "username", req.Username)
		s.sendJSONError(w, http.StatusUnauthorized, "incorrect username or password")
		return
	}

	token, err := s.verifier.Generate(req.Username, s.cfg.Auth.TokenTTL)
	if err != nil {
		s.logger.Error("token generation failed", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "operation failed")
		return
	}

	s.logger.Info("admin login successful", "username", req.Username)
	s.writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// handleListProjects handles GET /api/projects. This is the public read
// path: a storage failure degrades to an empty list so the site keeps
// rendering, with the real error in the server log.
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		s.logger.Error("listing projects failed, serving empty list", "error", err)
		projects = nil
	}

	response := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		response = append(response, projectResponse(p))
	}
	s.writeJSON(w, http.StatusOK, response)
}

// handleCreateProject handles POST /api/admin/projects.
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := s.store.CreateProject(r.Context(), projectFields(req))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, projectResponse(p))
}

// handleUpdateProject handles PUT /api/admin/projects/{id}. Every field
// is replaced; there is no partial merge.
func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := s.store.UpdateProject(r.Context(), r.PathValue("id"), projectFields(req))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, projectResponse(p))
}

// handleDeleteProject handles DELETE /api/admin/projects/{id}.
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted"})
}

// handleSubmitInquiry handles POST /api/contact. The email notification
// is best-effort and never fails the submission.
func (s *Server) handleSubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var req InquiryRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := s.store.CreateInquiry(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	if s.notifier != nil {
		if err := s.notifier.InquiryReceived(r.Context(), q); err != nil {
			s.logger.Error("inquiry notification failed", "inquiry_id", q.ID, "error", err)
		}
	}

	s.writeJSON(w, http.StatusOK, inquiryResponse(q))
}

// handleListInquiries handles GET /api/admin/inquiries. Inquiries are
// returned oldest first.
func (s *Server) handleListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := s.store.ListInquiries(r.Context())
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	response := make([]InquiryResponse, 0, len(inquiries))
	for _, q := range inquiries {
		response = append(response, inquiryResponse(q))
	}
	s.writeJSON(w, http.StatusOK, response)
}

// handleDeleteInquiry handles DELETE /api/admin/inquiries/{id}.
func (s *Server) handleDeleteInquiry(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteInquiry(r.Context(), r.PathValue("id")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Inquiry deleted"})
}

func projectFields(req ProjectRequest) store.ProjectFields {
	return store.ProjectFields{
		Title:       req.Title,
		Category:    store.Category(req.Category),
		Image:       req.Image,
		Year:        req.Year,
		Location:    req.Location,
		Description: req.Description,
	}
}

func decodeJSON(body io.Reader, dst any) error {
	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}
	return nil
}

// writeStoreError maps a store failure onto the wire. Failure classes are
// never translated into one another: validation stays 400, a missing
// record stays 404, and anything else is a transient storage failure
// surfaced as a generic 503 with detail only in the log.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	var ve *store.ValidationError
	switch {
	case errors.As(err, &ve):
		s.sendJSONError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, store.ErrNotFound):
		s.sendJSONError(w, http.StatusNotFound, "not found")
	default:
		s.logger.Error("storage operation failed", "error", err)
		s.sendJSONError(w, http.StatusServiceUnavailable, "operation failed")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response failed", "error", err)
	}
}

func (s *Server) sendJSONError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
