// ABOUTME: Tests for the HTTP API handlers
// ABOUTME: Covers the full admin lifecycle, failure mapping, and public degradation

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexforge/studio/internal/auth"
	"github.com/apexforge/studio/internal/config"
	"github.com/apexforge/studio/internal/mail"
	"github.com/apexforge/studio/internal/store"
)

const (
	testUsername = "admin"
	testPassword = "correct horse battery staple"
)

// recordingNotifier captures inquiry notifications for assertions.
type recordingNotifier struct {
	received []*store.Inquiry
	fail     error
}

func (n *recordingNotifier) InquiryReceived(_ context.Context, q *store.Inquiry) error {
	n.received = append(n.received, q)
	return n.fail
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	return &config.Config{
		Server:   config.ServerConfig{HTTPAddr: "127.0.0.1:0"},
		Database: config.DatabaseConfig{Path: ":memory:"},
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret-that-is-32-bytes-long",
			AdminUsername:     testUsername,
			AdminPasswordHash: hash,
			TokenTTL:          config.DefaultTokenTTL,
		},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func newTestServer(t *testing.T, st store.Store, notifier *recordingNotifier) *httptest.Server {
	t.Helper()
	var n mail.Notifier
	if notifier != nil {
		n = notifier
	}
	s, err := New(testConfig(t), st, n)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func login(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/admin/login", "", LoginRequest{
		Username: testUsername,
		Password: testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decodeBody[TokenResponse](t, resp)
	require.Equal(t, "bearer", token.TokenType)
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func sampleProject() ProjectRequest {
	return ProjectRequest{
		Title:       "Hillside Residence",
		Category:    "Residential",
		Image:       "https://images.example.com/hillside.jpg",
		Year:        "2024",
		Location:    "Oslo, Norway",
		Description: "A terraced family home cut into the hillside.",
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := newTestServer(t, store.NewMockStore(), nil)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/admin/login", "", LoginRequest{
		Username: testUsername,
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "incorrect username or password", body["error"])
}

func TestLogin_WrongUsernameSameResponse(t *testing.T) {
	ts := newTestServer(t, store.NewMockStore(), nil)

	wrongUser := doJSON(t, http.MethodPost, ts.URL+"/api/admin/login", "", LoginRequest{
		Username: "root", Password: testPassword,
	})
	wrongPass := doJSON(t, http.MethodPost, ts.URL+"/api/admin/login", "", LoginRequest{
		Username: testUsername, Password: "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongUser.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)

	// The two failures must be indistinguishable on the wire.
	bodyUser := decodeBody[map[string]string](t, wrongUser)
	bodyPass := decodeBody[map[string]string](t, wrongPass)
	assert.Equal(t, bodyUser, bodyPass)
}

func TestAdminLifecycle(t *testing.T) {
	ts := newTestServer(t, store.NewMockStore(), nil)

	// Login with bad credentials is rejected
	bad := doJSON(t, http.MethodPost, ts.URL+"/api/admin/login", "", LoginRequest{
		Username: testUsername, Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, bad.StatusCode)

	token := login(t, ts)

	// Create a project
	created := decodeBody[ProjectResponse](t,
		doJSON(t, http.MethodPost, ts.URL+"/api/admin/projects", token, sampleProject()))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Hillside Residence", created.Title)
	assert.NotEmpty(t, created.CreatedAt)

	// Publicly visible without any token
	listed := decodeBody[[]ProjectResponse](t,
		doJSON(t, http.MethodGet, ts.URL+"/api/projects", "", nil))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// Delete it
	del := doJSON(t, http.MethodDelete, ts.URL+"/api/admin/projects/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, del.StatusCode)

	// Gone from the public listing
	empty := decodeBody[[]ProjectResponse](t,
		doJSON(t, http.MethodGet, ts.URL+"/api/projects", "", nil))
	assert.Len(t, empty, 0)

	// Second delete reports NotFound
	again := doJSON(t, http.MethodDelete, ts.URL+"/api/admin/projects/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
}

func TestUpdateProject_FullReplacement(t *testing.T) {
	ts := newTestServer(t, store.NewMockStore(), nil)
	token := login(t, ts)

	created := decodeBody[ProjectResponse](t,
		doJSON(t, http.MethodPost, ts.URL+"/api/admin/projects", token, sampleProject()))

	replacement := ProjectRequest{
		Title:       "Harbour Pavilion",
		Category:    "Commercial",
		Image:       "https://images.example.com/harbour.jpg",
		Year:        "2025",
		Location:    "Rotterdam, Netherlands",
		Description: "A timber event pavilion on the old harbour pier.",
	}
	updated := decodeBody[ProjectResponse](t,
		doJSON(t, http.MethodPut, ts.URL+"/api/admin/projects/"+created.ID, token, replacement))

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, replacement.Title, updated.Title)
	assert.Equal(t, replacement.Category, updated.Category)
	assert.Equal(t, replacement.Image, updated.Image)
	assert.Equal(t, replacement.Year, updated.Year)
	assert.Equal(t, replacement.Location, updated.Location)
	assert.Equal(t, replacement.Description, updated.Description)
}

func TestUpdateProject_NotFound(t *testing.T) {
	ts := newTestServer(t, store.NewMockStore(), nil)
	token := login(t, ts)

	resp := doJSON(t, http.MethodPut, ts.URL+"/api/admin/projects/no-such-id", token, sampleProject())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateProject_InvalidCategory(t *testing.T) {
	ts := newTestServer(t, store.NewMockStore(), nil)
	token := login(t, ts)

	req := sampleProject()
	req.Category = "Brutalist"
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/admin/projects", token, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	assert.Contains(t, body["error"], "category")
}

func TestProtectedEndpoints_RejectWithoutToken(t *testing.T) {
	ts := newTestServer(t, store.NewMockStore(), nil)

	endpoints := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/api/admin/projects", sampleProject()},
		{http.MethodPut, "/api/admin/projects/123", sampleProject()},
		{http.MethodDelete, "/api/admin/projects/123", nil},
		{http.MethodGet, "/api/admin/inquiries", nil},
		{http.MethodDelete, "/api/admin/inquiries/123", nil},
	}

	for _, ep := range endpoints {
		t.Run(ep.method+" "+ep.path, func(t *testing.T) {
			// Payload validity is irrelevant: authorization is checked first.
			resp := doJSON(t, ep.method, ts.URL+ep.path, "", ep.body)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			body := decodeBody[map[string]string](t, resp)
			assert.Equal(t, "unauthorized", body["error"])
		})
	}
}

func TestSubmitInquiry(t *testing.T) {
	notifier := &recordingNotifier{}
	ts := newTestServer(t, store.NewMockStore(), notifier)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/contact", "", InquiryRequest{
		Name:    "Maria Kovacs",
		Email:   "maria@example.com",
		Message: "We would like a quote for a loft conversion.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	q := decodeBody[InquiryResponse](t, resp)
	assert.NotEmpty(t, q.ID)
	assert.NotEmpty(t, q.CreatedAt)

	require.Len(t, notifier.received, 1)
	assert.Equal(t, q.ID, notifier.received[0].ID)
}

func TestSubmitInquiry_EmptyName(t *testing.T) {
	st := store.NewMockStore()
	ts := newTestServer(t, st, nil)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/contact", "", InquiryRequest{
		Name:    "",
		Email:   "maria@example.com",
		Message: "hello",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// No record was created
	inquiries, err := st.ListInquiries(context.Background())
	require.NoError(t, err)
	assert.Len(t, inquiries, 0)
}

func TestSubmitInquiry_NotifierFailureDoesNotFailRequest(t *testing.T) {
	notifier := &recordingNotifier{fail: errors.New("resend down")}
	ts := newTestServer(t, store.NewMockStore(), notifier)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/contact", "", InquiryRequest{
		Name:    "Ana",
		Email:   "a@example.com",
		Message: "hello",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListInquiries_AdminOnlyAndOrdered(t *testing.T) {
	st := store.NewMockStore()
	ts := newTestServer(t, st, nil)

	for _, name := range []string{"First", "Second", "Third"} {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/contact", "", InquiryRequest{
			Name: name, Email: name + "@example.com", Message: "hello",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	token := login(t, ts)
	inquiries := decodeBody[[]InquiryResponse](t,
		doJSON(t, http.MethodGet, ts.URL+"/api/admin/inquiries", token, nil))
	require.Len(t, inquiries, 3)
	assert.Equal(t, "First", inquiries[0].Name)
	assert.Equal(t, "Second", inquiries[1].Name)
	assert.Equal(t, "Third", inquiries[2].Name)
}

func TestDeleteInquiry(t *testing.T) {
	st := store.NewMockStore()
	ts := newTestServer(t, st, nil)

	q, err := st.CreateInquiry(context.Background(), "Ana", "a@example.com", "hello")
	require.NoError(t, err)

	token := login(t, ts)

	resp := doJSON(t, http.MethodDelete, ts.URL+"/api/admin/inquiries/"+q.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/admin/inquiries/"+q.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListProjects_DegradesToEmptyOnStorageFailure(t *testing.T) {
	st := store.NewMockStore()
	st.FailAll = errors.New("disk on fire")
	ts := newTestServer(t, st, nil)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/projects", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	projects := decodeBody[[]ProjectResponse](t, resp)
	assert.Len(t, projects, 0)
}

func TestAdminWrite_StorageFailureIsGeneric(t *testing.T) {
	st := store.NewMockStore()
	st.FailAll = errors.New("disk on fire")
	ts := newTestServer(t, st, nil)
	token := login(t, ts)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/admin/projects", token, sampleProject())
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "operation failed", body["error"])
	assert.NotContains(t, body["error"], "disk")
}

func TestRootAndHealth(t *testing.T) {
	ts := newTestServer(t, store.NewMockStore(), nil)

	root := decodeBody[map[string]string](t,
		doJSON(t, http.MethodGet, ts.URL+"/api/", "", nil))
	assert.Equal(t, "ApexForge Studio API", root["message"])

	health := decodeBody[map[string]string](t,
		doJSON(t, http.MethodGet, ts.URL+"/api/health", "", nil))
	assert.Equal(t, "ok", health["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, store.NewMockStore(), nil)

	// Generate at least one observation
	doJSON(t, http.MethodGet, ts.URL+"/api/health", "", nil)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSHeaders(t *testing.T) {
	ts := newTestServer(t, store.NewMockStore(), nil)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/projects", "", nil)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/contact", nil)
	require.NoError(t, err)
	preflight, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer preflight.Body.Close()
	assert.Equal(t, http.StatusNoContent, preflight.StatusCode)
	assert.Contains(t, preflight.Header.Get("Access-Control-Allow-Methods"), "PUT")
}
