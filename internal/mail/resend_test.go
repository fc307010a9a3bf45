// ABOUTME: Tests for the Resend inquiry notifier
// ABOUTME: Uses an httptest server to assert request shape and failure handling

package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexforge/studio/internal/store"
)

func testInquiry() *store.Inquiry {
	return &store.Inquiry{
		ID:        "inq-1",
		Name:      "Maria Kovacs",
		Email:     "maria@example.com",
		Message:   "We would like a quote for a loft conversion.",
		CreatedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestResendNotifier_SendsEmail(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody sendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewResendNotifier(Config{
		APIKey:   "re_test_key",
		From:     "onboarding@resend.dev",
		To:       "inbox@studio.example.com",
		Endpoint: srv.URL,
	})

	require.NoError(t, n.InquiryReceived(context.Background(), testInquiry()))

	assert.Equal(t, "Bearer re_test_key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "onboarding@resend.dev", gotBody.From)
	assert.Equal(t, "inbox@studio.example.com", gotBody.To)
	assert.Equal(t, "New Contact Inquiry from Maria Kovacs", gotBody.Subject)
	assert.Contains(t, gotBody.HTML, "maria@example.com")
	assert.Contains(t, gotBody.HTML, "loft conversion")
}

func TestResendNotifier_DisabledWithoutKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	n := NewResendNotifier(Config{Endpoint: srv.URL})

	require.NoError(t, n.InquiryReceived(context.Background(), testInquiry()))
	assert.False(t, called, "notifier without API key must not call the API")
}

func TestResendNotifier_APIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	n := NewResendNotifier(Config{APIKey: "re_test_key", Endpoint: srv.URL})

	err := n.InquiryReceived(context.Background(), testInquiry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestRenderInquiryHTML_EscapesVisitorInput(t *testing.T) {
	inquiry := testInquiry()
	inquiry.Name = `<script>alert("x")</script>`

	html := renderInquiryHTML(inquiry)
	assert.NotContains(t, html, "<script>")
	assert.True(t, strings.Contains(html, "&lt;script&gt;"))
}
