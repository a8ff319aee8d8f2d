package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"usercrud/internal/models"
	"usercrud/internal/service"
	"usercrud/internal/views"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockUsers struct {
	users []models.User
	user  models.User

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	lastID     string
	lastInput  models.UserInput
	createCall int
	updateCall int
	deleteCall int
}

func (m *mockUsers) List(ctx context.Context) ([]models.User, error) {
	return m.users, m.listErr
}

func (m *mockUsers) Get(ctx context.Context, id string) (models.User, error) {
	m.lastID = id
	return m.user, m.getErr
}

func (m *mockUsers) Create(ctx context.Context, in models.UserInput) ([]models.User, error) {
	m.createCall++
	m.lastInput = in
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.users, nil
}

func (m *mockUsers) Update(ctx context.Context, id string, in models.UserInput) ([]models.User, error) {
	m.updateCall++
	m.lastID, m.lastInput = id, in
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.users, nil
}

func (m *mockUsers) Delete(ctx context.Context, id string) ([]models.User, error) {
	m.deleteCall++
	m.lastID = id
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	return m.users, nil
}

type mockHealth struct {
	err error
}

func (m *mockHealth) Ping(ctx context.Context) error { return m.err }

// ---- Shared Test Helpers ----

func newTestHandler(t *testing.T, s *service.Service, opts ...Option) *Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tmpl, err := views.Load()
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	return NewHandler(s, tmpl, nil, opts...)
}

func newTestRouter(t *testing.T, s *service.Service, opts ...Option) *gin.Engine {
	t.Helper()
	return newTestHandler(t, s, opts...).InitRoutes()
}

// formRequest builds a form-encoded request; a nil form sends no body.
func formRequest(method, target string, form url.Values) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
