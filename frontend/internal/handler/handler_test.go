package handler

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoply-dev/shoply/frontend/internal/apiclient"
	"github.com/shoply-dev/shoply/frontend/internal/session"
	"github.com/shoply-dev/shoply/shared/config"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	base := template.Must(template.New("base.html").Parse(
		`{{if .Common.Error}}error:{{.Common.Error}};{{end}}{{if .Common.Success}}success:{{.Common.Success}};{{end}}login:{{.Common.Login}}`))

	sessions := session.NewStore(time.Hour, time.Hour)
	t.Cleanup(sessions.Stop)

	return &Handler{
		Templates: map[string]*template.Template{"page.html": base},
		Public:    config.Public{},
		Sessions:  sessions,
	}
}

func TestRequireSession(t *testing.T) {
	h := newTestHandler(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guarded := h.RequireSession(next)

	t.Run("no cookie redirects to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		guarded.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/account", nil))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("stale cookie redirects to login", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/account", nil)
		r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "gone"})
		w := httptest.NewRecorder()
		guarded.ServeHTTP(w, r)

		assert.Equal(t, http.StatusSeeOther, w.Code)
	})

	t.Run("live session passes through", func(t *testing.T) {
		id := h.Sessions.Create("token", "alice", "alice@example.com", false, time.Now().Add(time.Hour))

		r := httptest.NewRequest(http.MethodGet, "/account", nil)
		r.AddCookie(&http.Cookie{Name: session.CookieName, Value: id})
		w := httptest.NewRecorder()
		guarded.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestFlashRoundTrip(t *testing.T) {
	h := newTestHandler(t)

	// redirect sets the flash cookie
	w := httptest.NewRecorder()
	h.redirectWithFlash(w, httptest.NewRequest(http.MethodPost, "/login", nil), "/login", flashCookieError, "Invalid credentials")

	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// the next render consumes it
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	h.renderTemplate(w2, r, "page.html", nil)

	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "error:Invalid credentials;")

	// and expires the cookie
	var expired bool
	for _, c := range w2.Result().Cookies() {
		if c.Name == flashCookieError && c.MaxAge < 0 {
			expired = true
		}
	}
	assert.True(t, expired)
}

func TestRenderIncludesSessionIdentity(t *testing.T) {
	h := newTestHandler(t)
	id := h.Sessions.Create("token", "bob", "bob@example.com", true, time.Now().Add(time.Hour))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: id})
	w := httptest.NewRecorder()
	h.renderTemplate(w, r, "page.html", nil)

	assert.Contains(t, w.Body.String(), "login:bob")
}

func TestRenderUnknownTemplate(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.renderTemplate(w, httptest.NewRequest(http.MethodGet, "/", nil), "missing.html", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestApiErrorMessage(t *testing.T) {
	assert.Equal(t, "Email is already registered",
		apiErrorMessage(&apiclient.APIError{StatusCode: http.StatusConflict, Message: "Email is already registered"}))

	assert.Equal(t, "Service temporarily unavailable. Please try again later.",
		apiErrorMessage(assert.AnError))
}
