package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"inkpress/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() {
		db, _ := database.GetDB().DB()
		db.Close()
	})

	engine, err := NewServer().initRouter()
	require.NoError(t, err)
	return engine
}

func postForm(engine *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func get(engine *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func sessionCookies(t *testing.T, w *httptest.ResponseRecorder) []*http.Cookie {
	t.Helper()
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected a session cookie")
	// The last write wins when a handler saves the session twice.
	last := cookies[len(cookies)-1]
	return []*http.Cookie{last}
}

func signUp(t *testing.T, engine *gin.Engine, email, username string) []*http.Cookie {
	t.Helper()
	w := postForm(engine, "/signup", url.Values{
		"email":    {email},
		"username": {username},
		"password": {"secret-password"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
	return sessionCookies(t, w)
}

func TestSignUpEstablishesSession(t *testing.T) {
	engine := setupTestEngine(t)

	cookies := signUp(t, engine, "admin@example.com", "admin")

	// The first user is the administrator and sees the admin controls.
	w := get(engine, "/", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New Post")
	assert.Contains(t, w.Body.String(), "Sign out")
}

func TestAdminGatedRoutes(t *testing.T) {
	engine := setupTestEngine(t)

	signUp(t, engine, "admin@example.com", "admin")
	reader := signUp(t, engine, "reader@example.com", "reader")

	// Anonymous callers are sent to sign in.
	w := get(engine, "/new-post", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/signin", w.Header().Get("Location"))

	// Standard users are forbidden.
	w = get(engine, "/new-post", reader)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = postForm(engine, "/new-post", url.Values{
		"title":    {"Hello"},
		"subtitle": {"sub"},
		"imgUrl":   {"https://img.example/1.png"},
		"body":     {"body"},
	}, reader)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminCreatesAndEditsPost(t *testing.T) {
	engine := setupTestEngine(t)

	admin := signUp(t, engine, "admin@example.com", "admin")

	w := postForm(engine, "/new-post", url.Values{
		"title":    {"Hello"},
		"subtitle": {"sub"},
		"imgUrl":   {"https://img.example/1.png"},
		"body":     {"<p>welcome</p>"},
	}, admin)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = get(engine, "/post/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello")

	w = postForm(engine, "/edit-post/1", url.Values{
		"title":    {"Hello again"},
		"subtitle": {"new sub"},
		"imgUrl":   {"https://img.example/1.png"},
		"body":     {"<p>welcome</p>"},
	}, admin)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/post/1", w.Header().Get("Location"))

	w = get(engine, "/post/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileIsSelfOnly(t *testing.T) {
	engine := setupTestEngine(t)

	signUp(t, engine, "admin@example.com", "admin")
	reader := signUp(t, engine, "reader@example.com", "reader")

	w := get(engine, "/user/reader", reader)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reader@example.com")

	w = get(engine, "/user/admin", reader)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(engine, "/user/reader", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSignInFlow(t *testing.T) {
	engine := setupTestEngine(t)

	signUp(t, engine, "user@example.com", "user")

	w := postForm(engine, "/signin", url.Values{
		"email":    {"user@example.com"},
		"password": {"wrong-password"},
	}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/signin", w.Header().Get("Location"))

	w = postForm(engine, "/signin", url.Values{
		"email":    {"user@example.com"},
		"password": {"secret-password"},
	}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLegacyDeleteRedirect(t *testing.T) {
	engine := setupTestEngine(t)

	w := get(engine, "/delete/5", nil)
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/delete-post/5", w.Header().Get("Location"))
}

func TestUnknownRouteIs404(t *testing.T) {
	engine := setupTestEngine(t)

	w := get(engine, "/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
