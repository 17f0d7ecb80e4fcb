package router

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-shop/internal/apperror"
	"go-shop/internal/config"
	"go-shop/internal/models"
	"go-shop/internal/services"
	"go-shop/internal/session"
)

func testConfig() config.Config {
	return config.Config{
		Port:          "8080",
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		AdminUserID:   1,
	}
}

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return SetupRouter(db, testConfig(), zerolog.Nop()), mock
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func flashMessage(t *testing.T, res *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range res.Result().Cookies() {
		if c.Name == "flash" {
			msg, err := url.QueryUnescape(c.Value)
			require.NoError(t, err)
			return msg
		}
	}
	return ""
}

func hasSessionCookie(res *httptest.ResponseRecorder) bool {
	for _, c := range res.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" && c.MaxAge >= 0 {
			return true
		}
	}
	return false
}

type nopLookup struct{}

func (nopLookup) GetUserByID(int) (*models.User, error) {
	return nil, apperror.NewNotFoundError("user not found", nil)
}

// adminCookie mints a session credential for the privileged id with the same
// secret the router's session manager uses.
func adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	m := session.NewManager("test-secret", time.Hour, nopLookup{}, zerolog.Nop())
	res := httptest.NewRecorder()
	require.NoError(t, m.Login(res, &models.User{ID: 1}))
	for _, c := range res.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie minted")
	return nil
}

func adminRow() *sqlmock.Rows {
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin-pw"), bcrypt.MinCost)
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "created_at"}).
		AddRow(1, "admin@x.com", string(hash), "Admin", time.Now())
}

func TestRegisterFreshEmailAuthenticatesAndRedirects(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE email = ?")).
		WithArgs("a@x.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)")).
		WithArgs("a@x.com", sqlmock.AnyArg(), "A").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, name, created_at FROM users WHERE id = ?")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "created_at"}).
			AddRow(1, "a@x.com", "$2a$hash", "A", time.Now()))

	res := httptest.NewRecorder()
	r.ServeHTTP(res, postForm("/register", url.Values{
		"name":     {"A"},
		"email":    {"a@x.com"},
		"password": {"secret1"},
	}))

	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/all-products", res.Header().Get("Location"))
	assert.True(t, hasSessionCookie(res), "registration should auto-login")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmailRedirectsToLogin(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE email = ?")).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	res := httptest.NewRecorder()
	r.ServeHTTP(res, postForm("/register", url.Values{
		"name":     {"B"},
		"email":    {"a@x.com"},
		"password": {"other"},
	}))

	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/login", res.Header().Get("Location"))
	assert.Equal(t, services.MsgEmailTaken, flashMessage(t, res))
	assert.False(t, hasSessionCookie(res))
	// No INSERT expectation existed, so the user count is unchanged.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterValidationFailureHasNoSideEffect(t *testing.T) {
	r, mock := newTestRouter(t)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, postForm("/register", url.Values{"email": {"a@x.com"}}))

	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.Contains(t, res.Body.String(), "validation_failed")
	require.NoError(t, mock.ExpectationsWereMet(), "no query may run for an invalid submission")
}

func TestLoginUnknownEmail(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, name, created_at FROM users WHERE email = ?")).
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, postForm("/login", url.Values{
		"email":    {"nobody@x.com"},
		"password": {"pw"},
	}))

	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/login", res.Header().Get("Location"))
	assert.Equal(t, services.MsgEmailUnknown, flashMessage(t, res))
	assert.False(t, hasSessionCookie(res), "caller must remain unauthenticated")
}

func TestLoginWrongPassword(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, name, created_at FROM users WHERE email = ?")).
		WithArgs("admin@x.com").
		WillReturnRows(adminRow())

	res := httptest.NewRecorder()
	r.ServeHTTP(res, postForm("/login", url.Values{
		"email":    {"admin@x.com"},
		"password": {"wrong"},
	}))

	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/login", res.Header().Get("Location"))
	assert.Equal(t, services.MsgPasswordInvalid, flashMessage(t, res))
}

func TestNewPostAnonymousIsForbidden(t *testing.T) {
	r, mock := newTestRouter(t)

	get := httptest.NewRecorder()
	r.ServeHTTP(get, httptest.NewRequest("GET", "/new-post", nil))
	assert.Equal(t, http.StatusForbidden, get.Code, "gate must precede form display")

	post := httptest.NewRecorder()
	r.ServeHTTP(post, postForm("/new-post", url.Values{
		"name":        {"Mug"},
		"description": {"A mug."},
		"price":       {"9.99"},
		"image_url":   {"https://example.com/mug.jpg"},
	}))
	assert.Equal(t, http.StatusForbidden, post.Code)

	// No expectations were registered: no product row was created.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostAsAdminCreatesProduct(t *testing.T) {
	r, mock := newTestRouter(t)

	// Identity resolution for the session cookie.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, name, created_at FROM users WHERE id = ?")).
		WithArgs(1).
		WillReturnRows(adminRow())
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products (name, description, price, image_url, date_added) VALUES (?, ?, ?, ?, ?)")).
		WithArgs("Mug", "A mug.", 9.99, "https://example.com/mug.jpg", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, price, image_url, date_added FROM products WHERE id = ?")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "image_url", "date_added"}).
			AddRow(5, "Mug", "A mug.", 9.99, "https://example.com/mug.jpg", time.Now()))

	req := postForm("/new-post", url.Values{
		"name":        {"Mug"},
		"description": {"A mug."},
		"price":       {"9.99"},
		"image_url":   {"https://example.com/mug.jpg"},
	})
	req.AddCookie(adminCookie(t))

	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/all-products", res.Header().Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet(), "exactly one product row inserted")
}

func TestNewPostNonAdminUserIsForbidden(t *testing.T) {
	r, mock := newTestRouter(t)

	// A valid session for user 2, who is not in the privileged set.
	m := session.NewManager("test-secret", time.Hour, nopLookup{}, zerolog.Nop())
	login := httptest.NewRecorder()
	require.NoError(t, m.Login(login, &models.User{ID: 2}))

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, name, created_at FROM users WHERE id = ?")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "created_at"}).
			AddRow(2, "b@x.com", string(hash), "B", time.Now()))

	req := httptest.NewRequest("GET", "/new-post", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}

	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestLogoutRedirectsAndClearsSession(t *testing.T) {
	r, mock := newTestRouter(t)

	// Identity resolution still runs on /logout.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, name, created_at FROM users WHERE id = ?")).
		WithArgs(1).
		WillReturnRows(adminRow())

	req := httptest.NewRequest("GET", "/logout", nil)
	req.AddCookie(adminCookie(t))

	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/all-products", res.Header().Get("Location"))

	cleared := false
	for _, c := range res.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout must expire the session cookie")
}

func TestAllProductsListsForAnonymous(t *testing.T) {
	r, mock := newTestRouter(t)

	rows := sqlmock.NewRows([]string{"id", "name", "description", "price", "image_url", "date_added"}).
		AddRow(1, "Mug", "A mug.", 9.99, "https://example.com/mug.jpg", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, price, image_url, date_added FROM products ORDER BY id")).
		WillReturnRows(rows)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest("GET", "/all-products", nil))

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Mug")
}

func TestProductNotFound(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, price, image_url, date_added FROM products WHERE id = ?")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest("GET", "/product?id=99", nil))

	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"status":"ok"}`, res.Body.String())
}
