package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"money_tracker/internal/auth"
	"money_tracker/internal/docstore"
	"money_tracker/internal/middleware"
	"money_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testApp struct {
	router   *gin.Engine
	provider *auth.Provider
	store    *docstore.MemoryStore
	hook     *test.Hook
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	provider := auth.NewProvider(auth.NewMemoryAccounts(), auth.NewCacheRevocations(utils.NewMemoryCache()),
		auth.ProviderConfig{Secret: "test-secret", HashCost: bcrypt.MinCost}, log)
	store := docstore.NewMemoryStore()

	r := gin.New()
	Register(r, &Deps{
		Provider: provider,
		Profiles: store,
		Users:    docstore.NewCachedUserList(store, utils.NewMemoryCache(), 0, log),
		Log:      log,
	}, nil)
	return &testApp{router: r, provider: provider, store: store, hook: hook}
}

func (a *testApp) do(method, target string, form url.Values, session string) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if session != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: session})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func (a *testApp) signUp(t *testing.T, email, password string) string {
	t.Helper()
	w := a.do(http.MethodPost, "/signup", url.Values{"email": {email}, "password": {password}}, "")
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	return cookie.Value
}

func TestEntryPage_SignedOut(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/", "/index.html"} {
		w := app.do(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Create New Account")
		assert.Contains(t, w.Body.String(), "Sign In")
	}
}

func TestSignUp_ValidationError(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/signup", url.Values{"email": {"bad"}, "password": {"abcd"}}, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a valid email (e.g., user@example.com)")
	assert.Nil(t, sessionCookie(w))

	w = app.do(http.MethodPost, "/signup", url.Values{}, "")
	assert.Contains(t, w.Body.String(), "Please enter both email and password")
}

func TestSignUp_CreatesAccountAndProfile(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/signup", url.Values{"email": {"a@x.com"}, "password": {"secret1"}}, "")

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/home.html", w.Header().Get("Location"))
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	account, err := app.provider.CurrentUser(context.Background(), cookie.Value)
	require.NoError(t, err)
	profile, ok := app.store.Profile(account.UID)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", profile.Email)
}

func TestSignUp_ProviderErrors(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "a@x.com", "secret1")

	w := app.do(http.MethodPost, "/signup", url.Values{"email": {"a@x.com"}, "password": {"secret1"}}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "This email is already registered. Please sign in instead.")

	w = app.do(http.MethodPost, "/signup", url.Values{"email": {"b@x.com"}, "password": {"abcd"}}, "")
	assert.Contains(t, w.Body.String(), "Password is too weak. Please use at least 4 characters.")
	assert.Contains(t, w.Body.String(), "Create New Account")
}

func TestSignIn(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "a@x.com", "secret1")

	w := app.do(http.MethodPost, "/signin", url.Values{"email": {"a@x.com"}, "password": {"wrong1"}}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect password. Please try again.")

	w = app.do(http.MethodPost, "/signin", url.Values{"email": {"nobody@x.com"}, "password": {"secret1"}}, "")
	assert.Contains(t, w.Body.String(), "No account found with this email. Please sign up first.")

	w = app.do(http.MethodPost, "/signin", url.Values{"email": {" a@x.com "}, "password": {"secret1"}}, "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/home.html", w.Header().Get("Location"))
	assert.NotNil(t, sessionCookie(w))
}

func TestRedirects(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/home.html", nil, "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/index.html", w.Header().Get("Location"))

	token := app.signUp(t, "a@x.com", "secret1")

	w = app.do(http.MethodGet, "/index.html", nil, token)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/home.html", w.Header().Get("Location"))

	w = app.do(http.MethodGet, "/home.html", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@x.com")
}

func TestTrackerList(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "a@x.com", "secret1")

	w := app.do(http.MethodPost, "/users", url.Values{"name": {"alice"}, "allMoney": {"100"}, "email": {"alice@x.com"}}, token)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/home.html", w.Header().Get("Location"))

	w = app.do(http.MethodGet, "/home.html", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<span>Alice</span>")
	assert.Contains(t, body, "<span>100</span>")
	assert.Contains(t, body, "100.00")

	records, err := app.store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	w = app.do(http.MethodPost, "/users/"+records[0].ID+"/delete", url.Values{}, token)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = app.do(http.MethodGet, "/home.html", nil, token)
	assert.NotContains(t, w.Body.String(), "<span>Alice</span>")
}

func TestTrackerList_MalformedFormIsLogged(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "a@x.com", "secret1")

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("name=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	var logged bool
	for _, entry := range app.hook.AllEntries() {
		if entry.Message == "Add form bind failed" {
			logged = true
			assert.Equal(t, logrus.DebugLevel, entry.Level)
			assert.NotEmpty(t, entry.Data["error"])
		}
	}
	assert.True(t, logged)
}

func TestTrackerList_RequiresSession(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/users", url.Values{"name": {"alice"}}, "")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/index.html", w.Header().Get("Location"))
	records, err := app.store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSignOut(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "a@x.com", "secret1")

	w := app.do(http.MethodPost, "/signout", url.Values{}, token)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/index.html", w.Header().Get("Location"))
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)

	// the revoked token is signed out everywhere
	w = app.do(http.MethodGet, "/home.html", nil, token)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/index.html", w.Header().Get("Location"))
}

func TestValidateEndpoints(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		path    string
		value   string
		invalid bool
		message string
	}{
		{"/validate/email", "bad", true, "Please enter a valid email (e.g., user@example.com)"},
		{"/validate/email", " a@x.com ", false, ""},
		{"/validate/email", "", false, ""},
		{"/validate/password", "abc", true, "Password must be at least 4 characters long"},
		{"/validate/password", "abcd", false, ""},
	}
	for _, tc := range cases {
		w := app.do(http.MethodPost, tc.path, url.Values{"value": {tc.value}}, "")
		require.Equal(t, http.StatusOK, w.Code)

		var state struct {
			Invalid bool   `json:"invalid"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		assert.Equal(t, tc.invalid, state.Invalid, tc.path+" "+tc.value)
		assert.Equal(t, tc.message, state.Message, tc.path+" "+tc.value)
	}
}

func TestJSONAPI(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/api/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := app.signUp(t, "a@x.com", "secret1")
	bearer := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, req)
		return w
	}

	w = bearer(http.MethodGet, "/api/me", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"a@x.com"`)

	w = bearer(http.MethodPost, "/api/users", `{"name":"bob","allMoney":12.5,"email":""}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	_ = bearer(http.MethodPost, "/api/users", `{"name":"carl","allMoney":"7","email":"c@x.com"}`)

	w = bearer(http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Users []struct {
			ID       string          `json:"id"`
			AllMoney json.RawMessage `json:"allMoney"`
		} `json:"users"`
		Count int    `json:"count"`
		Total string `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)
	require.Len(t, list.Users, 2)
	assert.Equal(t, `12.5`, string(list.Users[0].AllMoney))
	assert.Equal(t, `"7"`, string(list.Users[1].AllMoney))
	assert.Equal(t, "19.5", list.Total)

	w = bearer(http.MethodPost, "/api/users", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = bearer(http.MethodDelete, "/api/users/"+created.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = bearer(http.MethodGet, "/api/users", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
