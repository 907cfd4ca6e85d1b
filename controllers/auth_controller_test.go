package controllers

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/CUknot/forum_backend/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerForm(username, p1, p2 string) url.Values {
	return url.Values{"username": {username}, "password1": {p1}, "password2": {p2}}
}

func TestRegisterThenLoginIgnoresCase(t *testing.T) {
	f := newFixture(t)

	alice := f.anonymous()
	w := alice.post("/register/", registerForm("Alice", "s3cret-pass", "s3cret-pass"))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Contains(t, alice.cookies, middleware.DefaultCookieName)

	user, err := f.store.UserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	w = alice.get("/login/")
	assert.Equal(t, http.StatusFound, w.Code, "logged-in users skip the login page")

	for _, name := range []string{"alice", "ALICE"} {
		cl := f.anonymous()
		w := cl.post("/login/", url.Values{"username": {name}, "password": {"s3cret-pass"}})
		require.Equal(t, http.StatusFound, w.Code, name)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.Equal(t, http.StatusOK, cl.get("/create-room/").Code)
	}
}

func TestLoginFailuresLookAlike(t *testing.T) {
	f := newFixture(t)
	f.signUp("bob")

	cases := []url.Values{
		{"username": {"bob"}, "password": {"wrong-password"}},
		{"username": {"nobody"}, "password": {"password123"}},
		{"username": {""}, "password": {""}},
	}
	for _, form := range cases {
		w := f.anonymous().post("/login/", form)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, msgInvalidLogin, decodeBody(t, w)["error"])
	}
}

func TestLoginHonoursSafeNext(t *testing.T) {
	f := newFixture(t)
	f.signUp("bob")

	cl := f.anonymous()
	w := cl.get("/create-room/")
	require.Equal(t, http.StatusFound, w.Code)
	loginURL := w.Header().Get("Location")

	w = cl.post(loginURL, url.Values{"username": {"bob"}, "password": {"password123"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/create-room/", w.Header().Get("Location"))

	w = f.anonymous().post("/login/?next="+url.QueryEscape("//evil.example"), url.Values{"username": {"bob"}, "password": {"password123"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLogoutEndsSession(t *testing.T) {
	f := newFixture(t)
	bob, _ := f.signUp("bob")
	stolen := bob.cookies[middleware.DefaultCookieName]
	require.NotNil(t, stolen)

	w := bob.get("/logout/")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotContains(t, bob.cookies, middleware.DefaultCookieName)

	replay := f.anonymous()
	replay.cookies[stolen.Name] = stolen
	assert.Equal(t, http.StatusFound, replay.get("/create-room/").Code, "a logged-out session cookie is no longer accepted")
}

func TestRegisterErrorsAreFlashed(t *testing.T) {
	f := newFixture(t)
	f.signUp("bob")

	cases := []struct {
		name string
		form url.Values
		want string
	}{
		{"taken", registerForm("BOB", "s3cret-pass", "s3cret-pass"), "A user with that username already exists."},
		{"mismatch", registerForm("carol", "s3cret-pass", "other-pass"), "The two password fields didn't match."},
		{"short", registerForm("carol", "short", "short"), "Ensure this value has at least 8 characters."},
		{"charset", registerForm("carol smith", "s3cret-pass", "s3cret-pass"), "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cl := f.anonymous()
			w := cl.post("/register/", tc.form)
			require.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/register/", w.Header().Get("Location"))
			assert.NotContains(t, cl.cookies, middleware.DefaultCookieName)

			page := decodeBody(t, cl.get("/register/"))
			assert.Equal(t, []interface{}{tc.want}, page["messages"])

			again := decodeBody(t, cl.get("/register/"))
			assert.Empty(t, again["messages"], "flash messages show once")
		})
	}
}

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                  "/",
		"/room/3/":          "/room/3/",
		"https://evil.test": "/",
		"//evil.test":       "/",
		`/\evil.test`:       "/",
		"room/3/":           "/",
	}
	for in, want := range cases {
		assert.Equal(t, want, safeNext(in), in)
	}
}

func TestFlashCookieFollowsSecureSetting(t *testing.T) {
	f := newFixture(t)
	f.auth.Secure = true

	w := f.anonymous().post("/register/", registerForm("carol", "short", "short"))
	require.Equal(t, http.StatusFound, w.Code)

	var flash *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "flash" {
			flash = ck
		}
	}
	require.NotNil(t, flash)
	assert.True(t, flash.Secure)
}
