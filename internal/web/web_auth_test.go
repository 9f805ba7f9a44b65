package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Registration

func TestSignupPage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/signup")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "h1", "Sign Up for Matrix Game Platform")
	assertContainsElement(t, doc, "form[action='/signup'] input[name='user[username]']")
	assertContainsElement(t, doc, "form[action='/signup'] input[name='user[password_confirmation]']")
	assertContainsText(t, doc, "button[type='submit']", "Sign Up")
	assertContainsElement(t, doc, "main a[href='/login']")
}

func TestUsersNewRendersSignupPage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/users/new")
	assert.Equal(t, http.StatusOK, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), "h1", "Sign Up for Matrix Game Platform")
}

func TestSignupSucceeds(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/signup", signupForm("testuser", "test@example.com", "password123"))

	// Should redirect to home
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.True(t, ts.cookies.hasSession())
	assert.Equal(t, 1, ts.userCount())

	// Follow redirect and verify logged in
	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#notice", "Account created successfully!")
	assertContainsText(t, doc, "nav", "testuser")
}

func TestSignupViaUsersPath(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/users", signupForm("testuser", "test@example.com", "password123"))
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, 1, ts.userCount())
}

func TestSignupWithInvalidData(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{
		"user[username]":              {"ab"},
		"user[email]":                 {"invalid-email"},
		"user[password]":              {"123"},
		"user[password_confirmation]": {"different"},
	}
	rr := ts.post("/signup", form)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.False(t, ts.cookies.hasSession())
	assert.Equal(t, 0, ts.userCount())

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#error_explanation", "Username is too short")
	assertContainsText(t, doc, "#error_explanation", "Email is invalid")
	assertContainsText(t, doc, "#error_explanation", "Password is too short")
	assertContainsText(t, doc, "#error_explanation", "Password confirmation doesn't match")

	// Entered values are kept, passwords are not
	val, _ := doc.Find("input[name='user[email]']").Attr("value")
	assert.Equal(t, "invalid-email", val)
	_, hasValue := doc.Find("input[name='user[password]']").Attr("value")
	assert.False(t, hasValue)
}

func TestSignupDuplicateUsername(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createUser("existinguser", "existing@example.com", "password123")

	rr := ts.post("/signup", signupForm("existinguser", "new@example.com", "password123"))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), "body", "Username has already been taken")
	assert.False(t, ts.cookies.hasSession())
}

func TestSignupDuplicateEmail(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createUser("existinguser", "existing@example.com", "password123")

	rr := ts.post("/signup", signupForm("newuser", "EXISTING@example.com", "password123"))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), "body", "Email has already been taken")
}

func TestSignupIgnoresUnpermittedParams(t *testing.T) {
	ts := newWebTestServer(t)

	form := signupForm("testuser", "test@example.com", "password123")
	form.Set("user[admin]", "true")
	rr := ts.post("/signup", form)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, 1, ts.userCount())
}

func TestSignupWithoutUserParams(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/signup", url.Values{"other": {"x"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, ts.userCount())
}

// Login

func TestLoginPage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/login")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "h1", "Login to Matrix Game Platform")
	assertContainsText(t, doc, "button[type='submit']", "Log In")
	assertContainsElement(t, doc, "main a[href='/signup']")
}

func TestLoginSucceeds(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createUser("testuser", "test@example.com", "password123")

	rr := ts.post("/login", url.Values{"email": {"test@example.com"}, "password": {"password123"}})

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.True(t, ts.cookies.hasSession())

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#notice", "Logged in successfully!")
	assertContainsText(t, doc, "nav", "testuser")
}

func TestLoginIsCaseInsensitiveForEmail(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createUser("testuser", "test@example.com", "password123")

	ts.login("TEST@EXAMPLE.COM", "password123")
}

func TestLoginFailures(t *testing.T) {
	cases := map[string]url.Values{
		"wrong email":      {"email": {"wrong@example.com"}, "password": {"password123"}},
		"wrong password":   {"email": {"test@example.com"}, "password": {"wrongpassword"}},
		"missing email":    {"password": {"password123"}},
		"missing password": {"email": {"test@example.com"}},
	}

	for name, form := range cases {
		t.Run(name, func(t *testing.T) {
			ts := newWebTestServer(t)
			ts.createUser("testuser", "test@example.com", "password123")

			rr := ts.post("/login", form)

			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.False(t, ts.cookies.hasSession())

			doc := parseHTML(rr.Body)
			assertContainsText(t, doc, "#alert", "Invalid email or password")
			assertContainsText(t, doc, "h1", "Login to Matrix Game Platform")
		})
	}
}

// Logout

func TestLogoutWithDelete(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createUser("testuser", "test@example.com", "password123")
	ts.login("test@example.com", "password123")
	token := ts.cookies.cookies["session"].Value

	rr := ts.request(http.MethodDelete, "/logout", nil)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.False(t, ts.cookies.hasSession())

	// Server side session is gone too
	_, err := ts.app.AuthService.ValidateSession(t.Context(), token)
	assert.Error(t, err)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#notice", "Logged out successfully!")
	assertContainsElement(t, doc, "nav a[href='/login']")
}

func TestLogoutWithMethodOverride(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createUser("testuser", "test@example.com", "password123")
	ts.login("test@example.com", "password123")

	rr := ts.post("/logout", url.Values{"_method": {"delete"}})

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.False(t, ts.cookies.hasSession())
}

func TestLogoutWhenNotSignedIn(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.request(http.MethodDelete, "/logout", nil)
	assert.Equal(t, http.StatusFound, rr.Code)

	rr = ts.followRedirect(rr)
	assertContainsText(t, parseHTML(rr.Body), "#notice", "Logged out successfully!")
}

// Navigation

func TestNavigationBetweenForms(t *testing.T) {
	ts := newWebTestServer(t)

	doc := parseHTML(ts.get("/login").Body)
	href, ok := doc.Find("main a:contains('Sign up')").Attr("href")
	require.True(t, ok)
	assertContainsText(t, parseHTML(ts.get(href).Body), "h1", "Sign Up for Matrix Game Platform")

	doc = parseHTML(ts.get("/signup").Body)
	href, ok = doc.Find("main a:contains('Log in')").Attr("href")
	require.True(t, ok)
	assertContainsText(t, parseHTML(ts.get(href).Body), "h1", "Login to Matrix Game Platform")
}

func TestLoggedInUserIsRedirectedFromForms(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createUser("testuser", "test@example.com", "password123")
	ts.login("test@example.com", "password123")
	ts.get("/") // consume flash

	assert.Equal(t, http.StatusFound, ts.get("/login").Code)
	assert.Equal(t, http.StatusFound, ts.get("/signup").Code)
}
