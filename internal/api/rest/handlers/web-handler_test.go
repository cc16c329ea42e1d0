package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/starkteam/stark/internal/repository"
	"github.com/starkteam/stark/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMailer struct {
	lastCode string
}

func (m *stubMailer) SendCode(_ context.Context, _, _, code string) error {
	m.lastCode = code
	return nil
}

type webFixture struct {
	app    *fiber.App
	mailer *stubMailer
	users  repository.UserRepository
}

func newWebFixture(t *testing.T) *webFixture {
	t.Helper()

	users := repository.NewMemoryUserRepository()
	pending := repository.NewPendingRepository()
	mailer := &stubMailer{}
	store := session.New()

	auth := services.NewAuthService(users, pending, mailer, nil)
	profile := services.NewProfileService(users, nil, nil)

	app := fiber.New()
	NewWebHandler(auth, profile, store).SetupRoutes(app)

	return &webFixture{app: app, mailer: mailer, users: users}
}

func (f *webFixture) do(t *testing.T, method, target string, form url.Values, cookies []*http.Cookie) *http.Response {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func redirectTarget(t *testing.T, resp *http.Response) string {
	t.Helper()
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	return resp.Header.Get("Location")
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	f := newWebFixture(t)

	// register
	resp := f.do(t, "POST", "/register", url.Values{
		"name":     {"Someone"},
		"email":    {"A@Example.com"},
		"password": {"secret123"},
	}, nil)
	assert.Equal(t, "/verify", redirectTarget(t, resp))

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies, "registration must start a session")

	// immediate resend hits the cooldown
	resp = f.do(t, "GET", "/resend_code", nil, cookies)
	assert.Equal(t, "/verify", redirectTarget(t, resp))

	// wrong code leaves the flow open
	resp = f.do(t, "POST", "/verify", url.Values{"code": {"000000"}}, cookies)
	assert.Equal(t, "/verify", redirectTarget(t, resp))

	// correct code finishes registration and logs in
	resp = f.do(t, "POST", "/verify", url.Values{"code": {f.mailer.lastCode}}, cookies)
	assert.Equal(t, "/profile", redirectTarget(t, resp))

	exists, err := f.users.EmailExists("a@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	// the authenticated session may edit the profile
	resp = f.do(t, "POST", "/edit_profile", url.Values{"profession": {"designer"}}, cookies)
	assert.Equal(t, "/profile", redirectTarget(t, resp))

	user, err := f.users.FindUserByEmail("a@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.Profession)
	assert.Equal(t, "designer", *user.Profession)

	// logout clears the session
	resp = f.do(t, "GET", "/logout", nil, cookies)
	assert.Equal(t, "/", redirectTarget(t, resp))
}

func TestVerifyWithoutPendingSession(t *testing.T) {
	f := newWebFixture(t)

	resp := f.do(t, "POST", "/verify", url.Values{"code": {"123456"}}, nil)
	assert.Equal(t, "/register", redirectTarget(t, resp))
}

func TestRegisterValidationRedirects(t *testing.T) {
	f := newWebFixture(t)

	resp := f.do(t, "POST", "/register", url.Values{
		"email":    {"not-an-email"},
		"password": {"secret123"},
	}, nil)
	assert.Equal(t, "/register", redirectTarget(t, resp))

	resp = f.do(t, "POST", "/register", url.Values{
		"email":    {"a@example.com"},
		"password": {"short"},
	}, nil)
	assert.Equal(t, "/register", redirectTarget(t, resp))
}

func TestDuplicateRegistrationRedirectsToLogin(t *testing.T) {
	f := newWebFixture(t)

	form := url.Values{
		"email":    {"a@example.com"},
		"password": {"secret123"},
	}
	resp := f.do(t, "POST", "/register", form, nil)
	cookies := resp.Cookies()

	resp = f.do(t, "POST", "/verify", url.Values{"code": {f.mailer.lastCode}}, cookies)
	require.Equal(t, "/profile", redirectTarget(t, resp))

	resp = f.do(t, "POST", "/register", form, nil)
	assert.Equal(t, "/login", redirectTarget(t, resp))
}

func TestLoginRedirects(t *testing.T) {
	f := newWebFixture(t)

	// seed a verified user through the normal flow
	resp := f.do(t, "POST", "/register", url.Values{
		"email":    {"a@example.com"},
		"password": {"secret123"},
	}, nil)
	cookies := resp.Cookies()
	resp = f.do(t, "POST", "/verify", url.Values{"code": {f.mailer.lastCode}}, cookies)
	require.Equal(t, "/profile", redirectTarget(t, resp))

	resp = f.do(t, "POST", "/login", url.Values{
		"email":    {"a@example.com"},
		"password": {"wrong-password"},
	}, nil)
	assert.Equal(t, "/login", redirectTarget(t, resp))

	resp = f.do(t, "POST", "/login", url.Values{
		"email":    {"a@example.com"},
		"password": {"secret123"},
	}, nil)
	assert.Equal(t, "/profile", redirectTarget(t, resp))
}

func TestProfileRequiresSession(t *testing.T) {
	f := newWebFixture(t)

	resp := f.do(t, "GET", "/profile", nil, nil)
	assert.Equal(t, "/login", redirectTarget(t, resp))

	resp = f.do(t, "POST", "/edit_profile", url.Values{"profession": {"x"}}, nil)
	assert.Equal(t, "/login", redirectTarget(t, resp))
}

func TestResendWithoutPendingSession(t *testing.T) {
	f := newWebFixture(t)

	resp := f.do(t, "GET", "/resend_code", nil, nil)
	assert.Equal(t, "/register", redirectTarget(t, resp))
}
