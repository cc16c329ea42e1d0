package handlers

import (
	"errors"
	"io"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/starkteam/stark/internal/api/rest/middleware"
	"github.com/starkteam/stark/internal/domain"
	"github.com/starkteam/stark/internal/dto"
	"github.com/starkteam/stark/internal/helper"
	"github.com/starkteam/stark/internal/services"
)

var demoVideos = []domain.Video{
	{Title: "Python basics", Filename: "python_intro.mp4"},
	{Title: "HTML lesson", Filename: "html_tutorial.mp4"},
	{Title: "CSS design", Filename: "css_design.mp4"},
	{Title: "Getting started with JavaScript", Filename: "js_start.mp4"},
}

type WebHandler struct {
	auth    services.AuthService
	profile services.ProfileService
	store   *session.Store
}

func NewWebHandler(auth services.AuthService, profile services.ProfileService, store *session.Store) *WebHandler {
	return &WebHandler{auth: auth, profile: profile, store: store}
}

func (h *WebHandler) SetupRoutes(app *fiber.App) {
	app.Get("/", h.Index)

	app.Get("/register", h.ShowRegister)
	app.Post("/register", h.Register)
	app.Get("/resend_code", h.ResendCode)
	app.Get("/verify", h.ShowVerify)
	app.Post("/verify", h.Verify)

	app.Get("/login", h.ShowLogin)
	app.Post("/login", h.Login)
	app.Get("/videos", h.Videos)
	app.Get("/logout", h.Logout)

	requireUser := middleware.RequireUser(h.store)
	app.Get("/profile", requireUser, h.Profile)
	app.Get("/edit_profile", requireUser, h.ShowEditProfile)
	app.Post("/edit_profile", requireUser, h.EditProfile)
}

// render drains queued flash messages into the template data and saves
// the session so each notice is shown exactly once.
func (h *WebHandler) render(ctx *fiber.Ctx, sess *session.Session, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Flashes"] = helper.TakeFlashes(sess)
	if err := sess.Save(); err != nil {
		log.Printf("session save error: %v", err)
	}
	return ctx.Render(name, data)
}

func (h *WebHandler) flashAndRedirect(ctx *fiber.Ctx, sess *session.Session, level, text, location string) error {
	helper.AddFlash(sess, level, text)
	if err := sess.Save(); err != nil {
		log.Printf("session save error: %v", err)
	}
	return ctx.Redirect(location)
}

func (h *WebHandler) session(ctx *fiber.Ctx) (*session.Session, error) {
	return h.store.Get(ctx)
}

func (h *WebHandler) Index(ctx *fiber.Ctx) error {
	sess, err := h.session(ctx)
	if err != nil {
		return err
	}
	return h.render(ctx, sess, "index", nil)
}

func (h *WebHandler) ShowRegister(ctx *fiber.Ctx) error {
	sess, err := h.session(ctx)
	if err != nil {
		return err
	}
	return h.render(ctx, sess, "register", nil)
}

func (h *WebHandler) Register(ctx *fiber.Ctx) error {
	sess, err := h.session(ctx)
	if err != nil {
		return err
	}

	input := dto.RegisterRequest{
		Name:     ctx.FormValue("name"),
		Email:    ctx.FormValue("email"),
		Password: ctx.FormValue("password"),
	}

	regErr := h.auth.Register(ctx.UserContext(), input)
	switch {
	case regErr == nil:
		sess.Set(helper.SessionPendingEmail, services.NormalizeEmail(input.Email))
		return h.flashAndRedirect(ctx, sess, "info",
			"A verification code has been sent to your email. Please check it.", "/verify")

	case errors.Is(regErr, services.ErrInvalidEmail):
		return h.flashAndRedirect(ctx, sess, "danger", "Please enter a valid email address.", "/register")

	case errors.Is(regErr, services.ErrPasswordTooShort):
		return h.flashAndRedirect(ctx, sess, "danger", "The password must be at least 6 characters.", "/register")

	case errors.Is(regErr, services.ErrDuplicateAccount):
		return h.flashAndRedirect(ctx, sess, "warning",
			"This email is already registered. Please log in.", "/login")

	default:
		log.Printf("register failed for %q: %v", input.Email, regErr)
		return h.flashAndRedirect(ctx, sess, "danger",
			"Failed to send the verification code. Please try again.", "/register")
	}
}

func (h *WebHandler) ResendCode(ctx *fiber.Ctx) error {
	sess, err := h.session(ctx)
	if err != nil {
		return err
	}

	email, _ := sess.Get(helper.SessionPendingEmail).(string)
	if email == "" {
		return h.flashAndRedirect(ctx, sess, "warning", "No email found to send to.", "/register")
	}

	resendErr := h.auth.ResendCode(ctx.UserContext(), email)

	var cooldown *services.CooldownError
	switch {
	case resendErr == nil:
		return h.flashAndRedirect(ctx, sess, "info", "A new code has been sent.", "/verify")

	case errors.Is(resendErr, services.ErrNoPendingFlow):
		return h.flashAndRedirect(ctx, sess, "warning", "No email found to send to.", "/register")

	case errors.As(resendErr, &cooldown):
		return h.flashAndRedirect(ctx, sess, "warning", cooldown.Error(), "/verify")

	default:
		log.Printf("resend failed for %q: %v", email, resendErr)
		return h.flashAndRedirect(ctx, sess, "danger", "Failed to resend the code.", "/verify")
	}
}

func (h *WebHandler) ShowVerify(ctx *fiber.Ctx) error {
	sess, err := h.session(ctx)
	if err != nil {
		return err
	}

	email, _ := sess.Get(helper.SessionPendingEmail).(string)
	if email == "" {
		return h.flashAndRedirect(ctx, sess, "warning", "Please start the registration first.", "/register")
	}
	if !h.auth.PendingExists(email) {
		return h.flashAndRedirect(ctx, sess, "danger",
			"Verification details not found or expired.", "/register")
	}

	return h.render(ctx, sess, "verify", fiber.Map{
		"Email":      email,
		"TTLMinutes": int(services.CodeTTL.Minutes()),
	})
}

func (h *WebHandler) Verify(ctx *fiber.Ctx) error {
	sess, err := h.session(ctx)
	if err != nil {
		return err
	}

	email, _ := sess.Get(helper.SessionPendingEmail).(string)
	if email == "" {
		return h.flashAndRedirect(ctx, sess, "warning", "Please start the registration first.", "/register")
	}

	code := strings.TrimSpace(ctx.FormValue("code"))

	_, verifyErr := h.auth.VerifyCode(email, code)
	switch {
	case verifyErr == nil:
		sess.Delete(helper.SessionPendingEmail)
		sess.Set(helper.SessionUserEmail, services.NormalizeEmail(email))
		return h.flashAndRedirect(ctx, sess, "success",
			"Registration complete. Welcome!", "/profile")

	case errors.Is(verifyErr, services.ErrNoPendingFlow):
		return h.flashAndRedirect(ctx, sess, "danger",
			"Verification details not found or expired.", "/register")

	case errors.Is(verifyErr, services.ErrCodeExpired):
		sess.Delete(helper.SessionPendingEmail)
		return h.flashAndRedirect(ctx, sess, "danger",
			"The code has expired. Please register again.", "/register")

	case errors.Is(verifyErr, services.ErrCodeMismatch):
		return h.flashAndRedirect(ctx, sess, "danger",
			"The code is incorrect. Please check again.", "/verify")

	default:
		log.Printf("verify failed for %q: %v", email, verifyErr)
		return h.flashAndRedirect(ctx, sess, "danger", "Verification failed. Please try again.", "/verify")
	}
}

func (h *WebHandler) ShowLogin(ctx *fiber.Ctx) error {
	sess, err := h.session(ctx)
	if err != nil {
		return err
	}
	return h.render(ctx, sess, "login", nil)
}

func (h *WebHandler) Login(ctx *fiber.Ctx) error {
	sess, err := h.session(ctx)
	if err != nil {
		return err
	}

	input := dto.LoginRequest{
		Email:    ctx.FormValue("email"),
		Password: ctx.FormValue("password"),
	}

	user, loginErr := h.auth.Login(input)
	if loginErr != nil {
		return h.flashAndRedirect(ctx, sess, "danger", "Email or password is incorrect.", "/login")
	}

	sess.Set(helper.SessionUserEmail, user.Email)
	return h.flashAndRedirect(ctx, sess, "success", "You have logged in successfully.", "/profile")
}

func (h *WebHandler) Profile(ctx *fiber.Ctx) error {
	sess, err := h.session(ctx)
	if err != nil {
		return err
	}

	email, _ := ctx.Locals("userEmail").(string)
	user, profErr := h.profile.GetProfile(email)
	if profErr != nil {
		return h.flashAndRedirect(ctx, sess, "danger", "User details not found.", "/login")
	}

	return h.render(ctx, sess, "profile", fiber.Map{
		"User":  user,
		"Email": email,
	})
}

func (h *WebHandler) ShowEditProfile(ctx *fiber.Ctx) error {
	sess, err := h.session(ctx)
	if err != nil {
		return err
	}

	email, _ := ctx.Locals("userEmail").(string)
	user, profErr := h.profile.GetProfile(email)
	if profErr != nil {
		return h.flashAndRedirect(ctx, sess, "danger", "User details not found.", "/login")
	}

	return h.render(ctx, sess, "edit_profile", fiber.Map{
		"User":  user,
		"Email": email,
	})
}

func (h *WebHandler) EditProfile(ctx *fiber.Ctx) error {
	sess, err := h.session(ctx)
	if err != nil {
		return err
	}

	email, _ := ctx.Locals("userEmail").(string)

	input := dto.UpdateProfileRequest{
		FullName:   ctx.FormValue("full_name"),
		Age:        ctx.FormValue("age"),
		Profession: ctx.FormValue("profession"),
		Gender:     ctx.FormValue("gender"),
		Image:      readUpload(ctx, "profile_image"),
	}

	if _, updErr := h.profile.UpdateProfile(ctx.UserContext(), email, input); updErr != nil {
		log.Printf("update profile failed for %q: %v", email, updErr)
		return h.flashAndRedirect(ctx, sess, "danger", "Could not update the profile.", "/edit_profile")
	}

	return h.flashAndRedirect(ctx, sess, "success", "Profile updated!", "/profile")
}

func (h *WebHandler) Videos(ctx *fiber.Ctx) error {
	sess, err := h.session(ctx)
	if err != nil {
		return err
	}
	return h.render(ctx, sess, "videos", fiber.Map{"Videos": demoVideos})
}

func (h *WebHandler) Logout(ctx *fiber.Ctx) error {
	sess, err := h.session(ctx)
	if err != nil {
		return err
	}
	if err := sess.Destroy(); err != nil {
		log.Printf("session destroy error: %v", err)
	}

	fresh, err := h.session(ctx)
	if err != nil {
		return ctx.Redirect("/")
	}
	return h.flashAndRedirect(ctx, fresh, "info", "You have been logged out.", "/")
}

// readUpload pulls an optional file field out of the multipart form.
// Absent or unreadable files come back as nil; acceptance rules live in
// the profile service.
func readUpload(ctx *fiber.Ctx, field string) *dto.FileUpload {
	fh, err := ctx.FormFile(field)
	if err != nil || fh == nil || fh.Filename == "" {
		return nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil
	}

	return &dto.FileUpload{Filename: fh.Filename, Bytes: b}
}
