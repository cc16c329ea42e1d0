package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/starkteam/stark/internal/domain"
	"github.com/starkteam/stark/internal/dto"
	"github.com/starkteam/stark/internal/helper/utils"
	"github.com/starkteam/stark/internal/interfaces"
	"github.com/starkteam/stark/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	CodeLength     = 6
	CodeTTL        = 10 * time.Minute
	ResendCooldown = 60 * time.Second

	defaultDisplayName = "User"
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterRequest) error
	ResendCode(ctx context.Context, email string) error
	VerifyCode(email, code string) (*domain.User, error)
	Login(input dto.LoginRequest) (*domain.User, error)
	PendingExists(email string) bool
}

type authService struct {
	users    repository.UserRepository
	pending  repository.PendingRepository
	mailer   interfaces.Mailer
	producer interfaces.ProducerHandler

	codeTTL  time.Duration
	cooldown time.Duration
	now      func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	pending repository.PendingRepository,
	mailer interfaces.Mailer,
	producer interfaces.ProducerHandler,
) AuthService {
	return &authService{
		users:    users,
		pending:  pending,
		mailer:   mailer,
		producer: producer,
		codeTTL:  CodeTTL,
		cooldown: ResendCooldown,
		now:      time.Now,
	}
}

// Register starts the verification flow: Unregistered -> PendingVerification.
// A fresh submission for an email with an outstanding record restarts the
// flow; a failed send rolls the record back so nothing persists past it.
func (s *authService) Register(ctx context.Context, input dto.RegisterRequest) error {
	email := NormalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	password := input.Password

	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}

	exists, err := s.users.EmailExists(email)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateAccount
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	rec := &domain.PendingVerification{
		Email:           email,
		Code:            utils.GenerateCode(CodeLength),
		Name:            name,
		PasswordHash:    string(hashed),
		ExpiresAt:       now.Add(s.codeTTL),
		ResendAllowedAt: now.Add(s.cooldown),
	}
	s.pending.Put(rec)

	if err := s.mailer.SendCode(ctx, email, name, rec.Code); err != nil {
		s.pending.Delete(email)
		return &MailDispatchError{Err: err}
	}

	if s.producer != nil {
		payload := fmt.Sprintf(`{"email":"%s","expires_at":"%s"}`,
			email, rec.ExpiresAt.Format(time.RFC3339))
		_ = s.producer.PublishMessage([]byte("user.registered"), []byte(payload))
	}

	return nil
}

// ResendCode regenerates the code for an outstanding record, rate
// limited by the cooldown. Name and password hash carry over.
func (s *authService) ResendCode(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	rec, ok := s.pending.Get(email)
	if !ok {
		return ErrNoPendingFlow
	}

	now := s.now()
	if now.Before(rec.ResendAllowedAt) {
		return &CooldownError{Remaining: int(rec.ResendAllowedAt.Sub(now).Seconds())}
	}

	rec.Code = utils.GenerateCode(CodeLength)
	rec.ExpiresAt = now.Add(s.codeTTL)
	rec.ResendAllowedAt = now.Add(s.cooldown)
	s.pending.Put(rec)

	if err := s.mailer.SendCode(ctx, email, rec.Name, rec.Code); err != nil {
		return &MailDispatchError{Err: err}
	}

	return nil
}

// VerifyCode completes PendingVerification -> Verified. Expiry wins over
// code correctness: a stale record is deleted regardless of the code.
// A wrong code leaves the record untouched; retries are unlimited.
func (s *authService) VerifyCode(email, code string) (*domain.User, error) {
	email = NormalizeEmail(email)
	code = strings.TrimSpace(code)

	rec, ok := s.pending.Get(email)
	if !ok {
		return nil, ErrNoPendingFlow
	}

	if s.now().After(rec.ExpiresAt) {
		s.pending.Delete(email)
		return nil, ErrCodeExpired
	}

	rec, ok = s.pending.CompareAndRemove(email, code)
	if !ok {
		return nil, ErrCodeMismatch
	}

	name := rec.Name
	if name == "" {
		name = defaultDisplayName
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    s.now(),
	}
	if _, err := s.users.CreateUser(user); err != nil {
		return nil, err
	}

	if s.producer != nil {
		payload := fmt.Sprintf(`{"user_id":%d,"email":"%s"}`, user.ID, user.Email)
		_ = s.producer.PublishMessage([]byte("user.verified"), []byte(payload))
	}

	return user, nil
}

// Login never reveals whether the email or the password was wrong.
func (s *authService) Login(input dto.LoginRequest) (*domain.User, error) {
	email := NormalizeEmail(input.Email)
	password := input.Password

	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindUserByEmail(email)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *authService) PendingExists(email string) bool {
	_, ok := s.pending.Get(NormalizeEmail(email))
	return ok
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
