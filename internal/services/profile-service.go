package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/starkteam/stark/internal/domain"
	"github.com/starkteam/stark/internal/dto"
	"github.com/starkteam/stark/internal/helper/utils"
	"github.com/starkteam/stark/internal/interfaces"
	"github.com/starkteam/stark/internal/repository"
)

const profileImageFolder = "profile_pics"

type ProfileService interface {
	GetProfile(email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, email string, input dto.UpdateProfileRequest) (*domain.User, error)
}

type profileService struct {
	users    repository.UserRepository
	uploader interfaces.Uploader
	producer interfaces.ProducerHandler
}

func NewProfileService(
	users repository.UserRepository,
	uploader interfaces.Uploader,
	producer interfaces.ProducerHandler,
) ProfileService {
	return &profileService{users: users, uploader: uploader, producer: producer}
}

func (s *profileService) GetProfile(email string) (*domain.User, error) {
	user, err := s.users.FindUserByEmail(NormalizeEmail(email))
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies a partial update: empty form fields keep their
// previous values. A rejected image is ignored without failing the rest
// of the update.
func (s *profileService) UpdateProfile(ctx context.Context, email string, input dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.FindUserByEmail(NormalizeEmail(email))
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	if name := strings.TrimSpace(input.FullName); name != "" {
		user.Name = name
	}
	if age := strings.TrimSpace(input.Age); age != "" {
		if n, err := strconv.Atoi(age); err == nil && n >= 0 {
			user.Age = &n
		}
	}
	if p := strings.TrimSpace(input.Profession); p != "" {
		user.Profession = &p
	}
	if g := strings.TrimSpace(input.Gender); g != "" {
		user.Gender = &g
	}

	if ref, ok := s.acceptImage(ctx, input.Image); ok {
		user.ProfileImage = &ref
	}

	if err := s.users.SaveUser(user); err != nil {
		return nil, err
	}

	if s.producer != nil {
		payload := fmt.Sprintf(`{"user_id":%d,"email":"%s"}`, user.ID, user.Email)
		_ = s.producer.PublishMessage([]byte("user.profile_updated"), []byte(payload))
	}

	return user, nil
}

// acceptImage stores the upload when it has a usable filename and an
// allow-listed extension. Anything else is silently skipped so the
// prior image reference stays in place.
func (s *profileService) acceptImage(ctx context.Context, file *dto.FileUpload) (string, bool) {
	if s.uploader == nil || file == nil || file.Filename == "" {
		return "", false
	}
	if !utils.AllowedImage(file.Filename) {
		return "", false
	}

	name := utils.SanitizeFilename(file.Filename)
	if name == "" {
		return "", false
	}

	ref, err := s.uploader.UploadBytes(ctx, profileImageFolder, name, file.Bytes)
	if err != nil {
		return "", false
	}
	return ref, true
}
