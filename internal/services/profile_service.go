package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// ErrWrongPassword is returned when the current password check fails
// during a password change.
var ErrWrongPassword = errors.New("current password is incorrect")

// ProfileUpdate is the set of profile fields a user may edit.
type ProfileUpdate struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Bio      string `json:"bio" validate:"omitempty,max=500"`
	Location string `json:"location" validate:"omitempty,max=100"`
}

// ProfileService handles the dashboard profile and its settings. The
// storefront has a single profile record whose ID is fixed at wiring
// time.
type ProfileService struct {
	userRepo repositories.UserRepository
	userID   string
	validate *validator.Validate
}

// NewProfileService creates a new ProfileService for the given user.
func NewProfileService(userRepo repositories.UserRepository, userID string) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		userID:   userID,
		validate: validator.New(),
	}
}

// GetProfile retrieves the profile record.
func (s *ProfileService) GetProfile() (*models.User, error) {
	return s.userRepo.GetByID(s.userID)
}

// UpdateProfile applies the editable profile fields. The email must
// not collide with another stored user.
func (s *ProfileService) UpdateProfile(update ProfileUpdate) (*models.User, error) {
	if err := s.validate.Struct(update); err != nil {
		return nil, fmt.Errorf("invalid profile update: %w", err)
	}

	if existing, err := s.userRepo.GetByEmail(update.Email); err == nil && existing.ID != s.userID {
		return nil, fmt.Errorf("email '%s' already registered", update.Email)
	}

	user, err := s.userRepo.GetByID(s.userID)
	if err != nil {
		return nil, err
	}

	user.Name = update.Name
	user.Email = update.Email
	user.Bio = update.Bio
	user.Location = update.Location

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// UpdateSettings replaces the dashboard preferences.
func (s *ProfileService) UpdateSettings(settings models.Settings) (*models.User, error) {
	if err := s.validate.Struct(settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	user, err := s.userRepo.GetByID(s.userID)
	if err != nil {
		return nil, err
	}

	user.Settings = settings
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the current password and stores a bcrypt
// hash of the new one.
func (s *ProfileService) ChangePassword(current, updated string) error {
	if len(updated) < 6 {
		return fmt.Errorf("new password must be at least 6 characters")
	}

	user, err := s.userRepo.GetByID(s.userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
