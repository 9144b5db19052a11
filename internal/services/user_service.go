package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"budgetwise/internal/auth"
	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/models"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new user with a password credential.
func (s *userService) CreateUser(name, email, password, currencyCode, timezone string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	var count int64
	s.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	hash := string(hashedPassword)
	user := &models.User{
		Name:         name,
		Email:        strings.ToLower(email),
		Password:     &hash,
		CurrencyCode: defaultString(currencyCode, "USD"),
		Timezone:     defaultString(timezone, "UTC"),
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// VerifyPassword checks if the provided password matches the stored hash.
// Users provisioned through an OAuth provider may have no password at all.
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	if !user.HasPassword() {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password))
	return err == nil
}

// UpdateProfile applies the non-nil fields of update to the user's profile.
func (s *userService) UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Email != nil {
		email := strings.ToLower(*update.Email)
		if email != user.Email {
			var count int64
			s.db.Model(&models.User{}).Where("email = ? AND id <> ?", email, userID).Count(&count)
			if count > 0 {
				return nil, apperrors.ErrDuplicateEmail
			}
			user.Email = email
		}
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.CurrencyCode != nil {
		user.CurrencyCode = *update.CurrencyCode
	}
	if update.Timezone != nil {
		user.Timezone = *update.Timezone
	}
	if update.Avatar != nil {
		user.Avatar = update.Avatar
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// UpdatePassword sets a new password. The current password must verify when
// the account already has one; OAuth-only accounts may set a first password
// without it.
func (s *userService) UpdatePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if user.HasPassword() && !s.VerifyPassword(user, currentPassword) {
		return apperrors.ErrPasswordIncorrect
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	hash := string(hashedPassword)
	if err := s.db.Model(user).Update("password", &hash).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// FindOrCreateOAuthUser resolves an OAuth identity to a local account. An
// existing account with the same email is linked to the provider; otherwise
// a passwordless account is provisioned.
func (s *userService) FindOrCreateOAuthUser(provider string, info *auth.UserInfo) (*models.User, error) {
	if info.Email == "" {
		return nil, apperrors.WithMessage(apperrors.ErrOAuthFailed, "provider returned no email address")
	}

	var user models.User
	err := s.db.Where("provider = ? AND provider_id = ?", provider, info.ID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Where("email = ?", strings.ToLower(info.Email)).First(&user).Error
	if err == nil {
		// Link the provider identity to the existing account.
		user.Provider = &provider
		user.ProviderID = &info.ID
		if user.Avatar == nil && info.Avatar != "" {
			user.Avatar = &info.Avatar
		}
		if err := s.db.Save(&user).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user = models.User{
		Name:         info.Name,
		Email:        strings.ToLower(info.Email),
		CurrencyCode: "USD",
		Timezone:     "UTC",
		Provider:     &provider,
		ProviderID:   &info.ID,
	}
	if info.Avatar != "" {
		user.Avatar = &info.Avatar
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// StoreRefreshTokenHash persists the hash of the active refresh token.
func (s *userService) StoreRefreshTokenHash(userID uint, tokenHash string) error {
	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("refresh_token_hash", tokenHash)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetRefreshTokenHash returns the stored refresh token hash for comparison.
func (s *userService) GetRefreshTokenHash(userID uint) (string, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return "", err
	}
	return user.RefreshTokenHash, nil
}

// ClearRefreshTokenHash invalidates the active refresh token on logout.
func (s *userService) ClearRefreshTokenHash(userID uint) error {
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Update("refresh_token_hash", "").Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
