package services

import (
	"context"
	"errors"

	"vastra-api/models"
	"vastra-api/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const providerGoogle = "google"

// AuthService handles the Google sign-in flow and session-bound user lookups.
type AuthService interface {
	LoginURL(state string) string
	HandleCallback(ctx context.Context, code string) (*models.User, *ServiceError)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, *ServiceError)
}

type authServiceImpl struct {
	users    repository.UserRepository
	provider IdentityProvider
	logger   *zap.Logger
}

func NewAuthService(users repository.UserRepository, provider IdentityProvider, logger *zap.Logger) AuthService {
	return &authServiceImpl{users: users, provider: provider, logger: logger}
}

func (s *authServiceImpl) LoginURL(state string) string {
	return s.provider.AuthCodeURL(state)
}

// HandleCallback exchanges the authorization code and finds or creates the
// account for the Google identity.
func (s *authServiceImpl) HandleCallback(ctx context.Context, code string) (*models.User, *ServiceError) {
	profile, err := s.provider.FetchProfile(ctx, code)
	if err != nil {
		s.logger.Warn("Google code exchange failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 401, Message: "Google sign-in failed"}
	}

	user, err := s.users.FindByProviderID(ctx, providerGoogle, profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("User lookup failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Sign-in failed"}
	}

	user = &models.User{
		Email:      profile.Email,
		Name:       profile.Name,
		Provider:   providerGoogle,
		ProviderID: profile.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("User creation failed", zap.String("email", profile.Email), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Sign-in failed"}
	}

	s.logger.Info("User created from Google sign-in", zap.String("user_id", user.ID.String()))
	return user, nil
}

// CurrentUser reloads the user row behind a live session.
func (s *authServiceImpl) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, *ServiceError) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "User not found"}
		}
		s.logger.Error("User lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load user"}
	}
	return user, nil
}
