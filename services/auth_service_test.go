package services_test

import (
	"context"
	"errors"
	"testing"

	"vastra-api/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeIdentityProvider struct {
	profile *services.GoogleProfile
	err     error
}

func (f *fakeIdentityProvider) AuthCodeURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (f *fakeIdentityProvider) FetchProfile(_ context.Context, _ string) (*services.GoogleProfile, error) {
	return f.profile, f.err
}

func TestHandleCallbackCreatesUser(t *testing.T) {
	users := newMockUserRepo()
	provider := &fakeIdentityProvider{profile: &services.GoogleProfile{
		ID:    "google-sub-123",
		Email: "ananya@example.com",
		Name:  "Ananya Sharma",
	}}
	svc := services.NewAuthService(users, provider, zap.NewNop())

	user, svcErr := svc.HandleCallback(context.Background(), "auth-code")

	assert.Nil(t, svcErr)
	assert.Equal(t, "ananya@example.com", user.Email)
	assert.Equal(t, "google", user.Provider)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Len(t, users.users, 1)
}

func TestHandleCallbackReusesExistingUser(t *testing.T) {
	users := newMockUserRepo()
	provider := &fakeIdentityProvider{profile: &services.GoogleProfile{
		ID:    "google-sub-123",
		Email: "ananya@example.com",
		Name:  "Ananya Sharma",
	}}
	svc := services.NewAuthService(users, provider, zap.NewNop())

	first, svcErr := svc.HandleCallback(context.Background(), "auth-code")
	assert.Nil(t, svcErr)

	second, svcErr := svc.HandleCallback(context.Background(), "another-code")
	assert.Nil(t, svcErr)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, users.users, 1)
}

func TestHandleCallbackExchangeFailure(t *testing.T) {
	users := newMockUserRepo()
	provider := &fakeIdentityProvider{err: errors.New("invalid_grant")}
	svc := services.NewAuthService(users, provider, zap.NewNop())

	_, svcErr := svc.HandleCallback(context.Background(), "bad-code")

	assert.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)
	assert.Empty(t, users.users)
}

func TestCurrentUserNotFound(t *testing.T) {
	svc := services.NewAuthService(newMockUserRepo(), &fakeIdentityProvider{}, zap.NewNop())

	_, svcErr := svc.CurrentUser(context.Background(), uuid.New())

	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}
