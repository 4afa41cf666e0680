package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/eventsapi/internal/models"
)

// UserService keeps display profiles in sync with the identities the auth
// collaborator vouches for.
type UserService struct {
	users models.UserRepo
}

func NewUserService(users models.UserRepo) *UserService {
	return &UserService{users: users}
}

func (us *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, models.ErrNotFound
	}
	return us.users.GetUserByID(ctx, id)
}

// SyncProfile upserts the profile document for an authenticated identity.
func (us *UserService) SyncProfile(ctx context.Context, id uuid.UUID, name, email, role string) (*models.User, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}
	user := &models.User{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(strings.ToLower(email)),
		Role:      role,
		UpdatedAt: time.Now().UTC(),
	}
	if err := models.Validate.Struct(user); err != nil {
		return nil, fmt.Errorf("invalid profile data: %v", err)
	}
	if err := us.users.UpsertUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (us *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := us.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Department != nil {
		user.Department = strings.TrimSpace(*req.Department)
	}
	if req.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*req.AvatarURL)
	}
	if err := models.Validate.Struct(user); err != nil {
		return nil, fmt.Errorf("invalid profile data: %v", err)
	}
	if err := us.users.UpsertUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
