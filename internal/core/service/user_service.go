package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

// UserService covers the /users/me self-service endpoints and admin account
// management.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) Me(ctx context.Context, actor *domain.User) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrAuthenticationRequired
	}
	return s.users.GetByID(ctx, actor.ID)
}

// UpdateMe edits the actor's own profile. A role change is silently dropped
// unless the actor is an admin.
func (s *UserService) UpdateMe(ctx context.Context, actor *domain.User, in ports.UpdateUserInput) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrAuthenticationRequired
	}
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(actor, domain.ActionUpdate, domain.Resource{Kind: domain.ResourceUser, OwnerID: user.ID}); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		in.Role = nil
	}
	return s.apply(ctx, user, in)
}

func (s *UserService) List(ctx context.Context, actor *domain.User, search string, page ports.Page) (*ports.ListResult[*domain.User], error) {
	if err := domain.Authorize(actor, domain.ActionList, domain.Resource{Kind: domain.ResourceUser}); err != nil {
		return nil, err
	}
	page = page.Normalize()
	items, total, err := s.users.List(ctx, strings.TrimSpace(search), page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return listResult(items, total, page), nil
}

func (s *UserService) Get(ctx context.Context, actor *domain.User, username string) (*domain.User, error) {
	if err := domain.Authorize(actor, domain.ActionRetrieve, domain.Resource{Kind: domain.ResourceUser}); err != nil {
		return nil, err
	}
	return s.users.GetByUsername(ctx, username)
}

// Create registers an account on behalf of an admin. Such accounts are
// confirmed from the start.
func (s *UserService) Create(ctx context.Context, actor *domain.User, in ports.CreateUserInput) (*domain.User, error) {
	if err := domain.Authorize(actor, domain.ActionCreate, domain.Resource{Kind: domain.ResourceUser}); err != nil {
		return nil, err
	}
	if err := domain.ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, domain.NewValidationError("email", "is required")
	}
	role := domain.RoleUser
	if in.Role != "" {
		r, err := domain.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		role = r
	}

	user := &domain.User{
		Username:  in.Username,
		Email:     strings.TrimSpace(in.Email),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Role:      role,
		Confirmed: true,
		CreatedAt: time.Now().UTC(),
	}
	if err := user.ValidateProfile(); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("username", user.Username).Str("role", string(role)).Int64("actor_id", actor.ID).Msg("user created by admin")
	return user, nil
}

func (s *UserService) Update(ctx context.Context, actor *domain.User, username string, in ports.UpdateUserInput) (*domain.User, error) {
	if err := domain.Authorize(actor, domain.ActionUpdate, domain.Resource{Kind: domain.ResourceUser}); err != nil {
		return nil, err
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, user, in)
}

func (s *UserService) Delete(ctx context.Context, actor *domain.User, username string) error {
	if err := domain.Authorize(actor, domain.ActionDelete, domain.Resource{Kind: domain.ResourceUser}); err != nil {
		return err
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}
	s.log.Info().Str("username", username).Int64("actor_id", actor.ID).Msg("user deleted")
	return nil
}

func (s *UserService) apply(ctx context.Context, user *domain.User, in ports.UpdateUserInput) (*domain.User, error) {
	if in.Username != nil {
		if err := domain.ValidateUsername(*in.Username); err != nil {
			return nil, err
		}
		user.Username = *in.Username
	}
	if in.Email != nil {
		if strings.TrimSpace(*in.Email) == "" {
			return nil, domain.NewValidationError("email", "is required")
		}
		user.Email = strings.TrimSpace(*in.Email)
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Role != nil {
		r, err := domain.ParseRole(*in.Role)
		if err != nil {
			return nil, err
		}
		user.Role = r
	}
	if err := user.ValidateProfile(); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
