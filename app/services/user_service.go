package services

import (
	"context"
	"fmt"
	"log/slog"

	"postboard/app/dto"
	"postboard/app/models"
	"postboard/app/repositories"
)

// UserService manages users and removes everything they own when they go.
type UserService struct {
	store repositories.Store
	log   *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(store repositories.Store, log *slog.Logger) *UserService {
	return &UserService{store: store, log: log.With("service", "users")}
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user *models.User
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		user, err = tx.Users().GetByID(id)
		return domainError(err, models.UserNotFound())
	})
	return user, err
}

// GetUserByEmail finds a user by exact email match.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, models.NewInvalidArgumentError("email must not be empty")
	}
	var user *models.User
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		user, err = tx.Users().GetByEmail(email)
		return domainError(err, models.UserByEmailNotFound())
	})
	return user, err
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		users, err = tx.Users().List()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// CreateUser validates the request and stores a new user under a fresh id.
func (s *UserService) CreateUser(ctx context.Context, req *dto.UserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	user := req.ToUser()
	err := s.store.Update(ctx, func(tx repositories.Tx) error {
		return domainError(tx.Users().Create(user), nil)
	})
	if err != nil {
		return nil, domainError(err, nil)
	}
	s.log.InfoContext(ctx, "user created", "user_id", user.ID)
	return user, nil
}

// UpdateUser replaces the scalar fields of an existing user. The id and
// everything the user owns stay as they are.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req *dto.UserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var user *models.User
	err := s.store.Update(ctx, func(tx repositories.Tx) error {
		var err error
		user, err = tx.Users().GetByID(id)
		if err != nil {
			return domainError(err, models.UserNotFound())
		}
		user.Replace(req.ToUser())
		return domainError(tx.Users().Update(user), models.UserNotFound())
	})
	if err != nil {
		return nil, domainError(err, nil)
	}
	s.log.InfoContext(ctx, "user updated", "user_id", id)
	return user, nil
}

// DeleteUser removes a user together with their posts, the comments on those
// posts and every comment they wrote elsewhere.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	var posts, comments int
	err := s.store.Update(ctx, func(tx repositories.Tx) error {
		if _, err := tx.Users().GetByID(id); err != nil {
			return domainError(err, models.UserNotFound())
		}

		owned, err := tx.Posts().ListByUser(id)
		if err != nil {
			return fmt.Errorf("listing posts of user %d: %w", id, err)
		}
		for _, p := range owned {
			n, err := tx.Comments().DeleteByPost(p.ID)
			if err != nil {
				return fmt.Errorf("deleting comments of post %d: %w", p.ID, err)
			}
			comments += n
			if err := tx.Posts().Delete(p.ID); err != nil {
				return fmt.Errorf("deleting post %d: %w", p.ID, err)
			}
			posts++
		}

		n, err := tx.Comments().DeleteByUser(id)
		if err != nil {
			return fmt.Errorf("deleting comments by user %d: %w", id, err)
		}
		comments += n

		return domainError(tx.Users().Delete(id), models.UserNotFound())
	})
	if err != nil {
		return domainError(err, nil)
	}
	s.log.InfoContext(ctx, "user deleted", "user_id", id, "posts", posts, "comments", comments)
	return nil
}
