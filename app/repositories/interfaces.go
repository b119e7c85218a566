package repositories

import (
	"context"
	"errors"
	"fmt"

	"postboard/app/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict reports a write that collided with another transaction or
	// with a uniqueness rule.
	ErrConflict       = errors.New("write conflict")
	ErrDuplicateEmail = fmt.Errorf("%w: email already registered", ErrConflict)
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int64) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List() ([]models.User, error)
	Update(user *models.User) error
	Delete(id int64) error
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int64) (*models.Post, error)
	List() ([]models.Post, error)
	ListByUser(userID int64) ([]models.Post, error)
	Update(post *models.Post) error
	Delete(id int64) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int64) (*models.Comment, error)
	List() ([]models.Comment, error)
	ListByPost(postID int64) ([]models.Comment, error)
	Delete(id int64) error
	DeleteByPost(postID int64) (int, error)
	DeleteByUser(userID int64) (int, error)
}

// Tx gives access to every repository inside one transaction.
type Tx interface {
	Users() UserRepository
	Posts() PostRepository
	Comments() CommentRepository
}

// Store runs functions inside transactions. A non-nil error from fn rolls
// back everything fn wrote. Lists are ordered by id.
type Store interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}
