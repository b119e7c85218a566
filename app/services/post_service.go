package services

import (
	"context"
	"fmt"
	"log/slog"

	"postboard/app/dto"
	"postboard/app/models"
	"postboard/app/repositories"
)

// PostService handles business logic for posts
type PostService struct {
	store repositories.Store
	log   *slog.Logger
}

// NewPostService creates a new PostService
func NewPostService(store repositories.Store, log *slog.Logger) *PostService {
	return &PostService{store: store, log: log.With("service", "posts")}
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var post *models.Post
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		post, err = tx.Posts().GetByID(id)
		return domainError(err, models.PostNotFound())
	})
	return post, err
}

func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		posts, err = tx.Posts().List()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

// ListUserPosts returns the posts owned by a user that must exist.
func (s *PostService) ListUserPosts(ctx context.Context, userID int64) ([]models.Post, error) {
	var posts []models.Post
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		if _, err := tx.Users().GetByID(userID); err != nil {
			return domainError(err, models.UserNotFound())
		}
		var err error
		posts, err = tx.Posts().ListByUser(userID)
		return err
	})
	return posts, err
}

// CreatePost adds a post to the user's collection.
func (s *PostService) CreatePost(ctx context.Context, userID int64, req *dto.PostRequest) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	post := &models.Post{Content: *req.Content, UserID: userID}
	err := s.store.Update(ctx, func(tx repositories.Tx) error {
		if _, err := tx.Users().GetByID(userID); err != nil {
			return domainError(err, models.UserNotFound())
		}
		return tx.Posts().Create(post)
	})
	if err != nil {
		return nil, domainError(err, nil)
	}
	s.log.InfoContext(ctx, "post created", "post_id", post.ID, "user_id", userID)
	return post, nil
}

// UpdateUserPost changes the content of req.ID, which must be one of the
// user's own posts.
func (s *PostService) UpdateUserPost(ctx context.Context, userID int64, req *dto.PostRequest) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.ID == nil {
		return nil, models.NewValidationError(map[string]string{"id": "must not be null"})
	}
	var post *models.Post
	err := s.store.Update(ctx, func(tx repositories.Tx) error {
		if _, err := tx.Users().GetByID(userID); err != nil {
			return domainError(err, models.UserNotFound())
		}
		var err error
		post, err = s.replaceContent(tx, userID, *req.ID, *req.Content)
		return err
	})
	if err != nil {
		return nil, domainError(err, nil)
	}
	s.log.InfoContext(ctx, "post updated", "post_id", post.ID, "user_id", userID)
	return post, nil
}

// UpdatePost changes the content of a post on behalf of its owner.
func (s *PostService) UpdatePost(ctx context.Context, id int64, req *dto.PostRequest) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var post *models.Post
	err := s.store.Update(ctx, func(tx repositories.Tx) error {
		current, err := tx.Posts().GetByID(id)
		if err != nil {
			return domainError(err, models.PostNotFound())
		}
		post, err = s.replaceContent(tx, current.UserID, id, *req.Content)
		return err
	})
	if err != nil {
		return nil, domainError(err, nil)
	}
	s.log.InfoContext(ctx, "post updated", "post_id", id, "user_id", post.UserID)
	return post, nil
}

// replaceContent keeps id and owner and swaps the content.
func (s *PostService) replaceContent(tx repositories.Tx, userID, postID int64, content string) (*models.Post, error) {
	post, err := tx.Posts().GetByID(postID)
	if err != nil {
		return nil, domainError(err, models.UserPostNotFound(postID))
	}
	if !post.OwnedBy(userID) {
		return nil, models.UserPostNotFound(postID)
	}
	post.Content = content
	if err := tx.Posts().Update(post); err != nil {
		return nil, domainError(err, models.UserPostNotFound(postID))
	}
	return post, nil
}

// DeletePost deletes a post and all its comments
func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	var comments int
	err := s.store.Update(ctx, func(tx repositories.Tx) error {
		post, err := tx.Posts().GetByID(id)
		if err != nil {
			return domainError(err, models.PostNotFound())
		}
		if _, err := tx.Users().GetByID(post.UserID); err != nil {
			return domainError(err, models.UserNotFound())
		}

		comments, err = tx.Comments().DeleteByPost(id)
		if err != nil {
			return fmt.Errorf("deleting comments of post %d: %w", id, err)
		}
		return domainError(tx.Posts().Delete(id), models.PostNotFound())
	})
	if err != nil {
		return domainError(err, nil)
	}
	s.log.InfoContext(ctx, "post deleted", "post_id", id, "comments", comments)
	return nil
}
