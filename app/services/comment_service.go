package services

import (
	"context"
	"fmt"
	"log/slog"

	"postboard/app/dto"
	"postboard/app/models"
	"postboard/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	store repositories.Store
	log   *slog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(store repositories.Store, log *slog.Logger) *CommentService {
	return &CommentService{store: store, log: log.With("service", "comments")}
}

func (s *CommentService) ListComments(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		comments, err = tx.Comments().List()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// ListPostComments returns the comments on a post. An unknown post simply
// has no comments.
func (s *CommentService) ListPostComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		comments, err = tx.Comments().ListByPost(postID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing comments of post %d: %w", postID, err)
	}
	return comments, nil
}

func (s *CommentService) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	var comment *models.Comment
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		comment, err = tx.Comments().GetByID(id)
		return domainError(err, models.CommentNotFound())
	})
	return comment, err
}

// CreateComment attaches a new comment by an existing user to an existing post.
func (s *CommentService) CreateComment(ctx context.Context, req *dto.CommentRequest) (*models.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	comment := &models.Comment{Content: *req.Content, UserID: *req.UserID, PostID: *req.PostID}
	err := s.store.Update(ctx, func(tx repositories.Tx) error {
		if _, err := tx.Users().GetByID(comment.UserID); err != nil {
			return domainError(err, models.UserNotFound())
		}
		if _, err := tx.Posts().GetByID(comment.PostID); err != nil {
			return domainError(err, models.PostNotFound())
		}
		return tx.Comments().Create(comment)
	})
	if err != nil {
		return nil, domainError(err, nil)
	}
	s.log.InfoContext(ctx, "comment created", "comment_id", comment.ID, "post_id", comment.PostID)
	return comment, nil
}

// DeleteComment removes one comment from its post.
func (s *CommentService) DeleteComment(ctx context.Context, id int64) error {
	err := s.store.Update(ctx, func(tx repositories.Tx) error {
		comment, err := tx.Comments().GetByID(id)
		if err != nil {
			return domainError(err, models.CommentNotFound())
		}
		if _, err := tx.Posts().GetByID(comment.PostID); err != nil {
			return domainError(err, models.PostNotFound())
		}
		return domainError(tx.Comments().Delete(id), models.CommentNotFound())
	})
	if err != nil {
		return domainError(err, nil)
	}
	s.log.InfoContext(ctx, "comment deleted", "comment_id", id)
	return nil
}
