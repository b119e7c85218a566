package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/app/dto"
	"postboard/app/models"
	"postboard/app/repositories/mock"
)

type fixture struct {
	store    *mock.Store
	users    *UserService
	posts    *PostService
	comments *CommentService
}

func newFixture() *fixture {
	store := mock.NewStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		store:    store,
		users:    NewUserService(store, log),
		posts:    NewPostService(store, log),
		comments: NewCommentService(store, log),
	}
}

func ptr[T any](v T) *T { return &v }

func userRequest() *dto.UserRequest {
	return &dto.UserRequest{
		Name:     ptr(gofakeit.FirstName()),
		Surname:  ptr(gofakeit.LastName()),
		Email:    ptr(gofakeit.Email()),
		Password: ptr("password123"),
	}
}

func (f *fixture) user(t *testing.T) *models.User {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), userRequest())
	require.NoError(t, err)
	return u
}

func (f *fixture) post(t *testing.T, userID int64, content string) *models.Post {
	t.Helper()
	p, err := f.posts.CreatePost(context.Background(), userID, &dto.PostRequest{Content: ptr(content)})
	require.NoError(t, err)
	return p
}

func (f *fixture) comment(t *testing.T, userID, postID int64, content string) *models.Comment {
	t.Helper()
	c, err := f.comments.CreateComment(context.Background(), &dto.CommentRequest{
		UserID:  ptr(userID),
		PostID:  ptr(postID),
		Content: ptr(content),
	})
	require.NoError(t, err)
	return c
}

func assertAppError(t *testing.T, err error, code, message string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}
