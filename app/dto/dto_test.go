package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/app/models"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, models.CodeValidation, appErr.Code)
	return appErr.Fields
}

func decodeUser(t *testing.T, body string) *UserRequest {
	t.Helper()
	var req UserRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestUserRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[string]string
	}{
		{
			name: "valid",
			body: `{"name":"Ann","surname":"Lee","email":"ann@example.com","password":"12345678"}`,
		},
		{
			name: "short password",
			body: `{"name":"Ann","surname":"Lee","email":"ann@example.com","password":"1234567"}`,
			want: map[string]string{"password": "Password does not meet our requirements"},
		},
		{
			name: "bad email",
			body: `{"name":"Ann","surname":"Lee","email":"nope","password":"12345678"}`,
			want: map[string]string{"email": "must be a well-formed email address"},
		},
		{
			name: "missing names",
			body: `{"email":"ann@example.com","password":"12345678"}`,
			want: map[string]string{"name": "must not be null", "surname": "must not be null"},
		},
		{
			name: "name too long",
			body: `{"name":"` + strings.Repeat("n", 256) + `","surname":"Lee","email":"ann@example.com","password":"12345678"}`,
			want: map[string]string{"name": "size must be between 0 and 255"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodeUser(t, tt.body).Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, fieldsOf(t, err))
		})
	}
}

func TestPostRequestContentBounds(t *testing.T) {
	empty := ""
	req := &PostRequest{Content: &empty}
	assert.NoError(t, req.Validate())

	longest := strings.Repeat("p", 512)
	req.Content = &longest
	assert.NoError(t, req.Validate())

	over := strings.Repeat("p", 513)
	req.Content = &over
	assert.Equal(t, map[string]string{"content": "size must be between 0 and 512"}, fieldsOf(t, req.Validate()))

	req.Content = nil
	assert.Equal(t, map[string]string{"content": "must not be null"}, fieldsOf(t, req.Validate()))
}

func TestCommentRequestValidate(t *testing.T) {
	var req CommentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"userId":0,"postId":-1,"content":"hi"}`), &req))
	assert.Equal(t, map[string]string{
		"userId": "must be greater than 0",
		"postId": "must be greater than 0",
	}, fieldsOf(t, req.Validate()))

	require.NoError(t, json.Unmarshal([]byte(`{"userId":1,"postId":1,"content":"`+strings.Repeat("c", 1025)+`"}`), &req))
	assert.Equal(t, map[string]string{"content": "size must be between 0 and 1024"}, fieldsOf(t, req.Validate()))
}

func TestResponsesHideRelations(t *testing.T) {
	post := &models.Post{ID: 2, Content: "hello", UserID: 1, User: &models.User{ID: 1}}
	raw, err := json.Marshal(FromPost(post))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"content":"hello","userId":1}`, string(raw))

	raw, err = json.Marshal(FromComments(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
