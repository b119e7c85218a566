package dto

import "postboard/app/models"

// CommentRequest is the body of a comment creation call.
type CommentRequest struct {
	UserID  *int64  `json:"userId" validate:"required,gt=0"`
	PostID  *int64  `json:"postId" validate:"required,gt=0"`
	Content *string `json:"content" validate:"required,size=0-1024"`
}

func (r *CommentRequest) Validate() error {
	return models.ValidateStruct(r)
}

type CommentResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	PostID  int64  `json:"postId"`
	UserID  int64  `json:"userId"`
}

func FromComment(c *models.Comment) CommentResponse {
	return CommentResponse{ID: c.ID, Content: c.Content, PostID: c.PostID, UserID: c.UserID}
}

func FromComments(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, FromComment(&comments[i]))
	}
	return out
}
